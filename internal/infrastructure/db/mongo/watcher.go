package mongo

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
)

// Watcher implements ports.ChangeFeed over MongoDB change streams. Requires
// the deployment to be a replica set (standalone mongod has no oplog).
type Watcher struct {
	db  *mongo.Database
	log zerolog.Logger
}

func NewWatcher(db *mongo.Database, log zerolog.Logger) *Watcher {
	return &Watcher{db: db, log: log}
}

// Subscribe opens a change stream on the collection and invokes fn on every
// insert/update/replace/delete until the returned unsubscribe function is
// called or ctx is cancelled.
func (w *Watcher) Subscribe(ctx context.Context, collection string, fn func()) (func(), error) {
	stream, err := w.db.Collection(collection).Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, err
	}

	streamCtx, cancel := context.WithCancel(ctx)
	go func() {
		defer func() {
			_ = stream.Close(context.Background())
		}()
		for stream.Next(streamCtx) {
			fn()
		}
		if err := stream.Err(); err != nil && streamCtx.Err() == nil {
			w.log.Error().Err(err).Str("collection", collection).Msg("change stream terminated")
		}
	}()

	return cancel, nil
}
