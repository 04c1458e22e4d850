package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/launchdesk/portal/internal/core/domain"
	"github.com/launchdesk/portal/internal/core/ports"
)

const workItemsCollection = "work_items"

// WorkItemRepository implements ports.WorkItemRepository using MongoDB.
type WorkItemRepository struct {
	coll *mongo.Collection
}

func NewWorkItemRepository(db *mongo.Database) *WorkItemRepository {
	return &WorkItemRepository{coll: db.Collection(workItemsCollection)}
}

type workItemDoc struct {
	ID             string `bson:"_id"`
	UserID         string `bson:"user_id"`
	Software       string `bson:"software"`
	Content        string `bson:"content"`
	Status         string `bson:"status"`
	IdempotencyKey string `bson:"idempotency_key,omitempty"`
	CreatedAt      int64  `bson:"created_at"`
	UpdatedAt      int64  `bson:"updated_at"`
}

func (r *WorkItemRepository) Create(ctx context.Context, item *domain.WorkItem) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, docFromWorkItem(item)); err != nil {
		// Unique sparse index on idempotency_key arbitrates double submits.
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrWorkItemExists
		}
		return fmt.Errorf("insert work item: %w", err)
	}
	return nil
}

func (r *WorkItemRepository) FindByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc workItemDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWorkItemNotFound
		}
		return nil, fmt.Errorf("find work item: %w", err)
	}
	return workItemFromDoc(doc), nil
}

func (r *WorkItemRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.WorkItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc workItemDoc
	if err := r.coll.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWorkItemNotFound
		}
		return nil, fmt.Errorf("find work item: %w", err)
	}
	return workItemFromDoc(doc), nil
}

func (r *WorkItemRepository) List(ctx context.Context, filter ports.WorkItemFilter) ([]*domain.WorkItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list work items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.WorkItem
	for cursor.Next(ctx) {
		var doc workItemDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode work item: %w", err)
		}
		items = append(items, workItemFromDoc(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list work items: %w", err)
	}
	return items, nil
}

// UpdateStatus performs the transition as a single conditional update: the
// filter pins the current status, so a concurrent review of the same item
// cannot overwrite a terminal state.
func (r *WorkItemRepository) UpdateStatus(ctx context.Context, id string, from, to domain.WorkStatus) (*domain.WorkItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": string(from)},
		bson.M{"$set": bson.M{
			"status":     string(to),
			"updated_at": time.Now().UTC().Unix(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var doc workItemDoc
	err := res.Decode(&doc)
	if err == nil {
		return workItemFromDoc(doc), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update work item status: %w", err)
	}

	// No match: either the item is gone or it already left the "from" state.
	if _, findErr := r.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrInvalidTransition
}

func (r *WorkItemRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete work items: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the lookup and idempotency indexes.
func (r *WorkItemRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{
			Keys:    bson.D{{Key: "idempotency_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func docFromWorkItem(item *domain.WorkItem) workItemDoc {
	return workItemDoc{
		ID:             item.ID,
		UserID:         item.UserID,
		Software:       item.Software,
		Content:        item.Content,
		Status:         string(item.Status),
		IdempotencyKey: item.IdempotencyKey,
		CreatedAt:      item.CreatedAt.Unix(),
		UpdatedAt:      item.UpdatedAt.Unix(),
	}
}

func workItemFromDoc(doc workItemDoc) *domain.WorkItem {
	return &domain.WorkItem{
		ID:             doc.ID,
		UserID:         doc.UserID,
		Software:       doc.Software,
		Content:        doc.Content,
		Status:         domain.WorkStatus(doc.Status),
		IdempotencyKey: doc.IdempotencyKey,
		CreatedAt:      unixToTime(doc.CreatedAt),
		UpdatedAt:      unixToTime(doc.UpdatedAt),
	}
}
