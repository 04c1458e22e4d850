// Package notify holds out-of-band delivery of password reset codes.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier writes reset codes to the log instead of delivering them.
// Stands in for a mail gateway in development and tests.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendResetCode(ctx context.Context, email, code string) error {
	n.log.Info().Str("email", email).Str("code", code).Msg("password reset code issued")
	return nil
}
