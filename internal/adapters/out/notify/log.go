package notify

import (
	"context"
	"log/slog"

	"foodshare/internal/core/ports"
)

// Log writes every notification to a structured logger at info level.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger.With("component", "notifications")}
}

func (l *Log) Notify(ctx context.Context, n ports.Notification) error {
	l.logger.InfoContext(ctx, "notification",
		"type", n.Type,
		"user_id", n.UserID.String(),
		"payload", n.Payload,
	)
	return nil
}
