package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes every message to the logger.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier backed by logger.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send logs the message. It never fails.
func (n *LogNotifier) Send(_ context.Context, message string) error {
	n.logger.Info("Sending notification", zap.String("message", message))
	return nil
}
