// Package notification provides service.Notifier implementations.
package notification

import (
	"context"
	"log/slog"

	"habit/internal/domain/service"
	"habit/internal/util"
)

// LogNotifier writes messages to the log instead of sending them.
// It is used when no SMTP relay is configured.
type LogNotifier struct {
	logger *slog.Logger
}

var _ service.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(ctx context.Context, to, subject, body string) bool {
	n.logger.InfoContext(ctx, "Email delivery skipped, no SMTP relay configured",
		slog.String("to", util.MaskEmail(to)),
		slog.String("subject", subject),
		slog.Int("bodyLength", len(body)),
	)

	return true
}
