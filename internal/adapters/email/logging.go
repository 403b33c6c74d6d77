package email

import (
	"context"
	"log/slog"

	"github.com/quizforge/training-service/internal/ports"
)

// LoggingSender is the local-run stand-in: it logs instead of delivering.
// Codes never appear in the log line, only their length.
type LoggingSender struct {
	logger *slog.Logger
}

func NewLoggingSender(logger *slog.Logger) *LoggingSender {
	return &LoggingSender{logger: logger}
}

func (s *LoggingSender) Send(ctx context.Context, msg ports.EmailMessage) error {
	s.logger.InfoContext(ctx, "email suppressed (logging sender)",
		"operation", "email_send",
		"outcome", "success",
		"to", msg.To,
		"subject", msg.Subject,
		"body_bytes", len(msg.Body),
	)
	return nil
}
