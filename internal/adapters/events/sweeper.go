package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/quizforge/training-service/internal/ports"
)

// Sweeper periodically deletes expired OTP records. Correctness never
// depends on it running; expiry is checked on every read. It only keeps
// the collection from accumulating dead documents.
type Sweeper struct {
	logger    *slog.Logger
	otps      ports.OTPRepository
	interval  time.Duration
	batchSize int
}

func NewSweeper(logger *slog.Logger, otps ports.OTPRepository, interval time.Duration, batchSize int) *Sweeper {
	return &Sweeper{
		logger:    logger,
		otps:      otps,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run loops until the context is cancelled, sweeping one batch per tick.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	deleted, err := s.otps.DeleteExpired(ctx, time.Now().UTC(), s.batchSize)
	if err != nil {
		s.logger.WarnContext(ctx, "otp sweep failed",
			"operation", "otp_sweep",
			"outcome", "failure",
			"deleted", deleted,
			"error", err.Error(),
		)
		return
	}
	if deleted > 0 {
		s.logger.InfoContext(ctx, "otp sweep completed",
			"operation", "otp_sweep",
			"outcome", "success",
			"deleted", deleted,
		)
	}
}
