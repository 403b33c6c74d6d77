package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quizforge/training-service/internal/domain"
)

type countingOTPs struct {
	sweeps atomic.Int64
	err    error
}

func (c *countingOTPs) Put(context.Context, domain.OTPRecord) error { return nil }

func (c *countingOTPs) Consume(context.Context, string, domain.OTPPurpose, string, time.Time) error {
	return domain.ErrNotFound
}

func (c *countingOTPs) DeleteExpired(context.Context, time.Time, int) (int, error) {
	c.sweeps.Add(1)
	if c.err != nil {
		return 0, c.err
	}
	return 3, nil
}

func TestSweeperRunsUntilCancelled(t *testing.T) {
	t.Parallel()

	repo := &countingOTPs{}
	sweeper := NewSweeper(slog.New(slog.NewTextHandler(io.Discard, nil)), repo, 5*time.Millisecond, 100)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sweeper.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for repo.sweeps.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("sweeper never ran, sweeps=%d", repo.sweeps.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSweeperSurvivesStoreFailure(t *testing.T) {
	t.Parallel()

	repo := &countingOTPs{err: errors.New("firestore unavailable")}
	sweeper := NewSweeper(slog.New(slog.NewTextHandler(io.Discard, nil)), repo, 5*time.Millisecond, 100)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_ = sweeper.Run(ctx)

	if repo.sweeps.Load() == 0 {
		t.Fatalf("sweeper should keep ticking through failures")
	}
}
