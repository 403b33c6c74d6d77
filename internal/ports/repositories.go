package ports

import (
	"context"
	"time"

	"github.com/quizforge/training-service/internal/domain"
)

// ProgressRepository is the Document Store contract for per-user progress.
// Get returns domain.ErrNotFound when no document exists yet; the
// application layer substitutes the implicit all-false default.
type ProgressRepository interface {
	Get(ctx context.Context, userID string) (domain.UserProgress, error)
	// RecordCompletion marks a level completed and folds the score into the
	// aggregate fields in a single atomic document update.
	RecordCompletion(ctx context.Context, userID, username string, level domain.Level, score int64, at time.Time) (domain.UserProgress, error)
	Delete(ctx context.Context, userID string) error
}

// OTPRepository owns OTP record lifecycle. Put overwrites any prior record
// for the same key, which is how supersession is implemented. Consume must
// be an atomic read-check-write: of N concurrent consumers of the same
// record, exactly one may succeed.
type OTPRepository interface {
	Put(ctx context.Context, record domain.OTPRecord) error
	// Consume flips the consumed flag if and only if the stored record still
	// matches codeHash, is unconsumed and unexpired at now. It returns the
	// same sentinel errors Get-side validation would: domain.ErrNotFound,
	// domain.ErrExpired, domain.ErrAlreadyUsed, domain.ErrInvalidCode.
	Consume(ctx context.Context, email string, purpose domain.OTPPurpose, codeHash string, now time.Time) error
	// DeleteExpired removes records past their expiry. Correctness does not
	// depend on it; expiry is always checked on read.
	DeleteExpired(ctx context.Context, before time.Time, limit int) (int, error)
}

// LeaderboardRepository serves the read-only ranking projection.
type LeaderboardRepository interface {
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}
