package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/quizforge/training-service/internal/domain"
)

// CanStartLevel decides whether the caller may enter the requested level.
// The check is read-only; a missing progress document counts as all
// incomplete, and a store failure denies rather than allows.
func (s *Service) CanStartLevel(ctx context.Context, token, rawLevel string) (domain.GateDecision, error) {
	identity, err := s.authenticate(ctx, token)
	if err != nil {
		return domain.GateDecision{}, err
	}

	level, err := domain.ParseLevel(rawLevel)
	if err != nil {
		return domain.GateDecision{}, err
	}

	prereq, gated := level.Prerequisite()
	if !gated || !s.cfg.MediumHardGateEnabled {
		return domain.GateDecision{Allowed: true}, nil
	}

	progress, err := s.progress.Get(ctx, identity.UserID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		// First access: nothing completed yet.
		progress = domain.NewUserProgress(identity.UserID)
	default:
		// Deny on read failure. The caller sees a retryable error and must
		// never treat it as permission.
		return domain.GateDecision{Allowed: false}, fmt.Errorf("%w: read progress: %v", domain.ErrUnavailable, err)
	}

	if !progress.LevelCompleted(prereq) {
		return domain.GateDecision{Allowed: false, Reason: level.UnlockReason()}, nil
	}
	return domain.GateDecision{Allowed: true}, nil
}

// CompleteLevel records a finished level attempt and folds the score into
// the caller's aggregate totals. The repository applies the whole update in
// one atomic document transaction.
func (s *Service) CompleteLevel(ctx context.Context, token, rawLevel string, score int64) (domain.UserProgress, error) {
	identity, err := s.authenticate(ctx, token)
	if err != nil {
		return domain.UserProgress{}, err
	}

	level, err := domain.ParseLevel(rawLevel)
	if err != nil {
		return domain.UserProgress{}, err
	}
	if score < 0 {
		return domain.UserProgress{}, fmt.Errorf("%w: score must be non-negative", domain.ErrInvalidArgument)
	}

	username := identity.Name
	if username == "" {
		username = identity.Email
	}
	return s.progress.RecordCompletion(ctx, identity.UserID, username, level, score, s.nowFn())
}

// Progress returns the caller's progress document, substituting the
// implicit all-false default when none exists.
func (s *Service) Progress(ctx context.Context, token string) (domain.UserProgress, error) {
	identity, err := s.authenticate(ctx, token)
	if err != nil {
		return domain.UserProgress{}, err
	}

	progress, err := s.progress.Get(ctx, identity.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewUserProgress(identity.UserID), nil
	}
	return progress, err
}
