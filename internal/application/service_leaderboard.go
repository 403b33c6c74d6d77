package application

import (
	"context"
	"errors"

	"github.com/quizforge/training-service/internal/domain"
)

// Leaderboard returns the top entries by total score. The limit is clamped
// to the configured maximum; zero or negative asks for the default page.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	max := s.cfg.LeaderboardLimit
	if max <= 0 {
		max = 50
	}
	if limit <= 0 || limit > max {
		limit = max
	}
	return s.leaderboard.Top(ctx, limit)
}

// DeleteAccount removes the caller from the identity provider and deletes
// the progress document, the only cascade that ever deletes progress.
func (s *Service) DeleteAccount(ctx context.Context, token string) error {
	identity, err := s.authenticate(ctx, token)
	if err != nil {
		return err
	}

	if err := s.accounts.DeleteUser(ctx, identity.UserID); err != nil {
		return err
	}
	if err := s.progress.Delete(ctx, identity.UserID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}
