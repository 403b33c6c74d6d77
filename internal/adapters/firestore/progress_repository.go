package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/quizforge/training-service/internal/domain"
)

// ProgressRepository persists the per-user progress documents and serves
// the leaderboard projection derived from them.
type ProgressRepository struct {
	client *firestore.Client
}

func NewProgressRepository(client *firestore.Client) *ProgressRepository {
	return &ProgressRepository{client: client}
}

func (r *ProgressRepository) doc(userID string) *firestore.DocumentRef {
	return r.client.Collection(progressCollection).Doc(userID)
}

func (r *ProgressRepository) Get(ctx context.Context, userID string) (domain.UserProgress, error) {
	snap, err := r.doc(userID).Get(ctx)
	if err != nil {
		return domain.UserProgress{}, mapStoreError(err)
	}
	var d progressDoc
	if err := snap.DataTo(&d); err != nil {
		return domain.UserProgress{}, err
	}
	return fromProgressDoc(d), nil
}

// RecordCompletion applies the whole completion update in one transaction:
// level flag, completion time and the aggregate scoring fields move
// together or not at all.
func (r *ProgressRepository) RecordCompletion(ctx context.Context, userID, username string, level domain.Level, score int64, at time.Time) (domain.UserProgress, error) {
	docRef := r.doc(userID)
	var result domain.UserProgress

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		progress := domain.NewUserProgress(userID)
		snap, err := tx.Get(docRef)
		switch {
		case err == nil:
			var d progressDoc
			if err := snap.DataTo(&d); err != nil {
				return err
			}
			progress = fromProgressDoc(d)
		case isNotFound(err):
			// First completion creates the document.
		default:
			return err
		}

		if progress.Levels == nil {
			progress.Levels = make(map[domain.Level]domain.LevelState, len(domain.Levels))
		}
		state := progress.Levels[level]
		state.Completed = true
		completedAt := at
		if state.CompletedAt == nil {
			state.CompletedAt = &completedAt
		}
		progress.Levels[level] = state

		progress.UserID = userID
		if username != "" {
			progress.Username = username
		}
		progress.TotalScore += score
		if score > progress.BestScore {
			progress.BestScore = score
		}
		progress.TotalAttempts++
		lastAttempt := at
		progress.LastAttemptAt = &lastAttempt

		result = progress
		return tx.Set(docRef, toProgressDoc(progress))
	})
	if err != nil {
		return domain.UserProgress{}, mapStoreError(err)
	}
	return result, nil
}

func (r *ProgressRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.doc(userID).Delete(ctx)
	return mapStoreError(err)
}

// Top returns the highest-scoring progress documents. The leaderboard is a
// read-only projection; nothing here writes score fields.
func (r *ProgressRepository) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	iter := r.client.Collection(progressCollection).
		OrderBy("totalScore", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	entries := make([]domain.LeaderboardEntry, 0, limit)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapStoreError(err)
		}
		var d progressDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, err
		}
		entries = append(entries, domain.LeaderboardEntry{
			UserID:        d.UserID,
			Username:      d.Username,
			TotalScore:    d.TotalScore,
			BestScore:     d.BestScore,
			TotalAttempts: d.TotalAttempts,
			LastAttemptAt: d.LastAttemptAt,
		})
	}
	return entries, nil
}
