package firestore

import (
	"time"

	"github.com/quizforge/training-service/internal/domain"
)

const (
	progressCollection = "user_progress"
	otpCollection      = "otp_codes"
)

// levelStateDoc and progressDoc are the stored shapes. They are separate
// from the domain types so document field names stay stable under domain
// refactors.
type levelStateDoc struct {
	Completed   bool       `firestore:"completed"`
	CompletedAt *time.Time `firestore:"completedAt"`
}

type progressDoc struct {
	UserID        string                   `firestore:"userId"`
	Username      string                   `firestore:"username"`
	Levels        map[string]levelStateDoc `firestore:"levels"`
	TotalScore    int64                    `firestore:"totalScore"`
	BestScore     int64                    `firestore:"bestScore"`
	TotalAttempts int64                    `firestore:"totalAttempts"`
	LastAttemptAt *time.Time               `firestore:"lastAttemptAt"`
}

type otpDoc struct {
	Email     string    `firestore:"email"`
	Purpose   string    `firestore:"purpose"`
	CodeHash  string    `firestore:"codeHash"`
	CreatedAt time.Time `firestore:"createdAt"`
	ExpiresAt time.Time `firestore:"expiresAt"`
	Consumed  bool      `firestore:"consumed"`
}

func toProgressDoc(p domain.UserProgress) progressDoc {
	levels := make(map[string]levelStateDoc, len(p.Levels))
	for level, state := range p.Levels {
		levels[string(level)] = levelStateDoc{Completed: state.Completed, CompletedAt: state.CompletedAt}
	}
	return progressDoc{
		UserID:        p.UserID,
		Username:      p.Username,
		Levels:        levels,
		TotalScore:    p.TotalScore,
		BestScore:     p.BestScore,
		TotalAttempts: p.TotalAttempts,
		LastAttemptAt: p.LastAttemptAt,
	}
}

func fromProgressDoc(d progressDoc) domain.UserProgress {
	levels := make(map[domain.Level]domain.LevelState, len(d.Levels))
	for level, state := range d.Levels {
		levels[domain.Level(level)] = domain.LevelState{Completed: state.Completed, CompletedAt: state.CompletedAt}
	}
	return domain.UserProgress{
		UserID:        d.UserID,
		Username:      d.Username,
		Levels:        levels,
		TotalScore:    d.TotalScore,
		BestScore:     d.BestScore,
		TotalAttempts: d.TotalAttempts,
		LastAttemptAt: d.LastAttemptAt,
	}
}

func toOTPDoc(r domain.OTPRecord) otpDoc {
	return otpDoc{
		Email:     r.Email,
		Purpose:   string(r.Purpose),
		CodeHash:  r.CodeHash,
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
		Consumed:  r.Consumed,
	}
}

func fromOTPDoc(d otpDoc) domain.OTPRecord {
	return domain.OTPRecord{
		Email:     d.Email,
		Purpose:   domain.OTPPurpose(d.Purpose),
		CodeHash:  d.CodeHash,
		CreatedAt: d.CreatedAt,
		ExpiresAt: d.ExpiresAt,
		Consumed:  d.Consumed,
	}
}
