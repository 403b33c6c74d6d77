package domain

import "time"

// LevelState is the persisted completion flag for a single tier.
type LevelState struct {
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// UserProgress is the per-user progress document. A missing document is
// equivalent to one with every level incomplete.
type UserProgress struct {
	UserID        string               `json:"userId"`
	Username      string               `json:"username"`
	Levels        map[Level]LevelState `json:"levels"`
	TotalScore    int64                `json:"totalScore"`
	BestScore     int64                `json:"bestScore"`
	TotalAttempts int64                `json:"totalAttempts"`
	LastAttemptAt *time.Time           `json:"lastAttemptAt,omitempty"`
}

// NewUserProgress returns the implicit default document: all levels incomplete.
func NewUserProgress(userID string) UserProgress {
	levels := make(map[Level]LevelState, len(Levels))
	for _, l := range Levels {
		levels[l] = LevelState{}
	}
	return UserProgress{UserID: userID, Levels: levels}
}

// LevelCompleted reports whether the given tier is completed. Absent entries
// count as incomplete, so corrupted or partial documents default to locked.
func (p UserProgress) LevelCompleted(level Level) bool {
	if p.Levels == nil {
		return false
	}
	return p.Levels[level].Completed
}

// GateDecision is the evaluator's answer for one access check.
type GateDecision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// LeaderboardEntry is the read-only ranking projection derived from
// progress documents.
type LeaderboardEntry struct {
	UserID        string     `json:"userId"`
	Username      string     `json:"username"`
	TotalScore    int64      `json:"totalScore"`
	BestScore     int64      `json:"bestScore"`
	TotalAttempts int64      `json:"totalAttempts"`
	LastAttemptAt *time.Time `json:"lastAttemptAt,omitempty"`
}
