package domain

import (
	"fmt"
	"strings"
)

// Level is a question-set difficulty tier. Access to each tier is gated on
// completion of the one below it.
type Level string

const (
	LevelEasy   Level = "easy"
	LevelMedium Level = "medium"
	LevelHard   Level = "hard"
)

// Levels lists the tiers in unlock order.
var Levels = []Level{LevelEasy, LevelMedium, LevelHard}

// ParseLevel normalizes and validates a level name.
func ParseLevel(raw string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(raw))) {
	case LevelEasy:
		return LevelEasy, nil
	case LevelMedium:
		return LevelMedium, nil
	case LevelHard:
		return LevelHard, nil
	default:
		return "", fmt.Errorf("%w: unknown level %q", ErrInvalidArgument, raw)
	}
}

// Prerequisite returns the level that must be completed before this one,
// or false for the entry tier.
func (l Level) Prerequisite() (Level, bool) {
	switch l {
	case LevelMedium:
		return LevelEasy, true
	case LevelHard:
		return LevelMedium, true
	default:
		return "", false
	}
}

// UnlockReason is the user-facing denial message for a locked level.
// The client displays it verbatim.
func (l Level) UnlockReason() string {
	switch l {
	case LevelMedium:
		return "Complete Easy level to unlock"
	case LevelHard:
		return "Complete Medium level to unlock"
	default:
		return ""
	}
}
