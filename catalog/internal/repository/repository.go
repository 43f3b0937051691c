package repository

import (
	"errors"
	"time"

	"cinecircle/catalog/pkg/model"
)

var (
	// ErrNotFound is returned when a requested item is not found.
	ErrNotFound = errors.New("not found")
	// ErrIncompleteMoodScores is returned when a mood score set misses a mood
	// or carries a score outside [0,1].
	ErrIncompleteMoodScores = errors.New("mood scores must cover every mood within [0,1]")
)

// CheckMoodScores reports whether an item carries either no mood scores or a
// complete in-range set together with its scoring time.
func CheckMoodScores(scores model.MoodScores, scoredAt *time.Time) error {
	if scoredAt == nil && len(scores) == 0 {
		return nil
	}
	if scoredAt == nil || !scores.Complete() || !scores.InRange() {
		return ErrIncompleteMoodScores
	}
	return nil
}
