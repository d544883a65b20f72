// Package tracker derives the cache validators (ETag and Last-Modified) for a
// user's monthly habit view.
package tracker

import (
	"context"
	"errors"

	"github.com/writewithwrabit/tracker/models"
)

// ErrInvalidArgument is returned when a scope is missing its user.
var ErrInvalidArgument = errors.New("invalid argument")

// Repository is the read path both validators are computed from.
type Repository interface {
	// ActiveHabitsInScope returns the active habits of (userID, year, month)
	// ordered by id ascending.
	ActiveHabitsInScope(ctx context.Context, userID string, year, month int) ([]models.Habit, error)
	// EntriesForHabits returns the entries of the given habits ordered by id
	// ascending.
	EntriesForHabits(ctx context.Context, habitIDs []int64) ([]models.HabitEntry, error)
}

// snapshot is the habit and entry state of one scope.
type snapshot struct {
	habits  []models.Habit
	entries []models.HabitEntry
}

func load(ctx context.Context, repo Repository, userID string, year, month int) (snapshot, error) {
	habits, err := repo.ActiveHabitsInScope(ctx, userID, year, month)
	if err != nil {
		return snapshot{}, err
	}
	if len(habits) == 0 {
		return snapshot{}, nil
	}

	ids := make([]int64, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}

	entries, err := repo.EntriesForHabits(ctx, ids)
	if err != nil {
		return snapshot{}, err
	}

	return snapshot{habits: habits, entries: entries}, nil
}
