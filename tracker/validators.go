package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/writewithwrabit/tracker/models"
)

// Validators are the conditional GET headers of a monthly view.
type Validators struct {
	ETag         string
	LastModified time.Time
}

// Month is the state of one scope together with its validators.
type Month struct {
	Habits  []models.Habit
	Entries []models.HabitEntry
	Validators
}

// Load reads the scope once and derives both validators from that read, so a
// view rendered from the returned habits and entries always matches its ETag.
func Load(ctx context.Context, repo Repository, userID string, year, month int, loc *time.Location) (Month, error) {
	if userID == "" {
		return Month{}, fmt.Errorf("validators: %w: user is required", ErrInvalidArgument)
	}
	if loc == nil {
		loc = time.UTC
	}

	snap, err := load(ctx, repo, userID, year, month)
	if err != nil {
		return Month{}, fmt.Errorf("validators %s %04d-%02d: %w", userID, year, month, err)
	}

	modified := lastModified(snap, MonthStart(year, month, loc))
	return Month{
		Habits:  snap.habits,
		Entries: snap.entries,
		Validators: Validators{
			ETag:         fingerprint(userID, year, month, snap, &modified),
			LastModified: modified,
		},
	}, nil
}

// Compute is Load without the data.
func Compute(ctx context.Context, repo Repository, userID string, year, month int, loc *time.Location) (Validators, error) {
	m, err := Load(ctx, repo, userID, year, month, loc)
	if err != nil {
		return Validators{}, err
	}
	return m.Validators, nil
}
