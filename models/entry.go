package models

import (
	"fmt"
	"time"
)

// HabitEntry is one day of a habit. Rotation and Ink only affect how the
// mark is drawn.
type HabitEntry struct {
	ID        int64     `json:"id"`
	HabitID   int64     `json:"habitId"`
	Day       int       `json:"day"`
	Completed bool      `json:"completed"`
	Rotation  int       `json:"rotation"`
	Ink       int       `json:"ink"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type EntryInput struct {
	Completed bool `json:"completed"`
	Rotation  *int `json:"rotation"`
	Ink       *int `json:"ink"`
}

const (
	MaxRotation = 359
	MaxInk      = 7
)

func (e EntryInput) Validate() error {
	if e.Rotation != nil && (*e.Rotation < 0 || *e.Rotation > MaxRotation) {
		return fmt.Errorf("%w: rotation must be between 0 and %d", ErrValidation, MaxRotation)
	}
	if e.Ink != nil && (*e.Ink < 0 || *e.Ink > MaxInk) {
		return fmt.Errorf("%w: ink must be between 0 and %d", ErrValidation, MaxInk)
	}
	return nil
}

// ValidateDay checks day against the habit's month.
func ValidateDay(h Habit, day int) error {
	if day < 1 || day > DaysIn(h.Year, h.Month) {
		return fmt.Errorf("%w: day %d is not in %04d-%02d", ErrValidation, day, h.Year, h.Month)
	}
	return nil
}
