package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrValidation is wrapped by every model validation failure.
var ErrValidation = errors.New("validation failed")

const MaxHabitNameLength = 100

type CheckType string

const (
	CheckTypeXMarks CheckType = "x_marks"
	CheckTypeBlots  CheckType = "blots"
)

func (c CheckType) Valid() bool {
	return c == CheckTypeXMarks || c == CheckTypeBlots
}

type Habit struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	CheckType CheckType `json:"checkType"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NewHabit struct {
	Name      string    `json:"name"`
	CheckType CheckType `json:"checkType"`
}

type UpdatedHabit struct {
	Name      *string    `json:"name"`
	CheckType *CheckType `json:"checkType"`
	Position  *int       `json:"position"`
}

// Normalize trims the name and fills in the default check type.
func (h *NewHabit) Normalize() error {
	h.Name = strings.TrimSpace(h.Name)
	if h.CheckType == "" {
		h.CheckType = CheckTypeXMarks
	}
	if err := ValidateHabitName(h.Name); err != nil {
		return err
	}
	if !h.CheckType.Valid() {
		return fmt.Errorf("%w: unknown check type %q", ErrValidation, h.CheckType)
	}
	return nil
}

func (h *UpdatedHabit) Normalize() error {
	if h.Name != nil {
		name := strings.TrimSpace(*h.Name)
		if err := ValidateHabitName(name); err != nil {
			return err
		}
		h.Name = &name
	}
	if h.CheckType != nil && !h.CheckType.Valid() {
		return fmt.Errorf("%w: unknown check type %q", ErrValidation, *h.CheckType)
	}
	if h.Position != nil && *h.Position < 1 {
		return fmt.Errorf("%w: position must be positive", ErrValidation)
	}
	return nil
}

func ValidateHabitName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if utf8.RuneCountInString(name) > MaxHabitNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrValidation, MaxHabitNameLength)
	}
	return nil
}

// ValidateScope checks a (year, month) pair coming from a request.
func ValidateScope(year, month int) error {
	if year < 1 || year > 9999 {
		return fmt.Errorf("%w: year %d out of range", ErrValidation, year)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrValidation, month)
	}
	return nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// PreviousMonth returns the scope right before (year, month).
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}
