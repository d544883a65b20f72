package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxReflectionLength = 280
	DateLayout          = "2006-01-02"
)

type DailyReflection struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReflectionInput struct {
	Content string `json:"content"`
}

func (r *ReflectionInput) Normalize() error {
	r.Content = strings.TrimSpace(r.Content)
	if utf8.RuneCountInString(r.Content) > MaxReflectionLength {
		return fmt.Errorf("%w: reflection is longer than %d characters", ErrValidation, MaxReflectionLength)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return d, nil
}
