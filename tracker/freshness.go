package tracker

import (
	"context"
	"fmt"
	"time"
)

// LastModified returns the newest updated_at among the active habits of the
// scope and their entries, truncated to seconds. An empty scope yields the
// first instant of the month in loc (UTC when nil), so the value stays stable
// until something is written.
func LastModified(ctx context.Context, repo Repository, userID string, year, month int, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	floor := MonthStart(year, month, loc)
	if userID == "" {
		return floor, nil
	}

	snap, err := load(ctx, repo, userID, year, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("last modified %s %04d-%02d: %w", userID, year, month, err)
	}

	return lastModified(snap, floor), nil
}

func lastModified(snap snapshot, floor time.Time) time.Time {
	var newest time.Time
	found := false
	for _, h := range snap.habits {
		if !found || h.UpdatedAt.After(newest) {
			newest, found = h.UpdatedAt, true
		}
	}
	for _, e := range snap.entries {
		if !found || e.UpdatedAt.After(newest) {
			newest, found = e.UpdatedAt, true
		}
	}

	if !found {
		return floor
	}
	return newest.Truncate(time.Second)
}

// MonthStart is midnight of the first day of the month in loc.
func MonthStart(year, month int, loc *time.Location) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
}
