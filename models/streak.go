package models

// Streak summarizes one habit's month. It only depends on the entries, so it
// is covered by the tracker fingerprint.
type Streak struct {
	HabitID       int64 `json:"habitId"`
	CompletedDays int   `json:"completedDays"`
	LongestRun    int   `json:"longestRun"`
}

// StreakFor counts completed days and the longest run of consecutive
// completed days among entries of a single habit.
func StreakFor(habitID int64, entries []HabitEntry) Streak {
	done := make(map[int]bool, len(entries))
	maxDay := 0
	for _, e := range entries {
		if e.HabitID != habitID || !e.Completed {
			continue
		}
		done[e.Day] = true
		if e.Day > maxDay {
			maxDay = e.Day
		}
	}

	s := Streak{HabitID: habitID, CompletedDays: len(done)}
	run := 0
	for day := 1; day <= maxDay; day++ {
		if !done[day] {
			run = 0
			continue
		}
		run++
		if run > s.LongestRun {
			s.LongestRun = run
		}
	}
	return s
}
