package handlers

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi"

	"github.com/writewithwrabit/tracker/auth"
	"github.com/writewithwrabit/tracker/models"
	"github.com/writewithwrabit/tracker/tracker"
)

type habitView struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	Position  int                 `json:"position"`
	CheckType models.CheckType    `json:"checkType"`
	Entries   []models.HabitEntry `json:"entries"`
	Streak    models.Streak       `json:"streak"`
}

type trackerView struct {
	Year        int         `json:"year"`
	Month       int         `json:"month"`
	DaysInMonth int         `json:"daysInMonth"`
	Habits      []habitView `json:"habits"`
}

func newTrackerView(year, month int, m tracker.Month) trackerView {
	byHabit := map[int64][]models.HabitEntry{}
	for _, e := range m.Entries {
		byHabit[e.HabitID] = append(byHabit[e.HabitID], e)
	}

	view := trackerView{Year: year, Month: month, DaysInMonth: models.DaysIn(year, month), Habits: []habitView{}}
	for _, h := range m.Habits {
		entries := byHabit[h.ID]
		if entries == nil {
			entries = []models.HabitEntry{}
		}
		view.Habits = append(view.Habits, habitView{
			ID:        h.ID,
			Name:      h.Name,
			Position:  h.Position,
			CheckType: h.CheckType,
			Entries:   entries,
			Streak:    models.StreakFor(h.ID, entries),
		})
	}

	sort.SliceStable(view.Habits, func(i, j int) bool {
		return view.Habits[i].Position < view.Habits[j].Position
	})
	return view
}

// Tracker serves the signed in user's month with conditional GET support.
func (h *Handler) Tracker(w http.ResponseWriter, r *http.Request) {
	year, month, err := scope(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.serveTracker(w, r, auth.UserID(r.Context()), year, month, "private, no-cache")
}

// PublicTracker serves the same view read-only for an enabled public profile.
func (h *Handler) PublicTracker(w http.ResponseWriter, r *http.Request) {
	year, month, err := scope(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.store.UserByPublicSlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.serveTracker(w, r, user.ID, year, month, "public, no-cache")
}

func (h *Handler) serveTracker(w http.ResponseWriter, r *http.Request, userID string, year, month int, cacheControl string) {
	var m tracker.Month
	err := h.store.Snapshot(r.Context(), func(repo tracker.Repository) error {
		var err error
		m, err = tracker.Load(r.Context(), repo, userID, year, month, h.loc)
		return err
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("Vary", "Authorization")
	setValidators(w, m.Validators)

	if isFresh(r, m.Validators) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	respondJSON(w, http.StatusOK, newTrackerView(year, month, m))
}
