package handlers

import (
	"net/http"

	"github.com/writewithwrabit/tracker/auth"
	"github.com/writewithwrabit/tracker/models"
	"github.com/writewithwrabit/tracker/store"
)

// activeHabit loads the {id} habit of the signed in user and checks {day}
// against its month.
func (h *Handler) activeHabit(r *http.Request) (models.Habit, int, error) {
	id, err := habitID(r)
	if err != nil {
		return models.Habit{}, 0, err
	}
	day, err := intParam(r, "day")
	if err != nil {
		return models.Habit{}, 0, err
	}

	habit, err := h.store.GetHabit(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		return models.Habit{}, 0, err
	}
	if !habit.Active {
		return models.Habit{}, 0, store.ErrNotFound
	}
	if err := models.ValidateDay(habit, day); err != nil {
		return models.Habit{}, 0, err
	}

	return habit, day, nil
}

func (h *Handler) PutEntry(w http.ResponseWriter, r *http.Request) {
	habit, day, err := h.activeHabit(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var input models.EntryInput
	if err := decode(r, &input); err != nil {
		respondError(w, r, err)
		return
	}
	if err := input.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	entry, err := h.store.UpsertEntry(r.Context(), habit.ID, day, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	habit, day, err := h.activeHabit(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.store.DeleteEntry(r.Context(), habit.ID, day); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
