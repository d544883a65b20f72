package handlers

import (
	"net/http"

	"github.com/writewithwrabit/tracker/auth"
	"github.com/writewithwrabit/tracker/models"
)

type reorderInput struct {
	IDs []int64 `json:"ids"`
}

type copyResult struct {
	Copied int `json:"copied"`
}

func (h *Handler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	year, month, err := scope(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var input models.NewHabit
	if err := decode(r, &input); err != nil {
		respondError(w, r, err)
		return
	}
	if err := input.Normalize(); err != nil {
		respondError(w, r, err)
		return
	}

	habit, err := h.store.CreateHabit(r.Context(), auth.UserID(r.Context()), year, month, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, habit)
}

func (h *Handler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	id, err := habitID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var input models.UpdatedHabit
	if err := decode(r, &input); err != nil {
		respondError(w, r, err)
		return
	}
	if err := input.Normalize(); err != nil {
		respondError(w, r, err)
		return
	}

	habit, err := h.store.UpdateHabit(r.Context(), auth.UserID(r.Context()), id, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, habit)
}

func (h *Handler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	id, err := habitID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.store.DeactivateHabit(r.Context(), auth.UserID(r.Context()), id); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RestoreHabit(w http.ResponseWriter, r *http.Request) {
	id, err := habitID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	habit, err := h.store.RestoreHabit(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, habit)
}

func (h *Handler) ReorderHabits(w http.ResponseWriter, r *http.Request) {
	year, month, err := scope(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var input reorderInput
	if err := decode(r, &input); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.store.ReorderHabits(r.Context(), auth.UserID(r.Context()), year, month, input.IDs); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CopyPreviousMonth(w http.ResponseWriter, r *http.Request) {
	year, month, err := scope(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	copied, err := h.store.CopyPreviousMonth(r.Context(), auth.UserID(r.Context()), year, month)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, copyResult{Copied: copied})
}
