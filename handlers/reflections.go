package handlers

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/writewithwrabit/tracker/auth"
	"github.com/writewithwrabit/tracker/models"
)

func (h *Handler) Reflections(w http.ResponseWriter, r *http.Request) {
	year, month, err := scope(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	reflections, err := h.store.ReflectionsForMonth(r.Context(), auth.UserID(r.Context()), year, month)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, reflections)
}

// PutReflection writes the reflection of {date}. Empty content removes it.
func (h *Handler) PutReflection(w http.ResponseWriter, r *http.Request) {
	date, err := models.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	var input models.ReflectionInput
	if err := decode(r, &input); err != nil {
		respondError(w, r, err)
		return
	}
	if err := input.Normalize(); err != nil {
		respondError(w, r, err)
		return
	}

	userID := auth.UserID(r.Context())
	day := date.Format(models.DateLayout)

	if input.Content == "" {
		if err := h.store.DeleteReflection(r.Context(), userID, day); err != nil {
			respondError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	reflection, err := h.store.UpsertReflection(r.Context(), userID, day, input.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, reflection)
}
