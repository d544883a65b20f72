package handlers

import (
	"errors"
	"net/http"

	"github.com/writewithwrabit/tracker/auth"
	"github.com/writewithwrabit/tracker/models"
	"github.com/writewithwrabit/tracker/store"
)

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	user, err := h.store.GetUser(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		// Nothing written yet.
		user, err = models.User{ID: userID}, nil
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input models.ProfileInput
	if err := decode(r, &input); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.store.SetPublicProfile(r.Context(), auth.UserID(r.Context()), input.Public)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
