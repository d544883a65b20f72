package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/writewithwrabit/tracker/logger"
	"github.com/writewithwrabit/tracker/models"
	"github.com/writewithwrabit/tracker/store"
	"github.com/writewithwrabit/tracker/tracker"
)

type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "Internal server error"

	switch {
	case errors.Is(err, models.ErrValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, tracker.ErrInvalidArgument):
		status, msg = http.StatusUnauthorized, "Access denied"
	case errors.Is(err, store.ErrNotFound):
		status, msg = http.StatusNotFound, "Not found"
	case errors.Is(err, store.ErrConflict):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(r.Context().Err(), context.DeadlineExceeded):
		// middleware.Timeout writes the 504 once the handler returns.
		logger.Warn("request timed out", "method", r.Method, "path", r.URL.Path, "error", err)
		return
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	respondJSON(w, status, errorBody{Error: msg})
}

func decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid body: %v", models.ErrValidation, err)
	}
	return nil
}

func intParam(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", models.ErrValidation, name)
	}
	return v, nil
}

func habitID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid habit id", models.ErrValidation)
	}
	return id, nil
}

// scope reads and validates {year} and {month}.
func scope(r *http.Request) (int, int, error) {
	year, err := intParam(r, "year")
	if err != nil {
		return 0, 0, err
	}
	month, err := intParam(r, "month")
	if err != nil {
		return 0, 0, err
	}
	if err := models.ValidateScope(year, month); err != nil {
		return 0, 0, err
	}
	return year, month, nil
}
