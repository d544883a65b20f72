package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	"github.com/writewithwrabit/tracker/auth"
	"github.com/writewithwrabit/tracker/models"
	"github.com/writewithwrabit/tracker/tracker"
)

// Store is everything the handlers read and write.
type Store interface {
	tracker.Repository
	Snapshot(ctx context.Context, fn func(tracker.Repository) error) error
	Ping(ctx context.Context) error

	EnsureUser(ctx context.Context, userID string) error
	GetUser(ctx context.Context, userID string) (models.User, error)
	UserByPublicSlug(ctx context.Context, slug string) (models.User, error)
	SetPublicProfile(ctx context.Context, userID string, public bool) (models.User, error)

	GetHabit(ctx context.Context, userID string, id int64) (models.Habit, error)
	CreateHabit(ctx context.Context, userID string, year, month int, input models.NewHabit) (models.Habit, error)
	UpdateHabit(ctx context.Context, userID string, id int64, input models.UpdatedHabit) (models.Habit, error)
	DeactivateHabit(ctx context.Context, userID string, id int64) error
	RestoreHabit(ctx context.Context, userID string, id int64) (models.Habit, error)
	ReorderHabits(ctx context.Context, userID string, year, month int, ids []int64) error
	CopyPreviousMonth(ctx context.Context, userID string, year, month int) (int, error)

	UpsertEntry(ctx context.Context, habitID int64, day int, input models.EntryInput) (models.HabitEntry, error)
	DeleteEntry(ctx context.Context, habitID int64, day int) error

	ReflectionsForMonth(ctx context.Context, userID string, year, month int) ([]models.DailyReflection, error)
	UpsertReflection(ctx context.Context, userID, date, content string) (models.DailyReflection, error)
	DeleteReflection(ctx context.Context, userID, date string) error
}

type Handler struct {
	store Store
	loc   *time.Location
}

// New returns handlers computing month boundaries in loc.
func New(store Store, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{store: store, loc: loc}
}

type RouterConfig struct {
	Verifier       auth.TokenVerifier
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func (h *Handler) Routes(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "If-None-Match", "If-Modified-Since"},
		ExposedHeaders:   []string{"ETag", "Last-Modified"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)
	r.Use(auth.Middleware(cfg.Verifier))

	r.Get("/healthz", h.Health)
	r.Get("/public/{slug}/{year}/{month}", h.PublicTracker)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Use(h.ensureUser)

		r.Get("/me/profile", h.Profile)
		r.Put("/me/profile", h.UpdateProfile)

		r.Route("/trackers/{year}/{month}", func(r chi.Router) {
			r.Get("/", h.Tracker)
			r.Post("/habits", h.CreateHabit)
			r.Put("/habits/order", h.ReorderHabits)
			r.Post("/copy", h.CopyPreviousMonth)
		})

		r.Route("/habits/{id}", func(r chi.Router) {
			r.Patch("/", h.UpdateHabit)
			r.Delete("/", h.DeleteHabit)
			r.Post("/restore", h.RestoreHabit)
			r.Put("/entries/{day}", h.PutEntry)
			r.Delete("/entries/{day}", h.DeleteEntry)
		})

		r.Get("/reflections/{year}/{month}", h.Reflections)
		r.Put("/reflections/{date}", h.PutReflection)
	})

	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ensureUser creates the user row before the first write.
func (h *Handler) ensureUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			if err := h.store.EnsureUser(r.Context(), auth.UserID(r.Context())); err != nil {
				respondError(w, r, err)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
