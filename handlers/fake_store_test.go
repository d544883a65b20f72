package handlers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/writewithwrabit/tracker/models"
	"github.com/writewithwrabit/tracker/store"
	"github.com/writewithwrabit/tracker/tracker"
)

// fakeStore mirrors the SQL semantics of store.Store in memory.
type fakeStore struct {
	now         time.Time
	nextID      int64
	users       map[string]*models.User
	habits      map[int64]*models.Habit
	entries     map[int64]*models.HabitEntry
	reflections map[string]*models.DailyReflection
	pingErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		now:         time.Date(2025, 10, 5, 9, 0, 0, 0, time.UTC),
		users:       map[string]*models.User{},
		habits:      map[int64]*models.Habit{},
		entries:     map[int64]*models.HabitEntry{},
		reflections: map[string]*models.DailyReflection{},
	}
}

func (s *fakeStore) tick(d time.Duration) { s.now = s.now.Add(d) }

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) Snapshot(ctx context.Context, fn func(tracker.Repository) error) error {
	return fn(s)
}

func (s *fakeStore) Ping(ctx context.Context) error { return s.pingErr }

func (s *fakeStore) ActiveHabitsInScope(ctx context.Context, userID string, year, month int) ([]models.Habit, error) {
	var out []models.Habit
	for _, h := range s.habits {
		if h.UserID == userID && h.Year == year && h.Month == month && h.Active {
			out = append(out, *h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) EntriesForHabits(ctx context.Context, habitIDs []int64) ([]models.HabitEntry, error) {
	want := map[int64]bool{}
	for _, id := range habitIDs {
		want[id] = true
	}
	var out []models.HabitEntry
	for _, e := range s.entries {
		if want[e.HabitID] {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) EnsureUser(ctx context.Context, userID string) error {
	if _, ok := s.users[userID]; !ok {
		s.users[userID] = &models.User{ID: userID, CreatedAt: s.now, UpdatedAt: s.now}
	}
	return nil
}

func (s *fakeStore) GetUser(ctx context.Context, userID string) (models.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return *u, nil
}

func (s *fakeStore) UserByPublicSlug(ctx context.Context, slug string) (models.User, error) {
	for _, u := range s.users {
		if u.PublicEnabled && u.PublicSlug != nil && *u.PublicSlug == slug {
			return *u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *fakeStore) SetPublicProfile(ctx context.Context, userID string, public bool) (models.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	if public && u.PublicSlug == nil {
		slug := uuid.New().String()
		u.PublicSlug = &slug
	}
	u.PublicEnabled = public
	u.UpdatedAt = s.now
	return *u, nil
}

func (s *fakeStore) nextPosition(userID string, year, month int) int {
	max := 0
	for _, h := range s.habits {
		if h.UserID == userID && h.Year == year && h.Month == month && h.Active && h.Position > max {
			max = h.Position
		}
	}
	return max + 1
}

func (s *fakeStore) GetHabit(ctx context.Context, userID string, id int64) (models.Habit, error) {
	h, ok := s.habits[id]
	if !ok || h.UserID != userID {
		return models.Habit{}, store.ErrNotFound
	}
	return *h, nil
}

func (s *fakeStore) CreateHabit(ctx context.Context, userID string, year, month int, input models.NewHabit) (models.Habit, error) {
	h := &models.Habit{
		ID: s.id(), UserID: userID, Year: year, Month: month, Name: input.Name,
		Position: s.nextPosition(userID, year, month), CheckType: input.CheckType, Active: true,
		CreatedAt: s.now, UpdatedAt: s.now,
	}
	s.habits[h.ID] = h
	return *h, nil
}

func (s *fakeStore) UpdateHabit(ctx context.Context, userID string, id int64, input models.UpdatedHabit) (models.Habit, error) {
	h, ok := s.habits[id]
	if !ok || h.UserID != userID || !h.Active {
		return models.Habit{}, store.ErrNotFound
	}
	if input.Position != nil {
		for _, o := range s.habits {
			if o.ID != h.ID && o.UserID == userID && o.Year == h.Year && o.Month == h.Month && o.Active && o.Position == *input.Position {
				return models.Habit{}, store.ErrConflict
			}
		}
		h.Position = *input.Position
	}
	if input.Name != nil {
		h.Name = *input.Name
	}
	if input.CheckType != nil {
		h.CheckType = *input.CheckType
	}
	h.UpdatedAt = s.now
	return *h, nil
}

func (s *fakeStore) DeactivateHabit(ctx context.Context, userID string, id int64) error {
	h, ok := s.habits[id]
	if !ok || h.UserID != userID || !h.Active {
		return store.ErrNotFound
	}
	h.Active = false
	h.UpdatedAt = s.now
	for _, other := range s.habits {
		if other.UserID == userID && other.Year == h.Year && other.Month == h.Month && other.Active {
			other.UpdatedAt = s.now
		}
	}
	return nil
}

func (s *fakeStore) RestoreHabit(ctx context.Context, userID string, id int64) (models.Habit, error) {
	h, ok := s.habits[id]
	if !ok || h.UserID != userID || h.Active {
		return models.Habit{}, store.ErrNotFound
	}
	h.Position = s.nextPosition(userID, h.Year, h.Month)
	h.Active = true
	h.UpdatedAt = s.now
	return *h, nil
}

func (s *fakeStore) ReorderHabits(ctx context.Context, userID string, year, month int, ids []int64) error {
	current, _ := s.ActiveHabitsInScope(ctx, userID, year, month)
	if len(current) != len(ids) {
		return fmt.Errorf("%w: expected %d habit ids, got %d", models.ErrValidation, len(current), len(ids))
	}
	for i, id := range ids {
		h, ok := s.habits[id]
		if !ok || h.UserID != userID || h.Year != year || h.Month != month || !h.Active {
			return fmt.Errorf("%w: habit %d is not in scope", models.ErrValidation, id)
		}
		h.Position = i + 1
		h.UpdatedAt = s.now
	}
	return nil
}

func (s *fakeStore) CopyPreviousMonth(ctx context.Context, userID string, year, month int) (int, error) {
	existing, _ := s.ActiveHabitsInScope(ctx, userID, year, month)
	if len(existing) > 0 {
		return 0, fmt.Errorf("%w: month already has habits", store.ErrConflict)
	}
	prevYear, prevMonth := models.PreviousMonth(year, month)
	previous, _ := s.ActiveHabitsInScope(ctx, userID, prevYear, prevMonth)
	for _, p := range previous {
		h := p
		h.ID = s.id()
		h.Year, h.Month = year, month
		h.CreatedAt, h.UpdatedAt = s.now, s.now
		s.habits[h.ID] = &h
	}
	return len(previous), nil
}

func (s *fakeStore) UpsertEntry(ctx context.Context, habitID int64, day int, input models.EntryInput) (models.HabitEntry, error) {
	var entry *models.HabitEntry
	for _, e := range s.entries {
		if e.HabitID == habitID && e.Day == day {
			entry = e
		}
	}
	if entry == nil {
		entry = &models.HabitEntry{ID: s.id(), HabitID: habitID, Day: day}
		s.entries[entry.ID] = entry
	}
	entry.Completed = input.Completed
	if input.Rotation != nil {
		entry.Rotation = *input.Rotation
	}
	if input.Ink != nil {
		entry.Ink = *input.Ink
	}
	entry.UpdatedAt = s.now
	return *entry, nil
}

func (s *fakeStore) DeleteEntry(ctx context.Context, habitID int64, day int) error {
	for id, e := range s.entries {
		if e.HabitID == habitID && e.Day == day {
			delete(s.entries, id)
			if h, ok := s.habits[habitID]; ok {
				h.UpdatedAt = s.now
			}
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *fakeStore) ReflectionsForMonth(ctx context.Context, userID string, year, month int) ([]models.DailyReflection, error) {
	prefix := fmt.Sprintf("%s/%04d-%02d-", userID, year, month)
	out := []models.DailyReflection{}
	for key, r := range s.reflections {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *fakeStore) UpsertReflection(ctx context.Context, userID, date, content string) (models.DailyReflection, error) {
	key := userID + "/" + date
	r, ok := s.reflections[key]
	if !ok {
		r = &models.DailyReflection{ID: s.id(), UserID: userID, Date: date}
		s.reflections[key] = r
	}
	r.Content = content
	r.UpdatedAt = s.now
	return *r, nil
}

func (s *fakeStore) DeleteReflection(ctx context.Context, userID, date string) error {
	delete(s.reflections, userID+"/"+date)
	return nil
}
