package store

import (
	"context"

	"github.com/lib/pq"

	wrabitDB "github.com/writewithwrabit/tracker/db"
	"github.com/writewithwrabit/tracker/models"
)

const entryColumns = "id, habit_id, day, completed, rotation, ink, updated_at"

func scanEntry(row scanner) (models.HabitEntry, error) {
	var e models.HabitEntry
	err := row.Scan(&e.ID, &e.HabitID, &e.Day, &e.Completed, &e.Rotation, &e.Ink, &e.UpdatedAt)
	return e, err
}

func (s *Store) EntriesForHabits(ctx context.Context, habitIDs []int64) ([]models.HabitEntry, error) {
	if len(habitIDs) == 0 {
		return nil, nil
	}

	res, err := wrabitDB.LogAndQuery(ctx, s.q, "SELECT "+entryColumns+" FROM habit_entries WHERE habit_id = ANY($1) ORDER BY id", pq.Array(habitIDs))
	if err != nil {
		return nil, err
	}
	defer res.Close()

	var entries []models.HabitEntry
	for res.Next() {
		e, err := scanEntry(res)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, res.Err()
}

// UpsertEntry records a day of a habit. Style fields keep their stored value
// when left out; every call bumps updated_at.
func (s *Store) UpsertEntry(ctx context.Context, habitID int64, day int, input models.EntryInput) (models.HabitEntry, error) {
	res := wrabitDB.LogAndQueryRow(ctx, s.q, `INSERT INTO habit_entries (habit_id, day, completed, rotation, ink)
		VALUES ($1, $2, $3, COALESCE($4, 0), COALESCE($5, 0))
		ON CONFLICT (habit_id, day) DO UPDATE SET
			completed = EXCLUDED.completed,
			rotation = COALESCE($4, habit_entries.rotation),
			ink = COALESCE($5, habit_entries.ink),
			updated_at = now()
		RETURNING `+entryColumns, habitID, day, input.Completed, input.Rotation, input.Ink)

	e, err := scanEntry(res)
	if err != nil {
		return models.HabitEntry{}, translate(err)
	}
	return e, nil
}

// DeleteEntry removes a day of a habit and bumps the habit's updated_at so
// the month's last modified time still moves forward.
func (s *Store) DeleteEntry(ctx context.Context, habitID int64, day int) error {
	return s.inTx(ctx, func(q wrabitDB.Querier) error {
		res, err := wrabitDB.LogAndExec(ctx, q, "DELETE FROM habit_entries WHERE habit_id = $1 AND day = $2", habitID, day)
		if err != nil {
			return err
		}

		count, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}

		_, err = wrabitDB.LogAndExec(ctx, q, "UPDATE habits SET updated_at = now() WHERE id = $1", habitID)
		return err
	})
}
