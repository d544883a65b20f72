package store

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	wrabitDB "github.com/writewithwrabit/tracker/db"
	"github.com/writewithwrabit/tracker/models"
)

const habitColumns = "id, user_id, year, month, name, position, check_type, active, created_at, updated_at"

// positionOffset moves positions out of the way during a reorder so the
// unique (user, year, month, position) index holds after every statement.
const positionOffset = 100000

func scanHabit(row scanner) (models.Habit, error) {
	var h models.Habit
	var checkType string
	err := row.Scan(&h.ID, &h.UserID, &h.Year, &h.Month, &h.Name, &h.Position, &checkType, &h.Active, &h.CreatedAt, &h.UpdatedAt)
	h.CheckType = models.CheckType(checkType)
	return h, err
}

func (s *Store) ActiveHabitsInScope(ctx context.Context, userID string, year, month int) ([]models.Habit, error) {
	res, err := wrabitDB.LogAndQuery(ctx, s.q, "SELECT "+habitColumns+" FROM habits WHERE user_id = $1 AND year = $2 AND month = $3 AND active ORDER BY id", userID, year, month)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	var habits []models.Habit
	for res.Next() {
		h, err := scanHabit(res)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, res.Err()
}

func (s *Store) GetHabit(ctx context.Context, userID string, id int64) (models.Habit, error) {
	res := wrabitDB.LogAndQueryRow(ctx, s.q, "SELECT "+habitColumns+" FROM habits WHERE id = $1 AND user_id = $2", id, userID)

	h, err := scanHabit(res)
	if err != nil {
		return models.Habit{}, translate(err)
	}
	return h, nil
}

// CreateHabit appends a habit after the last active one of the scope.
func (s *Store) CreateHabit(ctx context.Context, userID string, year, month int, input models.NewHabit) (models.Habit, error) {
	res := wrabitDB.LogAndQueryRow(ctx, s.q, `INSERT INTO habits (user_id, year, month, name, position, check_type)
		SELECT $1, $2, $3, $4, COALESCE(MAX(position), 0) + 1, $5 FROM habits
		WHERE user_id = $1 AND year = $2 AND month = $3 AND active
		RETURNING `+habitColumns, userID, year, month, input.Name, string(input.CheckType))

	h, err := scanHabit(res)
	if err != nil {
		return models.Habit{}, translate(err)
	}
	return h, nil
}

func (s *Store) UpdateHabit(ctx context.Context, userID string, id int64, input models.UpdatedHabit) (models.Habit, error) {
	var checkType *string
	if input.CheckType != nil {
		ct := string(*input.CheckType)
		checkType = &ct
	}

	res := wrabitDB.LogAndQueryRow(ctx, s.q, `UPDATE habits SET
		name = COALESCE($1, name),
		check_type = COALESCE($2, check_type),
		position = COALESCE($3, position),
		updated_at = now()
		WHERE id = $4 AND user_id = $5 AND active
		RETURNING `+habitColumns, input.Name, checkType, input.Position, id, userID)

	h, err := scanHabit(res)
	if err != nil {
		return models.Habit{}, translate(err)
	}
	return h, nil
}

// DeactivateHabit soft deletes a habit. Its entries stay but drop out of
// every view. The remaining active habits of the month are touched so the
// month's last modified time moves forward; an emptied month falls back to
// its start.
func (s *Store) DeactivateHabit(ctx context.Context, userID string, id int64) error {
	return s.inTx(ctx, func(q wrabitDB.Querier) error {
		var year, month int
		res := wrabitDB.LogAndQueryRow(ctx, q, "UPDATE habits SET active = false, updated_at = now() WHERE id = $1 AND user_id = $2 AND active RETURNING year, month", id, userID)
		if err := res.Scan(&year, &month); err != nil {
			return translate(err)
		}

		_, err := wrabitDB.LogAndExec(ctx, q, "UPDATE habits SET updated_at = now() WHERE user_id = $1 AND year = $2 AND month = $3 AND active", userID, year, month)
		return err
	})
}

// RestoreHabit reactivates a habit at the end of its month.
func (s *Store) RestoreHabit(ctx context.Context, userID string, id int64) (models.Habit, error) {
	res := wrabitDB.LogAndQueryRow(ctx, s.q, `UPDATE habits h SET
		active = true,
		position = (SELECT COALESCE(MAX(o.position), 0) + 1 FROM habits o
			WHERE o.user_id = h.user_id AND o.year = h.year AND o.month = h.month AND o.active),
		updated_at = now()
		WHERE h.id = $1 AND h.user_id = $2 AND NOT h.active
		RETURNING `+habitColumns, id, userID)

	h, err := scanHabit(res)
	if err != nil {
		return models.Habit{}, translate(err)
	}
	return h, nil
}

// ReorderHabits rewrites positions 1..n following ids, which must name every
// active habit of the scope exactly once.
func (s *Store) ReorderHabits(ctx context.Context, userID string, year, month int, ids []int64) error {
	return s.inTx(ctx, func(q wrabitDB.Querier) error {
		res, err := wrabitDB.LogAndQuery(ctx, q, "SELECT id FROM habits WHERE user_id = $1 AND year = $2 AND month = $3 AND active FOR UPDATE", userID, year, month)
		if err != nil {
			return err
		}

		current := map[int64]bool{}
		for res.Next() {
			var id int64
			if err := res.Scan(&id); err != nil {
				res.Close()
				return err
			}
			current[id] = true
		}
		res.Close()
		if err := res.Err(); err != nil {
			return err
		}

		if len(ids) != len(current) {
			return fmt.Errorf("%w: expected %d habit ids, got %d", models.ErrValidation, len(current), len(ids))
		}
		seen := map[int64]bool{}
		for _, id := range ids {
			if !current[id] || seen[id] {
				return fmt.Errorf("%w: habit %d is not an active habit of %04d-%02d", models.ErrValidation, id, year, month)
			}
			seen[id] = true
		}

		if _, err := wrabitDB.LogAndExec(ctx, q, "UPDATE habits SET position = position + $1 WHERE id = ANY($2)", positionOffset, pq.Array(ids)); err != nil {
			return err
		}
		for i, id := range ids {
			if _, err := wrabitDB.LogAndExec(ctx, q, "UPDATE habits SET position = $1, updated_at = now() WHERE id = $2", i+1, id); err != nil {
				return err
			}
		}
		return nil
	})
}

// CopyPreviousMonth copies the previous month's active habits into an empty
// month and returns how many were copied.
func (s *Store) CopyPreviousMonth(ctx context.Context, userID string, year, month int) (int, error) {
	prevYear, prevMonth := models.PreviousMonth(year, month)

	var copied int64
	err := s.inTx(ctx, func(q wrabitDB.Querier) error {
		var existing int
		if err := wrabitDB.LogAndQueryRow(ctx, q, "SELECT count(*) FROM habits WHERE user_id = $1 AND year = $2 AND month = $3 AND active", userID, year, month).Scan(&existing); err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%w: %04d-%02d already has habits", ErrConflict, year, month)
		}

		res, err := wrabitDB.LogAndExec(ctx, q, `INSERT INTO habits (user_id, year, month, name, position, check_type)
			SELECT user_id, $2, $3, name, position, check_type FROM habits
			WHERE user_id = $1 AND year = $4 AND month = $5 AND active
			ORDER BY position`, userID, year, month, prevYear, prevMonth)
		if err != nil {
			return translate(err)
		}

		copied, err = res.RowsAffected()
		return err
	})

	return int(copied), err
}
