package store

import (
	"context"
	"time"

	wrabitDB "github.com/writewithwrabit/tracker/db"
	"github.com/writewithwrabit/tracker/models"
)

const reflectionColumns = "id, user_id, date, content, updated_at"

func scanReflection(row scanner) (models.DailyReflection, error) {
	var r models.DailyReflection
	var date time.Time
	err := row.Scan(&r.ID, &r.UserID, &date, &r.Content, &r.UpdatedAt)
	r.Date = date.Format(models.DateLayout)
	return r, err
}

func (s *Store) ReflectionsForMonth(ctx context.Context, userID string, year, month int) ([]models.DailyReflection, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	res, err := wrabitDB.LogAndQuery(ctx, s.q, "SELECT "+reflectionColumns+" FROM daily_reflections WHERE user_id = $1 AND date >= $2 AND date < $3 ORDER BY date",
		userID, from.Format(models.DateLayout), to.Format(models.DateLayout))
	if err != nil {
		return nil, err
	}
	defer res.Close()

	reflections := []models.DailyReflection{}
	for res.Next() {
		r, err := scanReflection(res)
		if err != nil {
			return nil, err
		}
		reflections = append(reflections, r)
	}

	return reflections, res.Err()
}

func (s *Store) UpsertReflection(ctx context.Context, userID, date, content string) (models.DailyReflection, error) {
	res := wrabitDB.LogAndQueryRow(ctx, s.q, `INSERT INTO daily_reflections (user_id, date, content) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, date) DO UPDATE SET content = EXCLUDED.content, updated_at = now()
		RETURNING `+reflectionColumns, userID, date, content)

	r, err := scanReflection(res)
	if err != nil {
		return models.DailyReflection{}, translate(err)
	}
	return r, nil
}

func (s *Store) DeleteReflection(ctx context.Context, userID, date string) error {
	_, err := wrabitDB.LogAndExec(ctx, s.q, "DELETE FROM daily_reflections WHERE user_id = $1 AND date = $2", userID, date)
	return err
}
