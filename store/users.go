package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	wrabitDB "github.com/writewithwrabit/tracker/db"
	"github.com/writewithwrabit/tracker/models"
)

const userColumns = "id, public_slug, public_enabled, created_at, updated_at"

func scanUser(row scanner) (models.User, error) {
	var u models.User
	var slug sql.NullString
	err := row.Scan(&u.ID, &slug, &u.PublicEnabled, &u.CreatedAt, &u.UpdatedAt)
	if slug.Valid {
		u.PublicSlug = &slug.String
	}
	return u, err
}

// EnsureUser creates the row for a verified account on first use.
func (s *Store) EnsureUser(ctx context.Context, userID string) error {
	_, err := wrabitDB.LogAndExec(ctx, s.q, "INSERT INTO users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING", userID)
	return err
}

func (s *Store) GetUser(ctx context.Context, userID string) (models.User, error) {
	res := wrabitDB.LogAndQueryRow(ctx, s.q, "SELECT "+userColumns+" FROM users WHERE id = $1", userID)

	u, err := scanUser(res)
	if err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}

// UserByPublicSlug only finds users whose public profile is enabled.
func (s *Store) UserByPublicSlug(ctx context.Context, slug string) (models.User, error) {
	if _, err := uuid.Parse(slug); err != nil {
		return models.User{}, ErrNotFound
	}

	res := wrabitDB.LogAndQueryRow(ctx, s.q, "SELECT "+userColumns+" FROM users WHERE public_slug = $1 AND public_enabled", slug)

	u, err := scanUser(res)
	if err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}

// SetPublicProfile toggles the public profile. The slug is assigned the first
// time the profile is enabled and kept afterwards.
func (s *Store) SetPublicProfile(ctx context.Context, userID string, public bool) (models.User, error) {
	var slug *string
	if public {
		fresh := uuid.New().String()
		slug = &fresh
	}

	res := wrabitDB.LogAndQueryRow(ctx, s.q, `UPDATE users SET
		public_enabled = $1,
		public_slug = COALESCE(public_slug, $2::uuid),
		updated_at = now()
		WHERE id = $3
		RETURNING `+userColumns, public, slug, userID)

	u, err := scanUser(res)
	if err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}
