package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coursereport/internal/adapters/storage"
	domain "coursereport/internal/domain/user"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new user Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a User by its ID.
// PRE: id is positive
// POST: Returns the entity or an error wrapping storage.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, login, email FROM lms_user WHERE id = ?", id)

	var entity domain.User
	err := row.Scan(&entity.ID, &entity.Login, &entity.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	return entity, err
}

// Save persists a User (insert or update).
// PRE: none
// POST: Entity is persisted, or a validation error is returned and nothing is written
func (s *SQLiteStore) Save(ctx context.Context, entity domain.User) error {
	if err := entity.Validate(); err != nil {
		return fmt.Errorf("save user %d: %w", entity.ID, err)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lms_user (id, login, email) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET login=excluded.login, email=excluded.email`,
		entity.ID, entity.Login, entity.Email,
	)
	return err
}
