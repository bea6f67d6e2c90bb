package course

import (
	"context"

	"coursereport/internal/adapters/storage"
	domain "coursereport/internal/domain/course"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new course Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List retrieves courses matching the filter ordered by title.
// PRE: filter has valid parameters
// POST: Returns matching entities, empty slice when none match
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Course, error) {
	query := "SELECT id, title, status, type FROM course WHERE 1=1"
	var args []any
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, filter.Type)
	}
	query += " ORDER BY title COLLATE NOCASE ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Course{}
	for rows.Next() {
		var entity domain.Course
		if err := rows.Scan(&entity.ID, &entity.Title, &entity.Status, &entity.Type); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Save persists a Course (insert or update).
// PRE: entity.ID is positive
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Course) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO course (id, title, status, type) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title=excluded.title, status=excluded.status, type=excluded.type`,
		entity.ID, entity.Title, entity.Status, entity.Type,
	)
	return err
}
