package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coursereport/internal/adapters/storage"
	domain "coursereport/internal/domain/progress"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new progress Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves the progress record for a user in a course.
// Counters are read as text so malformed values coerce to 0.
// PRE: userID and courseID are positive
// POST: Returns the record or an error wrapping storage.ErrNotFound
func (s *SQLiteStore) Get(ctx context.Context, userID, courseID int64) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT completed, total, status FROM course_progress WHERE user_id = ? AND course_id = ?",
		userID, courseID,
	)

	var completed, total, status sql.NullString
	err := row.Scan(&completed, &total, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, fmt.Errorf("progress for user %d in course %d: %w", userID, courseID, storage.ErrNotFound)
	}
	if err != nil {
		return domain.Record{}, err
	}
	return domain.Record{
		Completed: domain.ParseCount(completed.String),
		Total:     domain.ParseCount(total.String),
		Status:    status.String,
	}, nil
}

// Save persists a progress record (insert or update).
// PRE: userID and courseID are positive
// POST: Record is persisted
func (s *SQLiteStore) Save(ctx context.Context, userID, courseID int64, value domain.Record) error {
	var status any
	if value.Status != "" {
		status = value.Status
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO course_progress (user_id, course_id, completed, total, status) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, course_id) DO UPDATE SET completed=excluded.completed, total=excluded.total, status=excluded.status`,
		userID, courseID, value.Completed, value.Total, status,
	)
	return err
}
