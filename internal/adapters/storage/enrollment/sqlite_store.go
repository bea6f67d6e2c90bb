package enrollment

import (
	"context"
	"time"

	"coursereport/internal/adapters/storage"
)

// enrolledAtLayout is fixed-width so enrolled_at sorts lexically.
const enrolledAtLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new enrollment Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ListUserIDs returns enrolled user IDs for a course in enrollment order.
// PRE: courseID is positive
// POST: Returns IDs ordered by enrolled_at then insertion; empty slice when none
func (s *SQLiteStore) ListUserIDs(ctx context.Context, courseID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM enrollment WHERE course_id = ? ORDER BY enrolled_at ASC, rowid ASC",
		courseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Enroll records a user's enrollment in a course. Re-enrolling is a no-op.
// PRE: course exists
// POST: Enrollment row exists for (courseID, userID)
func (s *SQLiteStore) Enroll(ctx context.Context, courseID, userID int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO enrollment (course_id, user_id, enrolled_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
		courseID, userID, at.UTC().Format(enrolledAtLayout),
	)
	return err
}
