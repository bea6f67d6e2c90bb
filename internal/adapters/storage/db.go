package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when the requested record does not exist.
var ErrNotFound = errors.New("not found")

// InitDB initializes the course data schema.
// PRE: db is a valid database connection
// POST: All tables are created, foreign keys enforced
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// enrollment.user_id has no foreign key: users can be deleted while
	// their enrollments remain, and reports skip them.
	schema := `
	CREATE TABLE IF NOT EXISTS course (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'publish',
		type TEXT NOT NULL DEFAULT 'course'
	);

	CREATE TABLE IF NOT EXISTS lms_user (
		id INTEGER PRIMARY KEY,
		login TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS enrollment (
		course_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		enrolled_at TEXT NOT NULL,
		PRIMARY KEY (course_id, user_id),
		FOREIGN KEY (course_id) REFERENCES course(id)
	);

	CREATE TABLE IF NOT EXISTS course_progress (
		user_id INTEGER NOT NULL,
		course_id INTEGER NOT NULL,
		completed INTEGER,
		total INTEGER,
		status TEXT,
		PRIMARY KEY (user_id, course_id)
	);

	CREATE INDEX IF NOT EXISTS idx_enrollment_course ON enrollment(course_id, enrolled_at);
	CREATE INDEX IF NOT EXISTS idx_course_title ON course(title);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
