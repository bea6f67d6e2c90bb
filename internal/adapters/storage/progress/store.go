package progress

import (
	"context"

	domain "coursereport/internal/domain/progress"
)

// Store reads and seeds per (user, course) progress counters.
type Store interface {
	Get(ctx context.Context, userID, courseID int64) (domain.Record, error)
	Save(ctx context.Context, userID, courseID int64, value domain.Record) error
}
