package enrollment

import (
	"context"
	"time"
)

// Store reads and seeds course enrollments.
type Store interface {
	ListUserIDs(ctx context.Context, courseID int64) ([]int64, error)
	Enroll(ctx context.Context, courseID, userID int64, at time.Time) error
}
