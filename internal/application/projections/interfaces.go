package projections

import (
	"context"

	"coursereport/internal/adapters/storage/course"
	domainCourse "coursereport/internal/domain/course"
	domainProgress "coursereport/internal/domain/progress"
	domainUser "coursereport/internal/domain/user"
)

// CourseStore interface for course directory queries.
type CourseStore interface {
	List(ctx context.Context, filter course.ListFilter) ([]domainCourse.Course, error)
}

// EnrollmentStore interface for enrollment queries.
type EnrollmentStore interface {
	ListUserIDs(ctx context.Context, courseID int64) ([]int64, error)
}

// UserStore interface for user lookups.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (domainUser.User, error)
}

// ProgressStore interface for progress lookups.
type ProgressStore interface {
	Get(ctx context.Context, userID, courseID int64) (domainProgress.Record, error)
}
