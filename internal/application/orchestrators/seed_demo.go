package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	courseStore "coursereport/internal/adapters/storage/course"
	"coursereport/internal/domain/course"
	"coursereport/internal/domain/progress"
	"coursereport/internal/domain/user"
)

// CourseStoreForSeed defines the course store interface needed by SeedDemo.
type CourseStoreForSeed interface {
	Save(ctx context.Context, c course.Course) error
	List(ctx context.Context, filter courseStore.ListFilter) ([]course.Course, error)
}

// UserStoreForSeed defines the user store interface needed by SeedDemo.
type UserStoreForSeed interface {
	Save(ctx context.Context, u user.User) error
}

// EnrollmentStoreForSeed defines the enrollment store interface needed by SeedDemo.
type EnrollmentStoreForSeed interface {
	Enroll(ctx context.Context, courseID, userID int64, at time.Time) error
}

// ProgressStoreForSeed defines the progress store interface needed by SeedDemo.
type ProgressStoreForSeed interface {
	Save(ctx context.Context, userID, courseID int64, rec progress.Record) error
}

// SeedDemoDeps holds dependencies for SeedDemo.
type SeedDemoDeps struct {
	CourseStore     CourseStoreForSeed
	UserStore       UserStoreForSeed
	EnrollmentStore EnrollmentStoreForSeed
	ProgressStore   ProgressStoreForSeed
	Now             func() time.Time
}

type demoEnrollment struct {
	courseID int64
	userID   int64
	progress *progress.Record
}

// ExecuteSeedDemo loads demo courses, users, enrollments and progress if no courses exist.
// PRE: deps stores are set
// POST: Store contains the demo data set; a store that already has courses is left untouched
func ExecuteSeedDemo(ctx context.Context, deps SeedDemoDeps) error {
	existing, err := deps.CourseStore.List(ctx, courseStore.ListFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	start := now().Add(-30 * 24 * time.Hour)

	courses := []course.Course{
		{ID: 5, Title: "Getting Started", Status: course.StatusPublished, Type: course.TypeCourse},
		{ID: 8, Title: "Advanced Techniques", Status: course.StatusPublished, Type: course.TypeCourse},
		{ID: 11, Title: "Compliance Refresher", Status: course.StatusPublished, Type: course.TypeCourse},
		{ID: 14, Title: "Upcoming Workshop", Status: course.StatusDraft, Type: course.TypeCourse},
		{ID: 15, Title: "Getting Started: Lesson 1", Status: course.StatusPublished, Type: course.TypeLesson},
	}
	for _, c := range courses {
		if err := deps.CourseStore.Save(ctx, c); err != nil {
			return fmt.Errorf("seed course %d: %w", c.ID, err)
		}
	}

	users := []user.User{
		{ID: 101, Login: "ava.nguyen", Email: "ava.nguyen@example.com"},
		{ID: 102, Login: "ben.okafor", Email: "ben.okafor@example.com"},
		{ID: 103, Login: "chloe.martin", Email: "chloe.martin@example.com"},
		{ID: 104, Login: "dev, \"ops\" team", Email: "devops@example.com"},
	}
	for _, u := range users {
		if err := deps.UserStore.Save(ctx, u); err != nil {
			return fmt.Errorf("seed user %d: %w", u.ID, err)
		}
	}

	// User 199 is enrolled but has no user record.
	enrollments := []demoEnrollment{
		{5, 101, &progress.Record{Completed: 3, Total: 4}},
		{5, 102, &progress.Record{Completed: 0, Total: 0, Status: progress.StatusCompleted}},
		{5, 199, &progress.Record{Completed: 1, Total: 4, Status: progress.StatusInProgress}},
		{5, 103, nil},
		{8, 103, &progress.Record{Completed: 2, Total: 3, Status: progress.StatusInProgress}},
		{8, 104, &progress.Record{Completed: 12, Total: 12, Status: progress.StatusCompleted}},
	}
	for i, e := range enrollments {
		if err := deps.EnrollmentStore.Enroll(ctx, e.courseID, e.userID, start.Add(time.Duration(i)*time.Hour)); err != nil {
			return fmt.Errorf("seed enrollment %d/%d: %w", e.courseID, e.userID, err)
		}
		if e.progress == nil {
			continue
		}
		if err := deps.ProgressStore.Save(ctx, e.userID, e.courseID, *e.progress); err != nil {
			return fmt.Errorf("seed progress %d/%d: %w", e.courseID, e.userID, err)
		}
	}

	slog.InfoContext(ctx, "demo_data_seeded", "courses", len(courses), "users", len(users), "enrollments", len(enrollments))
	return nil
}
