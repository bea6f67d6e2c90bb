package web

import (
	"context"
	"fmt"

	"coursereport/internal/adapters/storage"
	"coursereport/internal/adapters/storage/course"
	domainCourse "coursereport/internal/domain/course"
	domainProgress "coursereport/internal/domain/progress"
	domainUser "coursereport/internal/domain/user"
)

// Mock implementations for testing
type mockCourseStore struct {
	courses []domainCourse.Course
	err     error
}

// List implements the course store interface for testing.
// PRE: filter is valid
// POST: Returns seeded courses matching the filter or the configured error
func (m *mockCourseStore) List(_ context.Context, filter course.ListFilter) ([]domainCourse.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domainCourse.Course
	for _, c := range m.courses {
		if (filter.Status == "" || c.Status == filter.Status) && (filter.Type == "" || c.Type == filter.Type) {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockEnrollmentStore struct {
	byCourse map[int64][]int64
	err      error
}

// ListUserIDs implements the enrollment store interface for testing.
func (m *mockEnrollmentStore) ListUserIDs(_ context.Context, courseID int64) ([]int64, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byCourse[courseID], nil
}

type mockUserStore struct {
	users map[int64]domainUser.User
}

// GetByID implements the user store interface for testing.
// POST: Returns the seeded user or a wrapped storage.ErrNotFound
func (m *mockUserStore) GetByID(_ context.Context, id int64) (domainUser.User, error) {
	u, ok := m.users[id]
	if !ok {
		return domainUser.User{}, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	return u, nil
}

type mockProgressStore struct {
	records map[[2]int64]domainProgress.Record
}

// Get implements the progress store interface for testing.
// POST: Returns the seeded record keyed by (user, course) or a wrapped storage.ErrNotFound
func (m *mockProgressStore) Get(_ context.Context, userID, courseID int64) (domainProgress.Record, error) {
	rec, ok := m.records[[2]int64{userID, courseID}]
	if !ok {
		return domainProgress.Record{}, fmt.Errorf("progress %d/%d: %w", userID, courseID, storage.ErrNotFound)
	}
	return rec, nil
}

// newTestStores returns stores seeded with two published courses, one with users.
//
//	course 5  "Getting Started": users 1 (3/4), 2 (no progress), 9 (missing)
//	course 8  "Advanced": no enrollments
//	course 3  "Draft Course": draft, hidden from the selector
func newTestStores() (*Stores, *mockCourseStore, *mockEnrollmentStore) {
	courses := &mockCourseStore{courses: []domainCourse.Course{
		{ID: 8, Title: "Advanced", Status: domainCourse.StatusPublished, Type: domainCourse.TypeCourse},
		{ID: 5, Title: "Getting Started", Status: domainCourse.StatusPublished, Type: domainCourse.TypeCourse},
		{ID: 3, Title: "Draft Course", Status: domainCourse.StatusDraft, Type: domainCourse.TypeCourse},
	}}
	enrollments := &mockEnrollmentStore{byCourse: map[int64][]int64{5: {1, 2, 9}}}
	users := &mockUserStore{users: map[int64]domainUser.User{
		1: {ID: 1, Login: "ava", Email: "ava@example.com"},
		2: {ID: 2, Login: `<b>dev, "ops"</b>`, Email: "ops@example.com"},
	}}
	progress := &mockProgressStore{records: map[[2]int64]domainProgress.Record{
		{1, 5}: {Completed: 3, Total: 4, Status: domainProgress.StatusInProgress},
	}}
	return &Stores{
		CourseStore:     courses,
		EnrollmentStore: enrollments,
		UserStore:       users,
		ProgressStore:   progress,
	}, courses, enrollments
}
