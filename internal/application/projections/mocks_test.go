package projections

import (
	"context"
	"fmt"

	"coursereport/internal/adapters/storage"
	"coursereport/internal/adapters/storage/course"
	domainCourse "coursereport/internal/domain/course"
	domainProgress "coursereport/internal/domain/progress"
	domainUser "coursereport/internal/domain/user"
)

type mockCourseStore struct {
	courses []domainCourse.Course
	err     error
}

// List returns seeded courses matching the filter in seed order.
// PRE: filter is valid
// POST: Returns seeded courses or the configured error
func (m *mockCourseStore) List(_ context.Context, filter course.ListFilter) ([]domainCourse.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domainCourse.Course
	for _, c := range m.courses {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type mockEnrollmentStore struct {
	byCourse map[int64][]int64
	err      error
	calls    int
}

// ListUserIDs returns seeded enrollments for the course.
// PRE: courseID is positive
// POST: Returns seeded IDs or the configured error
func (m *mockEnrollmentStore) ListUserIDs(_ context.Context, courseID int64) ([]int64, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.byCourse[courseID], nil
}

type mockUserStore struct {
	users  map[int64]domainUser.User
	errFor map[int64]error
}

// GetByID returns a seeded user or storage.ErrNotFound.
// PRE: id is positive
// POST: Returns the seeded user or an error
func (m *mockUserStore) GetByID(_ context.Context, id int64) (domainUser.User, error) {
	if err, ok := m.errFor[id]; ok {
		return domainUser.User{}, err
	}
	u, ok := m.users[id]
	if !ok {
		return domainUser.User{}, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	return u, nil
}

type progressKey struct {
	userID, courseID int64
}

type mockProgressStore struct {
	records map[progressKey]domainProgress.Record
	err     error
}

// Get returns a seeded progress record or storage.ErrNotFound.
// PRE: userID and courseID are positive
// POST: Returns the seeded record or an error
func (m *mockProgressStore) Get(_ context.Context, userID, courseID int64) (domainProgress.Record, error) {
	if m.err != nil {
		return domainProgress.Record{}, m.err
	}
	rec, ok := m.records[progressKey{userID, courseID}]
	if !ok {
		return domainProgress.Record{}, storage.ErrNotFound
	}
	return rec, nil
}
