package projections

import (
	"context"

	"coursereport/internal/adapters/storage/course"
	domainCourse "coursereport/internal/domain/course"
)

// GetCourseDirectoryResult carries the courses offered in the selector.
type GetCourseDirectoryResult struct {
	Courses []domainCourse.Course
}

// Title returns the title of a listed course.
// POST: ok is false when id is not in the directory
func (r GetCourseDirectoryResult) Title(id int64) (string, bool) {
	for _, c := range r.Courses {
		if c.ID == id {
			return c.Title, true
		}
	}
	return "", false
}

// GetCourseDirectoryDeps holds dependencies for GetCourseDirectory.
type GetCourseDirectoryDeps struct {
	CourseStore CourseStore
}

// QueryGetCourseDirectory lists published courses for the course selector.
// PRE: deps.CourseStore is set
// POST: Returns published course-type entries sorted ascending by title; empty store yields an empty slice
// INVARIANT: Course IDs in the result are unique
func QueryGetCourseDirectory(ctx context.Context, deps GetCourseDirectoryDeps) (GetCourseDirectoryResult, error) {
	courses, err := deps.CourseStore.List(ctx, course.ListFilter{
		Status: domainCourse.StatusPublished,
		Type:   domainCourse.TypeCourse,
	})
	if err != nil {
		return GetCourseDirectoryResult{}, err
	}

	seen := make(map[int64]bool, len(courses))
	result := make([]domainCourse.Course, 0, len(courses))
	for _, c := range courses {
		if !c.IsListable() || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		result = append(result, c)
	}
	domainCourse.SortByTitle(result)

	return GetCourseDirectoryResult{Courses: result}, nil
}
