package course

import (
	"sort"
	"strings"
)

// Business rule constants
const (
	StatusPublished = "publish"
	StatusDraft     = "draft"
	TypeCourse      = "course"
	TypeLesson      = "lesson"
)

// Course is a learning unit owned by the course data store.
type Course struct {
	ID     int64
	Title  string
	Status string
	Type   string
}

// IsListable returns true if the course belongs in the course selector.
// INVARIANT: Course fields are not mutated
func (c Course) IsListable() bool {
	return c.ID > 0 && c.Status == StatusPublished && c.Type == TypeCourse
}

// SortByTitle orders courses ascending by title, breaking ties by ID.
// PRE: courses may be empty
// POST: courses is sorted in place
func SortByTitle(courses []Course) {
	sort.SliceStable(courses, func(i, j int) bool {
		a, b := strings.ToLower(courses[i].Title), strings.ToLower(courses[j].Title)
		if a != b {
			return a < b
		}
		return courses[i].ID < courses[j].ID
	})
}
