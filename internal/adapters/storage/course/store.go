package course

import (
	"context"

	domain "coursereport/internal/domain/course"
)

// Store reads and seeds Course state.
type Store interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Course, error)
	Save(ctx context.Context, value domain.Course) error
}

// ListFilter carries filtering parameters for List operations.
// Empty fields match everything.
type ListFilter struct {
	Status string
	Type   string
}
