package user

import (
	"context"

	domain "coursereport/internal/domain/user"
)

// Store reads and seeds User state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
	Save(ctx context.Context, value domain.User) error
}
