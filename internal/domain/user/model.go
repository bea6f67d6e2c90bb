package user

import (
	"errors"
	"strings"
)

// User is an account in the course data store.
// Login is the display name used in reports.
type User struct {
	ID    int64
	Login string
	Email string
}

// Validate checks if the User has valid data.
// PRE: User struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: ID must be positive, Login must not be empty, Email must contain '@'
func (u *User) Validate() error {
	if u.ID <= 0 {
		return errors.New("user id must be positive")
	}
	if strings.TrimSpace(u.Login) == "" {
		return errors.New("user login cannot be empty")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("user email must be valid")
	}
	return nil
}
