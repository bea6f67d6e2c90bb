package report

import (
	"strconv"

	"coursereport/internal/domain/progress"
)

// Header is the column order shared by the HTML table and every export format.
var Header = []string{"User ID", "Name", "Email", "Course Status", "Progress (%)"}

// UserRow is one report line: identity plus computed progress for one enrolled user.
// Rows are derived per request and never persisted.
type UserRow struct {
	ID           int64
	Name         string
	Email        string
	CourseStatus string
	Percentage   string
}

// NewUserRow builds a row from resolved user fields and raw progress.
// PRE: rec may be nil when the store has no progress for the user
// POST: CourseStatus and Percentage follow progress.Compute
func NewUserRow(id int64, name, email string, rec *progress.Record) UserRow {
	p := progress.Compute(rec)
	return UserRow{
		ID:           id,
		Name:         name,
		Email:        email,
		CourseStatus: p.Status,
		Percentage:   p.Percentage,
	}
}

// Fields returns the row values in Header order.
func (r UserRow) Fields() []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Name,
		r.Email,
		r.CourseStatus,
		r.Percentage,
	}
}
