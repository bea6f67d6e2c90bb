package projections

import (
	"context"
	"errors"
	"log/slog"

	"coursereport/internal/adapters/storage"
	domainProgress "coursereport/internal/domain/progress"
	"coursereport/internal/domain/report"
)

// ReportOutcome says why a report does or does not have rows.
type ReportOutcome int

const (
	// OutcomeNoSelection means no positive course ID was given.
	OutcomeNoSelection ReportOutcome = iota
	// OutcomeNoUsers means the course has no enrolled users that could be resolved.
	OutcomeNoUsers
	// OutcomeFound means the report has at least one row.
	OutcomeFound
)

// GetEnrollmentReportQuery carries query parameters.
type GetEnrollmentReportQuery struct {
	CourseID int64
}

// GetEnrollmentReportResult carries the query result.
type GetEnrollmentReportResult struct {
	CourseID int64
	Outcome  ReportOutcome
	Rows     []report.UserRow
	Skipped  int
}

// Found returns true if the report has rows to render or export.
func (r GetEnrollmentReportResult) Found() bool {
	return r.Outcome == OutcomeFound
}

// Selected returns true if a course was selected, whether or not it has users.
func (r GetEnrollmentReportResult) Selected() bool {
	return r.Outcome != OutcomeNoSelection
}

// GetEnrollmentReportDeps holds dependencies for GetEnrollmentReport.
type GetEnrollmentReportDeps struct {
	EnrollmentStore EnrollmentStore
	UserStore       UserStore
	ProgressStore   ProgressStore
}

// QueryGetEnrollmentReport builds one row per resolvable enrolled user.
// PRE: deps stores are set
// POST: Rows follow the enrollment store order; users that no longer exist are skipped and counted
// INVARIANT: Outcome is OutcomeFound iff len(Rows) > 0; errors other than not-found are returned
func QueryGetEnrollmentReport(ctx context.Context, query GetEnrollmentReportQuery, deps GetEnrollmentReportDeps) (GetEnrollmentReportResult, error) {
	result := GetEnrollmentReportResult{CourseID: query.CourseID, Outcome: OutcomeNoSelection}
	if query.CourseID <= 0 {
		return result, nil
	}
	result.Outcome = OutcomeNoUsers

	userIDs, err := deps.EnrollmentStore.ListUserIDs(ctx, query.CourseID)
	if err != nil {
		return GetEnrollmentReportResult{}, err
	}

	rows := make([]report.UserRow, 0, len(userIDs))
	for _, userID := range userIDs {
		u, err := deps.UserStore.GetByID(ctx, userID)
		if errors.Is(err, storage.ErrNotFound) {
			slog.DebugContext(ctx, "enrolled_user_missing", "course_id", query.CourseID, "user_id", userID)
			result.Skipped++
			continue
		}
		if err != nil {
			return GetEnrollmentReportResult{}, err
		}

		var rec *domainProgress.Record
		p, err := deps.ProgressStore.Get(ctx, userID, query.CourseID)
		switch {
		case err == nil:
			rec = &p
		case !errors.Is(err, storage.ErrNotFound):
			return GetEnrollmentReportResult{}, err
		}

		rows = append(rows, report.NewUserRow(userID, u.Login, u.Email, rec))
	}

	if len(rows) > 0 {
		result.Outcome = OutcomeFound
		result.Rows = rows
	}
	return result, nil
}
