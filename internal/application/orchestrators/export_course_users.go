package orchestrators

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"coursereport/internal/application/projections"
	"coursereport/internal/domain/report"
)

// ExportCourseUsersInput carries the export request fields.
// PRE: CourseID comes from the export form; FileName may be empty
type ExportCourseUsersInput struct {
	CourseID int64
	FileName string
	Format   string
}

// ExportCourseUsersResult describes a finished export.
// Exported is false when the course had no rows and nothing was written.
type ExportCourseUsersResult struct {
	Exported    bool
	ExportID    string
	FileName    string
	Format      string
	ContentType string
	RowCount    int
}

// ExportCourseUsersDeps holds dependencies for the export orchestrator.
type ExportCourseUsersDeps struct {
	Report     projections.GetEnrollmentReportDeps
	GenerateID func() string
}

// OpenExport is called once, after the report is built and before the first byte
// is written. It returns the destination for the export body.
type OpenExport func(res ExportCourseUsersResult) io.Writer

// NormalizeFormat maps a requested format to a supported one (csv by default).
func NormalizeFormat(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), report.FormatXLSX) {
		return report.FormatXLSX
	}
	return report.FormatCSV
}

// ExecuteExportCourseUsers builds the course report and streams it as a file.
// PRE: open is non-nil
// POST: When the report has rows, open is called once and the header plus rows are written to its writer;
//
//	otherwise nothing is written and Exported is false
//
// INVARIANT: Exports never mutate the course data store
func ExecuteExportCourseUsers(ctx context.Context, input ExportCourseUsersInput, deps ExportCourseUsersDeps, open OpenExport) (ExportCourseUsersResult, error) {
	format := NormalizeFormat(input.Format)
	res := ExportCourseUsersResult{
		Format:   format,
		FileName: report.ExportFileName(input.FileName, format),
	}

	built, err := projections.QueryGetEnrollmentReport(ctx, projections.GetEnrollmentReportQuery{CourseID: input.CourseID}, deps.Report)
	if err != nil {
		return ExportCourseUsersResult{}, err
	}
	if !built.Found() {
		slog.InfoContext(ctx, "course_users_export_skipped", "course_id", input.CourseID)
		return res, nil
	}

	generateID := deps.GenerateID
	if generateID == nil {
		generateID = func() string { return uuid.New().String() }
	}
	res.Exported = true
	res.ExportID = generateID()
	res.RowCount = len(built.Rows)
	res.ContentType = report.CSVContentType
	if format == report.FormatXLSX {
		res.ContentType = report.XLSXContentType
	}

	w := open(res)
	switch format {
	case report.FormatXLSX:
		err = report.WriteXLSX(w, built.Rows)
	default:
		err = report.WriteCSV(w, built.Rows)
	}
	if err != nil {
		return res, fmt.Errorf("write %s export %s: %w", format, res.ExportID, err)
	}

	slog.InfoContext(ctx, "course_users_exported",
		"export_id", res.ExportID,
		"course_id", input.CourseID,
		"file_name", res.FileName,
		"format", format,
		"rows", res.RowCount,
		"skipped", built.Skipped,
	)
	return res, nil
}
