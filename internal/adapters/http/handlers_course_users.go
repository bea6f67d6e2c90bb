package web

import (
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"

	"coursereport/internal/application/orchestrators"
	"coursereport/internal/application/projections"
	domainCourse "coursereport/internal/domain/course"
	"coursereport/internal/domain/report"
)

// Form and query field names shared with the template.
const (
	fieldCourse       = "course"
	fieldExportCourse = "ld_course_id"
	fieldFileName     = "csv_filename"
	fieldExportSubmit = "ld_export_csv"
	fieldExportFormat = "export_format"
)

// courseUsersRequest is the parsed view of a /course-users request.
type courseUsersRequest struct {
	CourseID int64
	Export   bool
	FileName string
	Format   string
}

// parseCourseID reads a positive course ID. Anything else means "no selection".
func parseCourseID(raw string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// parseCourseUsersRequest extracts the selection and export fields.
// PRE: r.ParseForm has been called for POST requests
// POST: Export is true only when the submit marker and a course ID are both present
func parseCourseUsersRequest(r *http.Request) courseUsersRequest {
	req := courseUsersRequest{CourseID: parseCourseID(r.URL.Query().Get(fieldCourse))}
	if r.Method != http.MethodPost {
		return req
	}

	_, submitted := r.PostForm[fieldExportSubmit]
	exportCourse := r.PostForm.Get(fieldExportCourse)
	if exportCourse != "" {
		req.CourseID = parseCourseID(exportCourse)
	}
	req.Export = submitted && exportCourse != ""
	req.FileName = r.PostForm.Get(fieldFileName)
	req.Format = r.PostForm.Get(fieldExportFormat)
	return req
}

// courseUsersPage is the template data for course_users.html.
type courseUsersPage struct {
	Courses         []domainCourse.Course
	SelectedID      int64
	CourseTitle     string
	Report          projections.GetEnrollmentReportResult
	Header          []string
	Note            template.HTML
	CSRFField       template.HTML
	DefaultFileName string
}

// handleCourseUsersPage handles GET /course-users
func (s *Server) handleCourseUsersPage(w http.ResponseWriter, r *http.Request) {
	s.renderCourseUsers(w, r, parseCourseUsersRequest(r).CourseID)
}

// handleCourseUsersPost handles POST /course-users.
// An export request with rows answers with the file only; otherwise the page is rendered.
func (s *Server) handleCourseUsersPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	req := parseCourseUsersRequest(r)
	if !req.Export {
		s.renderCourseUsers(w, r, req.CourseID)
		return
	}

	started := false
	res, err := orchestrators.ExecuteExportCourseUsers(r.Context(), orchestrators.ExportCourseUsersInput{
		CourseID: req.CourseID,
		FileName: req.FileName,
		Format:   req.Format,
	}, orchestrators.ExportCourseUsersDeps{
		Report: s.reportDeps(),
	}, func(res orchestrators.ExportCourseUsersResult) io.Writer {
		started = true
		w.Header().Set("Content-Type", res.ContentType)
		w.Header().Set("Content-Disposition", attachmentDisposition(res.FileName))
		return w
	})
	if err != nil {
		if started {
			// Headers are already on the wire; the client sees a truncated file.
			slog.Error("course_users_export_failed", "course_id", req.CourseID, "error", err.Error())
			return
		}
		internalError(w, err)
		return
	}
	if res.Exported {
		return
	}
	s.renderCourseUsers(w, r, req.CourseID)
}

// attachmentDisposition builds the Content-Disposition header.
// PRE: name is sanitized (no quotes, backslashes or control characters)
func attachmentDisposition(name string) string {
	return `attachment; filename="` + name + `"`
}

func (s *Server) reportDeps() projections.GetEnrollmentReportDeps {
	return projections.GetEnrollmentReportDeps{
		EnrollmentStore: s.stores.EnrollmentStore,
		UserStore:       s.stores.UserStore,
		ProgressStore:   s.stores.ProgressStore,
	}
}

// renderCourseUsers renders the selector and, for a selected course, its report.
// POST: 200 for every outcome; 500 only when a store fails
func (s *Server) renderCourseUsers(w http.ResponseWriter, r *http.Request, courseID int64) {
	ctx := r.Context()

	dir, err := projections.QueryGetCourseDirectory(ctx, projections.GetCourseDirectoryDeps{CourseStore: s.stores.CourseStore})
	if err != nil {
		internalError(w, err)
		return
	}
	built, err := projections.QueryGetEnrollmentReport(ctx, projections.GetEnrollmentReportQuery{CourseID: courseID}, s.reportDeps())
	if err != nil {
		internalError(w, err)
		return
	}

	title, ok := dir.Title(courseID)
	if !ok && courseID > 0 {
		title = fmt.Sprintf("Course #%d", courseID)
	}

	s.renderTemplate(w, courseUsersPage{
		Courses:         dir.Courses,
		SelectedID:      courseID,
		CourseTitle:     title,
		Report:          built,
		Header:          report.Header,
		Note:            s.note,
		CSRFField:       csrf.TemplateField(r),
		DefaultFileName: report.DefaultFileName,
	})
}
