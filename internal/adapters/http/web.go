package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"coursereport/internal/adapters/http/middleware"
	"coursereport/internal/application/projections"
)

//go:embed templates/*.html
var templateFS embed.FS

// Stores holds all storage dependencies.
type Stores struct {
	CourseStore     projections.CourseStore
	EnrollmentStore projections.EnrollmentStore
	UserStore       projections.UserStore
	ProgressStore   projections.ProgressStore
}

// Options configures the HTTP surface.
type Options struct {
	// CSRFKey is the 32-byte secret for gorilla/csrf.
	CSRFKey []byte
	// Production enables secure cookies and strict origin checks.
	Production bool
	// TrustedOrigins lists extra host[:port] values allowed to post the export form.
	TrustedOrigins []string
	// SlowRequestMs is the slow request warning threshold.
	SlowRequestMs int
	// PageNote is markdown shown above the course selector.
	PageNote string
	// Health reports backend availability for GET /healthz.
	Health func(ctx context.Context) error
}

// Server holds the request handlers and their dependencies.
type Server struct {
	stores *Stores
	opts   Options
	tpl    *template.Template
	note   template.HTML
}

var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderNote converts admin markdown to HTML. Raw HTML in the source is omitted.
func renderNote(md string) template.HTML {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		slog.Warn("page_note_render_failed", "error", err.Error())
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// NewServer parses the embedded templates and binds the stores.
// PRE: s has all four stores set
func NewServer(s *Stores, opts Options) *Server {
	tpl := template.Must(template.New("layout.html").ParseFS(templateFS, "templates/layout.html", "templates/course_users.html"))
	return &Server{
		stores: s,
		opts:   opts,
		tpl:    tpl,
		note:   renderNote(opts.PageNote),
	}
}

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores, opts Options) http.Handler {
	srv := NewServer(s, opts)

	mux := http.NewServeMux()
	srv.registerRoutes(mux)

	// Request order: Timing -> NoStore -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(middleware.CSRFOptions{
			Key:            opts.CSRFKey,
			Secure:         opts.Production,
			TrustedOrigins: opts.TrustedOrigins,
		}),
		middleware.NoStore,
		middleware.Timing(opts.SlowRequestMs),
	)
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", handleRoot)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /course-users", s.handleCourseUsersPage)
	mux.HandleFunc("POST /course-users", s.handleCourseUsersPost)
}

// handleRoot handles GET /
func handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/course-users", http.StatusSeeOther)
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.opts.Health != nil {
		if err := s.opts.Health(r.Context()); err != nil {
			slog.Error("health_check_failed", "error", err.Error())
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// renderTemplate executes the layout with the given page data.
// POST: a template fault yields a 500 with no partial page
func (s *Server) renderTemplate(w http.ResponseWriter, data any) {
	var buf bytes.Buffer
	if err := s.tpl.Execute(&buf, data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
