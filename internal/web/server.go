// Package web serves the viewer UI and its callback endpoints.
package web

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/geodata-dev/geojson-viewer/internal/geodata"
	"github.com/geodata-dev/geojson-viewer/internal/httputil"
	"github.com/geodata-dev/geojson-viewer/internal/monitoring"
	"github.com/geodata-dev/geojson-viewer/internal/session"
	"github.com/geodata-dev/geojson-viewer/internal/timeutil"
	"github.com/geodata-dev/geojson-viewer/internal/version"
)

//go:embed assets
var assetsFS embed.FS

var indexTmpl = template.Must(template.ParseFS(assetsFS, "assets/index.html"))

// sessionCookie names the cookie carrying the session identifier.
const sessionCookie = "geojson_viewer_session"

// Idle sessions are dropped so abandoned tabs release their documents.
const (
	sessionMaxAge        = 12 * time.Hour
	sessionPruneInterval = time.Hour
)

// Server handles the HTTP interface of the viewer: the two-tab page, its
// static assets, and the load/view/save callback endpoints.
type Server struct {
	store  *session.Store
	loader *geodata.Loader
	clock  timeutil.Clock
	server *http.Server
	debug  bool
}

// Config contains the server's construction options. Zero values fall back
// to production defaults.
type Config struct {
	Addr   string
	Debug  bool
	Loader *geodata.Loader
	Store  *session.Store
	Clock  timeutil.Clock
}

// NewServer creates a Server from the given configuration.
func NewServer(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8050"
	}
	if cfg.Loader == nil {
		cfg.Loader = geodata.NewLoader(nil, nil)
	}
	if cfg.Clock == nil {
		cfg.Clock = timeutil.RealClock{}
	}
	if cfg.Store == nil {
		cfg.Store = session.NewStore(cfg.Clock)
	}

	s := &Server{
		store:  cfg.Store,
		loader: cfg.Loader,
		clock:  cfg.Clock,
		debug:  cfg.Debug,
	}

	var handler http.Handler = s.setupRoutes()
	if cfg.Debug {
		handler = LoggingMiddleware(handler)
	}
	s.server = &http.Server{Addr: cfg.Addr, Handler: handler}
	return s
}

// setupRoutes configures the HTTP routes and handlers.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/load", s.handleLoad)
	mux.HandleFunc("/api/view", s.handleView)
	mux.HandleFunc("/api/save", s.handleSave)

	static, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err) // embed layout is fixed at build time
	}
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(static))))

	return mux
}

// Handler returns the server's root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully. A listener failure (port in use, etc.) is returned to the
// caller.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		monitoring.Logf("serving geojson viewer on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	go func() {
		ticker := time.NewTicker(sessionPruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.store.Prune(sessionMaxAge); n > 0 {
					monitoring.Debugf("pruned %d idle sessions", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	monitoring.Logf("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("HTTP server shutdown error: %v", err)
		if err := s.server.Close(); err != nil {
			monitoring.Logf("HTTP server force close error: %v", err)
		}
	}
	return nil
}

// session resolves the request's session, issuing a cookie on first contact.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return s.store.Get(c.Value)
	}
	id := s.store.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s.store.Get(id)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.session(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, struct{ Version string }{Version: version.Version}); err != nil {
		monitoring.Logf("failed to render index: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

// ANSI escape codes used by the request logger.
const (
	colorCyan      = "\033[36m"
	colorReset     = "\033[0m"
	colorYellow    = "\033[33m"
	colorBoldGreen = "\033[1;32m"
	colorBoldRed   = "\033[1;31m"
)

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	default:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	}
}

// LoggingMiddleware logs method, path, status, and duration per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}
