// package server contains the HTTP transport for the migration service
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"playlift/internal/services"
	"playlift/internal/shared"
	"playlift/internal/tasks"
)

// Middleware wraps an http.Handler and returns a new http.Handler with
// additional behavior.
type Middleware func(http.Handler) http.Handler

// Server routes the service's four endpoints and applies the middleware
// stack. The migration pipeline itself lives in internal/tasks; handlers
// here only translate between HTTP and the engine's contracts.
type Server struct {
	config      *shared.Config
	logger      *log.Logger
	target      services.TargetClient
	engine      *tasks.MigrationEngine
	mux         *http.ServeMux
	middlewares []Middleware
}

// NewServer creates a Server and registers its routes.
func NewServer(config *shared.Config, logger *log.Logger, target services.TargetClient, engine *tasks.MigrationEngine) *Server {
	s := &Server{
		config: config,
		logger: logger,
		target: target,
		engine: engine,
		mux:    http.NewServeMux(),
	}

	s.Use(s.requestLogger)

	s.mux.HandleFunc("GET /auth/youtube", s.handleAuthRedirect)
	s.mux.HandleFunc("GET /oauth2callback", s.handleOAuthCallback)
	s.mux.HandleFunc("GET /check-auth", s.handleCheckAuth)
	s.mux.HandleFunc("POST /migrate/spotify-to-youtube", s.handleMigrate)

	return s
}

// Use adds middleware to the stack, applied in the order it's added.
func (s *Server) Use(middleware ...Middleware) {
	s.middlewares = append(s.middlewares, middleware...)
}

// ServeHTTP implements http.Handler with the middleware stack applied.
// Middleware wraps in reverse order so the first added runs outermost.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var handler http.Handler = s.mux
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		handler = s.middlewares[i](handler)
	}
	handler.ServeHTTP(w, r)
}

// requestLogger logs each request with method, path, status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
