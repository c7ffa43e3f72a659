// Package api - Thin HTTP layer over rate-table sessions
// The API is ONLY responsible for: upload ingestion, session lookup, output serialization.
// The API NEVER performs rate or netback logic.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"freight-netback/core/session"
	"freight-netback/internal/logging"
)

// Options configures a Server
type Options struct {
	// Version is reported by /health and /version
	Version string

	// MaxUploadBytes caps uploaded tables
	MaxUploadBytes int64

	// MaxSessions bounds the number of live sessions; 0 means unbounded
	MaxSessions int

	// AllowedOrigins lists CORS origins
	AllowedOrigins []string

	// Session configures sessions opened from uploads
	Session session.Options
}

// Server is the API server
type Server struct {
	router   chi.Router
	opts     Options
	sessions *session.Registry
	metrics  *Metrics
	validate *validator.Validate
	log      *zap.Logger
}

// NewServer creates a new API server
func NewServer(opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}

	registry := session.NewRegistry(opts.MaxSessions)
	s := &Server{
		router:   chi.NewRouter(),
		opts:     opts,
		sessions: registry,
		metrics:  NewMetrics(registry),
		validate: newValidator(),
		log:      logging.Named("api"),
	}
	registry.OnEvict(func(*session.Session) { s.metrics.sessionsEvicted.Inc() })

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, CodeNotFound, "no route for "+r.Method+" "+r.URL.Path, nil, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, CodeMethodNotAllowed, r.Method+" is not allowed on "+r.URL.Path, nil, http.StatusMethodNotAllowed)
	})

	// Supporting endpoints
	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	// Sessions
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Get("/", s.handleListSessions)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Use(s.sessionContext)
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/countries", s.handleCountries)
			r.Get("/units", s.handleUnits)
			r.Get("/ports", s.handlePorts)
			r.Post("/quote", s.handleQuote)
		})
	})
}

// AddSession registers a preloaded session, e.g. the configured dataset
func (s *Server) AddSession(sess *session.Session) {
	s.sessions.Put(sess)
}

// Sessions returns the session registry
func (s *Server) Sessions() *session.Registry {
	return s.sessions
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer wraps the handler in an http.Server with sane timeouts
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

type ctxKey struct{}

// sessionContext resolves {sessionID} and stores the session in the context
func (s *Server) sessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess)))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	return r.Context().Value(ctxKey{}).(*session.Session)
}

// logRequests logs every request with zap and records its latency
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		s.metrics.observeRequest(route, r.Method, status, elapsed)
		s.log.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", elapsed),
		)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, details map[string]interface{}, status int) {
	s.writeJSON(w, ErrorResponse{Error: ErrorBody{
		Code:    code,
		Message: message,
		Details: details,
	}}, status)
}
