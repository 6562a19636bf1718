// Package httpserver provides the HTTP REST API server for the news service.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/newsfold/news-service/internal/database"
	"github.com/newsfold/news-service/internal/observability"
	"github.com/newsfold/news-service/internal/repository"
)

// Server is the HTTP REST API server.
type Server struct {
	router      chi.Router
	httpServer  *http.Server
	articleRepo repository.ArticleRepository
	commentRepo repository.CommentRepository
	topicRepo   repository.TopicRepository
	userRepo    repository.UserRepository
	db          *database.DB
	logger      zerolog.Logger
	metrics     *observability.Metrics
	validate    *validator.Validate
	limiter     *clientLimiter
	metricsPath string
}

// Config holds HTTP server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// MetricsPath exposes the Prometheus endpoint when non-empty.
	MetricsPath string

	// RateLimitRPS/RateLimitBurst enable per-client throttling when RPS > 0.
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewServer creates a new HTTP server with all dependencies.
func NewServer(
	cfg Config,
	articleRepo repository.ArticleRepository,
	commentRepo repository.CommentRepository,
	topicRepo repository.TopicRepository,
	userRepo repository.UserRepository,
	db *database.DB,
	logger zerolog.Logger,
	metrics *observability.Metrics,
) *Server {
	s := &Server{
		articleRepo: articleRepo,
		commentRepo: commentRepo,
		topicRepo:   topicRepo,
		userRepo:    userRepo,
		db:          db,
		logger:      logger.With().Str("component", "http-server").Logger(),
		metrics:     metrics,
		validate:    validator.New(),
		metricsPath: cfg.MetricsPath,
	}

	if cfg.RateLimitRPS > 0 {
		s.limiter = newClientLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(correlationIDMiddleware)
	r.Use(requestLoggerMiddleware(s.logger, s.metrics))
	r.Use(jsonContentTypeMiddleware)
	r.Use(bodyLimitMiddleware)
	if s.limiter != nil {
		r.Use(rateLimitMiddleware(s.limiter, s.metrics))
	}

	// Any unmatched route or method is the same 404 to clients.
	r.NotFound(s.pathNotFoundHandler)
	r.MethodNotAllowed(s.pathNotFoundHandler)

	// Health and metrics endpoints
	r.Get("/healthz", s.healthHandler)
	r.Get("/readyz", s.readinessHandler)
	if s.metricsPath != "" {
		r.Method(http.MethodGet, s.metricsPath, promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.describeAPI)

		r.Get("/topics", s.listTopics)
		r.Post("/topics", s.createTopic)

		r.Get("/articles", s.listArticles)
		r.Post("/articles", s.createArticle)
		r.Get("/articles/{articleID}", s.getArticle)
		r.Patch("/articles/{articleID}", s.updateArticleVotes)
		r.Delete("/articles/{articleID}", s.deleteArticle)
		r.Get("/articles/{articleID}/comments", s.listArticleComments)
		r.Post("/articles/{articleID}/comments", s.createArticleComment)

		r.Get("/users", s.listUsers)
		r.Get("/users/{username}", s.getUser)

		r.Patch("/comments/{commentID}", s.updateCommentVotes)
		r.Delete("/comments/{commentID}", s.deleteComment)
	})

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the underlying handler, for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// pathNotFoundHandler answers every unrouted request with the contract's
// fixed 404 wording.
func (s *Server) pathNotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgPathNotFound)
}

// describeAPI handles GET /api with a minimal endpoint directory.
func (s *Server) describeAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"endpoints": {
			"GET /api/topics",
			"POST /api/topics",
			"GET /api/articles",
			"POST /api/articles",
			"GET /api/articles/:article_id",
			"PATCH /api/articles/:article_id",
			"DELETE /api/articles/:article_id",
			"GET /api/articles/:article_id/comments",
			"POST /api/articles/:article_id/comments",
			"GET /api/users",
			"GET /api/users/:username",
			"PATCH /api/comments/:comment_id",
			"DELETE /api/comments/:comment_id",
		},
	})
}

// healthHandler returns basic liveness status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := s.db.Health(r.Context())
	if health.Status == "healthy" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": health.Status})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{
		"status":   "unhealthy",
		"database": health.Status,
		"error":    health.Error,
	})
}

// readinessHandler returns readiness status.
func (s *Server) readinessHandler(w http.ResponseWriter, r *http.Request) {
	health := s.db.Health(r.Context())
	if health.Status != "healthy" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "not_ready",
			"database": health.Status,
			"error":    health.Error,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"database": "healthy",
	})
}

// decodeBody decodes and structurally validates a JSON request body into
// dst. Any failure (unreadable body, malformed JSON, wrong field type,
// missing required field) is the same generic 400 to the client; the
// specific cause is a client bug, not something we enumerate back.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			s.logger.Error().Err(err).Msg("request struct is not validatable")
			writeError(w, http.StatusInternalServerError, msgInternalError)
			return false
		}
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return false
	}

	return true
}
