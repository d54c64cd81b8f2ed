package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/orgball2608/blog-post-state/internal/poststate"
	"github.com/orgball2608/blog-post-state/pkg/config"
	apperrors "github.com/orgball2608/blog-post-state/pkg/errors"
	"github.com/orgball2608/blog-post-state/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the post state to UI consumers over HTTP. Fetch endpoints
// answer with the resulting snapshot; a failed fetch is reported in its
// "error" field, not through the HTTP status.
type Server struct {
	store  poststate.Store
	logger logger.Logger
	cfg    *config.Config
	srv    *http.Server
}

func NewServer(store poststate.Store, log logger.Logger, cfg *config.Config) *Server {
	s := &Server{
		store:  store,
		logger: log.WithComponent("HTTPServer"),
		cfg:    cfg,
	}
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.healthCheckHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /state", s.handleState)
	mux.HandleFunc("POST /posts/by-url", s.handleFetchByURL)
	mux.HandleFunc("POST /posts/first", s.handleFirstPosts)
	mux.HandleFunc("POST /posts/next", s.handleNextPosts)
	mux.HandleFunc("POST /posts/search", s.handleSearch)
	mux.HandleFunc("POST /status/reset", s.handleResetStatus)
	return mux
}

// Start listens in the background; the bind error is returned synchronously.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}

	s.logger.Info(fmt.Sprintf("Starting server on %s", s.srv.Addr))
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server stopped unexpectedly", "error", err)
		}
	}()
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Health check request received", "Method", r.Method, "URL", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		s.logger.Error("Failed to write response", "Error", err)
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleFetchByURL(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		s.writeError(w, badRequest("missing_url", "query parameter url is required"))
		return
	}

	_, err := s.store.FetchPostByURL(r.Context(), url)
	s.respondSettled(w, "fetch_post_by_url", err)
}

func (s *Server) handleFirstPosts(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.limitParam(w, r)
	if !ok {
		return
	}

	_, err := s.store.FetchFirstPosts(r.Context(), limit)
	s.respondSettled(w, "fetch_first_posts", err)
}

func (s *Server) handleNextPosts(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.limitParam(w, r)
	if !ok {
		return
	}

	var cursor time.Time
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			s.writeError(w, badRequest("invalid_cursor", "cursor must be an RFC 3339 timestamp"))
			return
		}
		cursor = parsed
	} else {
		cursor = s.store.LastPostCreatedAt()
	}
	if cursor.IsZero() {
		s.writeError(w, badRequest("missing_cursor", "cursor is required when no posts are loaded"))
		return
	}

	_, err := s.store.FetchNextPosts(r.Context(), limit, cursor)
	s.respondSettled(w, "fetch_next_posts", err)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	_, err := s.store.SearchPosts(r.Context(), r.URL.Query().Get("searchKeys"))
	s.respondSettled(w, "search_posts", err)
}

func (s *Server) handleResetStatus(w http.ResponseWriter, r *http.Request) {
	s.store.ResetStatus()
	s.writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// limitParam reads ?limit=, defaulting to the configured page size.
func (s *Server) limitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return s.cfg.Feed.PageSize, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		s.writeError(w, badRequest("invalid_limit", "limit must be a positive integer"))
		return 0, false
	}
	return limit, true
}

func (s *Server) respondSettled(w http.ResponseWriter, op string, err error) {
	if err != nil {
		s.logger.Debug("Operation settled with error",
			"operation", op,
			"code", apperrors.GetCode(err),
			"message", apperrors.GetMessage(err))
	}
	s.writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func badRequest(code, message string) error {
	return apperrors.WrapWithCode(apperrors.ErrBadRequest, code, message)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if apperrors.IsBadRequest(err) {
		status = http.StatusBadRequest
	}
	s.writeJSON(w, status, map[string]string{
		"code":    apperrors.GetCode(err),
		"message": apperrors.GetMessage(err),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}
