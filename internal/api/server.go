// Package api exposes the chat pipeline over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"archibald/internal/common/config"
	"archibald/internal/common/errors"
	"archibald/internal/common/logger"
	"archibald/internal/common/metrics"
	"archibald/internal/common/ratelimit"
	"archibald/internal/models"
	chatreply "archibald/internal/workers/faq-chat/chat-reply"
)

const maxBodyBytes = 64 << 10

type Pipeline interface {
	Execute(ctx context.Context, input *chatreply.Input) (*chatreply.Output, error)
}

// Pinger is a dependency checked by /ready.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Dependencies struct {
	Pipeline     Pipeline
	Limiter      ratelimit.Limiter
	Knowledge    *models.KnowledgeBase
	ReadyChecks  map[string]Pinger
	SessionLimit int
}

type Server struct {
	config config.ServerConfig
	deps   Dependencies
	logger logger.Logger
	server *http.Server
	newID  func() string
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
	Language string `json:"language,omitempty"`
}

func NewServer(cfg config.ServerConfig, deps Dependencies, log logger.Logger) *Server {
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.NewMemoryLimiter(0, 0)
	}
	return &Server{
		config: cfg,
		deps:   deps,
		logger: log.With(map[string]interface{}{"component": "api"}),
		newID:  uuid.NewString,
	}
}

// Handler returns the routed handler wrapped in CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	if s.config.DebugKnowledge {
		mux.HandleFunc("GET /debug/knowledge", s.handleDebugKnowledge)
	}

	var h http.Handler = mux
	h = s.logRequests(h)
	h = s.cors(h)
	return h
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.config.Address,
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Millisecond,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", map[string]interface{}{"address": s.config.Address})
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.logger.Info("http server stopping", nil)
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	outcome := metrics.OutcomeAnswered
	defer func() {
		metrics.ChatRequests.WithLabelValues(outcome).Inc()
		metrics.ChatDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		outcome = metrics.OutcomeRejected
		s.writeError(w, errors.NewInvalidRequestError("body must be a JSON object with a message field"))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		outcome = metrics.OutcomeRejected
		s.writeError(w, errors.NewMessageRequiredError())
		return
	}

	sessionID := s.session(w, r)

	allowed, err := s.deps.Limiter.Allow(r.Context(), sessionID)
	if err != nil {
		// A failing session store lets the request through.
		s.logger.Warn("session limiter failed, allowing request", map[string]interface{}{
			"sessionId": sessionID,
			"error":     err,
		})
		allowed = true
	}
	if !allowed {
		outcome = metrics.OutcomeRateLimited
		s.logger.Info("session limit reached", map[string]interface{}{"sessionId": sessionID})
		s.writeError(w, errors.NewRateLimitedError(s.deps.SessionLimit))
		return
	}

	ctx := r.Context()
	if s.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.config.RequestTimeout)*time.Millisecond)
		defer cancel()
	}

	out, err := s.deps.Pipeline.Execute(ctx, &chatreply.Input{Message: req.Message, SessionID: sessionID})
	if err != nil {
		outcome = metrics.OutcomeFailed
		if errors.IsClientError(err) {
			outcome = metrics.OutcomeRejected
		}
		s.logger.Error("chat request failed", map[string]interface{}{
			"sessionId": sessionID,
			"error":     err,
		})
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: out.Response, Language: out.Language})
}

// session returns the visitor's session id, issuing a cookie on first visit.
func (s *Server) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(s.config.SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := s.newID()
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	return id
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	checks := make(map[string]string, len(s.deps.ReadyChecks))
	for name, p := range s.deps.ReadyChecks {
		if err := p.Ping(r.Context()); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}
	writeJSON(w, status, map[string]interface{}{
		"status": state,
		"checks": checks,
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleDebugKnowledge(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Knowledge)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	httpErr := errors.ToHTTPError(err)
	writeJSON(w, httpErr.Status, httpErr)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
