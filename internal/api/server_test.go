package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archibald/internal/common/config"
	"archibald/internal/common/database"
	"archibald/internal/common/errors"
	"archibald/internal/common/logger"
	"archibald/internal/common/ratelimit"
	"archibald/internal/models"
	chatreply "archibald/internal/workers/faq-chat/chat-reply"
)

type fakePipeline struct {
	out    *chatreply.Output
	err    error
	inputs []*chatreply.Input
}

func (f *fakePipeline) Execute(_ context.Context, in *chatreply.Input) (*chatreply.Output, error) {
	f.inputs = append(f.inputs, in)
	return f.out, f.err
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Address:        ":0",
		AllowedOrigins: []string{"https://phareducapferret.com"},
		SessionCookie:  "archibald_session",
		RequestTimeout: 1000,
	}
}

func newTestServer(t *testing.T, cfg config.ServerConfig, deps Dependencies) *Server {
	t.Helper()
	s := NewServer(cfg, deps, logger.NewTestLogger(t))
	s.newID = func() string { return "session-1" }
	return s
}

func postChat(h http.Handler, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestChat_Success(t *testing.T) {
	pipeline := &fakePipeline{out: &chatreply.Output{Response: "Ahoy !", Language: "fr"}}
	s := newTestServer(t, testServerConfig(), Dependencies{Pipeline: pipeline})

	rec := postChat(s.Handler(), `{"message":"C'est ouvert demain ?"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, "Ahoy !", body["response"])
	assert.Equal(t, "fr", body["language"])

	require.Len(t, pipeline.inputs, 1)
	assert.Equal(t, "C'est ouvert demain ?", pipeline.inputs[0].Message)
	assert.Equal(t, "session-1", pipeline.inputs[0].SessionID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "archibald_session", cookies[0].Name)
	assert.Equal(t, "session-1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestChat_ReusesSessionCookie(t *testing.T) {
	pipeline := &fakePipeline{out: &chatreply.Output{Response: "ok"}}
	s := newTestServer(t, testServerConfig(), Dependencies{Pipeline: pipeline})

	rec := postChat(s.Handler(), `{"message":"Bonjour"}`, &http.Cookie{Name: "archibald_session", Value: "existing"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, "existing", pipeline.inputs[0].SessionID)
}

func TestChat_InputErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode errors.ErrorCode
	}{
		{name: "empty message", body: `{"message":""}`, wantCode: errors.ErrCodeMessageRequired},
		{name: "blank message", body: `{"message":"   "}`, wantCode: errors.ErrCodeMessageRequired},
		{name: "missing message", body: `{}`, wantCode: errors.ErrCodeMessageRequired},
		{name: "malformed json", body: `{"message":`, wantCode: errors.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := &fakePipeline{}
			s := newTestServer(t, testServerConfig(), Dependencies{Pipeline: pipeline})

			rec := postChat(s.Handler(), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, string(tt.wantCode), decode(t, rec)["code"])
			assert.Empty(t, pipeline.inputs)
		})
	}
}

func TestChat_PipelineErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "translation", err: errors.NewTranslationFailedError(stderrors.New("down")), wantStatus: http.StatusBadGateway},
		{name: "generation", err: errors.NewGenerationFailedError(stderrors.New("quota")), wantStatus: http.StatusBadGateway},
		{name: "timeout", err: errors.NewGenerationTimeoutError(stderrors.New("slow")), wantStatus: http.StatusGatewayTimeout},
		{name: "unknown", err: stderrors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, testServerConfig(), Dependencies{Pipeline: &fakePipeline{err: tt.err}})

			rec := postChat(s.Handler(), `{"message":"Hello"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, "Service temporarily unavailable, please try again later", body["error"])
			assert.NotContains(t, rec.Body.String(), "response")
		})
	}
}

func TestChat_SessionLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := database.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	pipeline := &fakePipeline{out: &chatreply.Output{Response: "ok"}}
	s := newTestServer(t, testServerConfig(), Dependencies{
		Pipeline:     pipeline,
		Limiter:      ratelimit.NewRedisSessionLimiter(client, 5, time.Hour),
		SessionLimit: 5,
	})
	h := s.Handler()
	cookie := &http.Cookie{Name: "archibald_session", Value: "visitor"}

	for i := 0; i < 5; i++ {
		rec := postChat(h, `{"message":"Bonjour"}`, cookie)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := postChat(h, `{"message":"Bonjour"}`, cookie)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, string(errors.ErrCodeRateLimited), decode(t, rec)["code"])
	assert.Len(t, pipeline.inputs, 5)
}

func TestChat_LimiterFailureAllows(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectIncr("archibald:session:visitor").SetErr(stderrors.New("connection refused"))

	pipeline := &fakePipeline{out: &chatreply.Output{Response: "ok"}}
	s := newTestServer(t, testServerConfig(), Dependencies{
		Pipeline:     pipeline,
		Limiter:      ratelimit.NewRedisSessionLimiter(database.NewRedisFromClient(db), 5, time.Hour),
		SessionLimit: 5,
	})

	rec := postChat(s.Handler(), `{"message":"Bonjour"}`, &http.Cookie{Name: "archibald_session", Value: "visitor"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChat_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, testServerConfig(), Dependencies{Pipeline: &fakePipeline{}})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, testServerConfig(), Dependencies{Pipeline: &fakePipeline{out: &chatreply.Output{}}})
	h := s.Handler()

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "https://phareducapferret.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://phareducapferret.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthAndReady(t *testing.T) {
	s := newTestServer(t, testServerConfig(), Dependencies{
		Pipeline:    &fakePipeline{},
		ReadyChecks: map[string]Pinger{"redis": fakePinger{}},
	})
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode(t, rec)["status"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	s = newTestServer(t, testServerConfig(), Dependencies{
		Pipeline:    &fakePipeline{},
		ReadyChecks: map[string]Pinger{"redis": fakePinger{err: stderrors.New("connection refused")}},
	})
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "connection refused", body["checks"].(map[string]interface{})["redis"])
}

func TestDebugKnowledge(t *testing.T) {
	kb := &models.KnowledgeBase{
		Pricing: models.DefaultPricingRule(),
		FAQ:     []models.FAQEntry{{Question: "Q", Answer: "A"}},
	}

	cfg := testServerConfig()
	s := newTestServer(t, cfg, Dependencies{Pipeline: &fakePipeline{}, Knowledge: kb})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/knowledge", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	cfg.DebugKnowledge = true
	s = newTestServer(t, cfg, Dependencies{Pipeline: &fakePipeline{}, Knowledge: kb})
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/knowledge", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.EqualValues(t, 7, body["pricing"].(map[string]interface{})["adultPrice"])
	assert.Len(t, body["faq"], 1)
}
