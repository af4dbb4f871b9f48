package translation

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
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
)

func newBackend(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/translate", r.URL.Path)

		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text", req.Format)
		assert.Equal(t, "secret", req.APIKey)

		if req.Target == "xx" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"xx is not supported"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(response{TranslatedText: "[" + req.Source + "->" + req.Target + "] " + req.Q})
	}))
}

func testConfig(url string) config.TranslationConfig {
	return config.TranslationConfig{
		BaseURL:           url + "/",
		APIKey:            "secret",
		Timeout:           2000,
		CacheTTL:          60000,
		RequestsPerSecond: 100,
		Burst:             10,
	}
}

func TestTranslate(t *testing.T) {
	var calls int32
	srv := newBackend(t, &calls)
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil, logger.NewTestLogger(t))

	out, err := c.Translate(context.Background(), "Is it open tomorrow?", "en", "fr")
	require.NoError(t, err)
	assert.Equal(t, "[en->fr] Is it open tomorrow?", out)

	out, err = c.Translate(context.Background(), "Bonjour", "", "fr")
	require.NoError(t, err)
	assert.Equal(t, "[auto->fr] Bonjour", out)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestTranslate_SkipsSameLanguage(t *testing.T) {
	var calls int32
	srv := newBackend(t, &calls)
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil, logger.NewTestLogger(t))

	out, err := c.Translate(context.Background(), "Bonjour", "fr", "fr")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", out)

	out, err = c.Translate(context.Background(), "   ", "en", "fr")
	require.NoError(t, err)
	assert.Equal(t, "   ", out)

	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestTranslate_BackendError(t *testing.T) {
	var calls int32
	srv := newBackend(t, &calls)
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil, logger.NewTestLogger(t))

	_, err := c.Translate(context.Background(), "Bonjour", "fr", "xx")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrTranslationFailed))
	assert.Equal(t, errors.ErrCodeTranslationFailed, errors.AsStandardError(err).Code)
}

func TestTranslate_CachesInRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := database.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	var calls int32
	srv := newBackend(t, &calls)
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), cache, logger.NewTestLogger(t))

	for i := 0; i < 3; i++ {
		out, err := c.Translate(context.Background(), "Ahoy", "en", "fr")
		require.NoError(t, err)
		assert.Equal(t, "[en->fr] Ahoy", out)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	key := cacheKey("Ahoy", "en", "fr")
	assert.True(t, mr.Exists(key))
	assert.Positive(t, mr.TTL(key))
}

func TestTranslate_CacheFailureFallsThrough(t *testing.T) {
	db, mock := redismock.NewClientMock()
	key := cacheKey("Ahoy", "en", "fr")
	mock.ExpectGet(key).SetErr(stderrors.New("connection refused"))
	mock.ExpectSet(key, "[en->fr] Ahoy", time.Minute).SetErr(stderrors.New("connection refused"))

	var calls int32
	srv := newBackend(t, &calls)
	defer srv.Close()

	cfg := testConfig(srv.URL)
	c := NewClient(cfg, database.NewRedisFromClient(db), logger.NewTestLogger(t))

	out, err := c.Translate(context.Background(), "Ahoy", "en", "fr")
	require.NoError(t, err)
	assert.Equal(t, "[en->fr] Ahoy", out)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewClient_ZeroTTLDisablesCache(t *testing.T) {
	cfg := testConfig("http://localhost")
	cfg.CacheTTL = 0
	c := NewClient(cfg, database.NewRedisFromClient(redis.NewClient(&redis.Options{})), logger.NewNoOpLogger())
	assert.Nil(t, c.cache)
}
