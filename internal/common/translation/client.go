// Package translation talks to a LibreTranslate compatible backend, with an
// optional Redis cache in front of it.
package translation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"archibald/internal/common/config"
	"archibald/internal/common/errors"
	httpclient "archibald/internal/common/http"
	"archibald/internal/common/logger"
	"archibald/internal/common/metrics"
)

var ErrTranslationFailed = stderrors.New("translation failed")

// Cache stores translations. database.RedisClient satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
}

type request struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type response struct {
	TranslatedText string `json:"translatedText"`
}

type Client struct {
	http     *httpclient.Client
	endpoint string
	apiKey   string
	cache    Cache
	cacheTTL time.Duration
	limiter  *rate.Limiter
	logger   logger.Logger
}

// NewClient builds a client. cache may be nil.
func NewClient(cfg config.TranslationConfig, cache Cache, log logger.Logger) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 15
	}
	ttl := time.Duration(cfg.CacheTTL) * time.Millisecond
	if ttl <= 0 {
		cache = nil
	}

	return &Client{
		http:     httpclient.NewClient(time.Duration(cfg.Timeout) * time.Millisecond),
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/translate",
		apiKey:   cfg.APIKey,
		cache:    cache,
		cacheTTL: ttl,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		logger:   log.With(map[string]interface{}{"service": "translation"}),
	}
}

// Translate converts text from source to target. An empty source lets the
// backend detect it. Same-language and blank input are returned unchanged
// without a call.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" || (source != "" && source == target) {
		return text, nil
	}
	if source == "" {
		source = "auto"
	}

	key := cacheKey(text, source, target)
	if c.cache != nil {
		cached, ok, err := c.cache.Get(ctx, key)
		switch {
		case err != nil:
			c.logger.Warn("translation cache read failed", map[string]interface{}{"error": err})
		case ok:
			metrics.TranslationCache.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.TranslationCache.WithLabelValues("miss").Inc()
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", errors.NewTranslationFailedError(fmt.Errorf("%w: rate limiter: %v", ErrTranslationFailed, err))
	}

	start := time.Now()
	var resp response
	err := c.http.PostJSON(ctx, c.endpoint, request{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: c.apiKey,
	}, &resp)
	elapsed := time.Since(start)

	if err == nil && strings.TrimSpace(resp.TranslatedText) == "" {
		err = stderrors.New("empty translation")
	}
	if err != nil {
		metrics.ExternalCallDuration.WithLabelValues("translation", "error").Observe(elapsed.Seconds())
		c.logger.Warn("translation failed", map[string]interface{}{
			"source": source,
			"target": target,
			"error":  err,
		})
		return "", errors.NewTranslationFailedError(fmt.Errorf("%w: %s->%s: %v", ErrTranslationFailed, source, target, err))
	}
	metrics.ExternalCallDuration.WithLabelValues("translation", "ok").Observe(elapsed.Seconds())

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, resp.TranslatedText, c.cacheTTL); err != nil {
			c.logger.Warn("translation cache write failed", map[string]interface{}{"error": err})
		}
	}

	c.logger.Debug("translated", map[string]interface{}{
		"source":     source,
		"target":     target,
		"durationMs": elapsed.Milliseconds(),
	})
	return resp.TranslatedText, nil
}

func cacheKey(text, source, target string) string {
	sum := sha256.Sum256([]byte(text))
	return "translation:" + source + ":" + target + ":" + hex.EncodeToString(sum[:])
}
