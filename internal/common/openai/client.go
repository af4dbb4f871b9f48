// Package openai is the generation backend: a rate-limited chat completion
// client with a fixed persona system message.
package openai

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"archibald/internal/common/config"
	"archibald/internal/common/errors"
	"archibald/internal/common/logger"
	"archibald/internal/common/metrics"
)

const SystemPrompt = "You are Archibald, the knowledgeable lighthouse keeper."

var (
	ErrGenerationFailed = stderrors.New("generation failed")
	ErrEmptyCompletion  = stderrors.New("completion returned no text")
)

type Client struct {
	api     *goopenai.Client
	config  config.OpenAIConfig
	limiter *rate.Limiter
	logger  logger.Logger
}

func NewClient(cfg config.OpenAIConfig, log logger.Logger) *Client {
	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	apiCfg.HTTPClient = &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Millisecond}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 3
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	return &Client{
		api:     goopenai.NewClientWithConfig(apiCfg),
		config:  cfg,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  log.With(map[string]interface{}{"service": "openai"}),
	}
}

// Generate sends prompt as the user message and returns the first choice.
// There is no retry; failures map to GENERATION_FAILED or GENERATION_TIMEOUT.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", errors.NewGenerationTimeoutError(fmt.Errorf("%w: rate limiter: %v", ErrGenerationFailed, err))
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role:    goopenai.ChatMessageRoleSystem,
				Content: SystemPrompt,
			},
			{
				Role:    goopenai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})
	elapsed := time.Since(start)

	if err != nil {
		metrics.ExternalCallDuration.WithLabelValues("openai", "error").Observe(elapsed.Seconds())
		c.logger.Warn("completion failed", map[string]interface{}{
			"error":      err,
			"durationMs": elapsed.Milliseconds(),
		})
		wrapped := fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		if isTimeout(err) {
			return "", errors.NewGenerationTimeoutError(wrapped)
		}
		return "", errors.NewGenerationFailedError(wrapped)
	}
	metrics.ExternalCallDuration.WithLabelValues("openai", "ok").Observe(elapsed.Seconds())

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errors.NewGenerationFailedError(ErrEmptyCompletion)
	}

	c.logger.Debug("completion received", map[string]interface{}{
		"model":            resp.Model,
		"promptTokens":     resp.Usage.PromptTokens,
		"completionTokens": resp.Usage.CompletionTokens,
		"durationMs":       elapsed.Milliseconds(),
	})
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}
