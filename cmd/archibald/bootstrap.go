package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"archibald/internal/common/config"
	"archibald/internal/common/database"
	"archibald/internal/common/langdetect"
	"archibald/internal/common/logger"
	"archibald/internal/common/observability"
	"archibald/internal/common/openai"
	"archibald/internal/common/translation"
	"archibald/internal/knowledge"
	"archibald/internal/models"
	chatreply "archibald/internal/workers/faq-chat/chat-reply"
)

// app holds everything the commands share. Close releases what was opened.
type app struct {
	cfg      *config.Config
	zap      *zap.Logger
	log      logger.Logger
	kb       *models.KnowledgeBase
	report   *knowledge.Report
	postgres *database.PostgresClient
	redis    *database.RedisClient
	obs      *observability.Observability
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// newApp loads config, the knowledge base and optional Redis. logOutput
// overrides logging.output when set.
func newApp(ctx context.Context, logOutput string) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	output := cfg.Logging.Output
	if logOutput != "" {
		output = logOutput
	}
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, output)
	a := &app{cfg: cfg, zap: zapLog, log: logger.NewZapAdapter(zapLog)}

	if a.obs, err = observability.New(cfg.App.Name); err != nil {
		a.log.Warn("observability disabled", map[string]interface{}{"error": err.Error()})
	}

	if err := a.loadKnowledge(ctx); err != nil {
		a.Close()
		return nil, err
	}

	if cfg.Database.Redis.Enabled() {
		redis := database.NewRedis(cfg.Database.Redis)
		err := retryWithBackoff(func() error {
			return redis.Ping(ctx)
		}, 5, time.Second, a.log, "Redis connection")
		if err != nil {
			// Sessions fall back to in-memory counters, translations go uncached.
			a.log.Error("redis unavailable", map[string]interface{}{"error": err.Error()})
			_ = redis.Close()
		} else {
			a.redis = redis
			a.log.Info("redis connected", map[string]interface{}{"address": cfg.Database.Redis.Address})
		}
	}

	return a, nil
}

func (a *app) knowledgeSource(ctx context.Context) (knowledge.Source, error) {
	if a.cfg.Knowledge.Source != config.KnowledgeSourcePostgres {
		return knowledge.NewFileSource(a.cfg.Knowledge.Path), nil
	}

	err := retryWithBackoff(func() error {
		pg, err := database.NewPostgres(a.cfg.Database.Postgres)
		if err != nil {
			return err
		}
		if err := pg.Ping(ctx); err != nil {
			_ = pg.Close()
			return err
		}
		a.postgres = pg
		return nil
	}, 10, 2*time.Second, a.log, "PostgreSQL connection")
	if err != nil {
		return nil, err
	}
	return knowledge.NewPostgresSource(a.postgres, a.cfg.Knowledge.Table), nil
}

func (a *app) loadKnowledge(ctx context.Context) error {
	src, err := a.knowledgeSource(ctx)
	if err != nil {
		return fmt.Errorf("knowledge source: %w", err)
	}
	a.kb, a.report, err = knowledge.Load(ctx, src, a.log)
	return err
}

// pipeline wires the chat-reply handler to its backends.
func (a *app) pipeline() (*chatreply.Handler, error) {
	chatCfg, err := chatreply.LoadConfig(a.cfg)
	if err != nil {
		return nil, err
	}

	var cache translation.Cache
	if a.redis != nil {
		cache = a.redis
	}

	return chatreply.NewHandler(chatCfg, chatreply.Dependencies{
		Knowledge:     a.kb,
		Detector:      langdetect.New(a.cfg.Chat.SupportedLanguages, a.cfg.Chat.FallbackLanguage),
		Translator:    translation.NewClient(a.cfg.APIs.Translation, cache, a.log),
		Generator:     openai.NewClient(a.cfg.APIs.OpenAI, a.log),
		Observability: a.obs,
	}, a.log), nil
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.postgres != nil {
		_ = a.postgres.Close()
	}
	if a.obs != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.obs.Shutdown(ctx)
	}
	_ = a.zap.Sync()
}

// retryWithBackoff runs operation up to maxRetries times, doubling the delay
// after each failure.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}
