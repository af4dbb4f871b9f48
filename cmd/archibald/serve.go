package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"archibald/internal/api"
	"archibald/internal/common/camunda"
	"archibald/internal/common/config"
	"archibald/internal/common/ratelimit"
	chatreply "archibald/internal/workers/faq-chat/chat-reply"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat API",
	Long: `Serve POST /chat plus health, readiness and metrics endpoints.
When camunda.enabled is set, the chat-reply job worker runs alongside.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, "")
	if err != nil {
		return err
	}
	defer a.Close()

	a.log.Info("starting archibald", map[string]interface{}{
		"environment": a.cfg.App.Environment,
		"knowledge":   a.cfg.Knowledge.Source,
	})

	handler, err := a.pipeline()
	if err != nil {
		return err
	}

	readyChecks := map[string]api.Pinger{}
	window := config.GetDuration(a.cfg.Chat.SessionWindow)
	var limiter ratelimit.Limiter
	if a.redis != nil {
		limiter = ratelimit.NewRedisSessionLimiter(a.redis, a.cfg.Chat.SessionRequestLimit, window)
		readyChecks["redis"] = a.redis
	} else {
		limiter = ratelimit.NewMemoryLimiter(a.cfg.Chat.SessionRequestLimit, window)
	}
	if a.postgres != nil {
		readyChecks["postgres"] = a.postgres
	}

	if a.cfg.Camunda.Enabled {
		zeebe, err := camunda.NewClient(ctx, camunda.ConfigFrom(a.cfg.Camunda))
		if err != nil {
			return err
		}
		defer func() {
			if err := zeebe.Close(); err != nil {
				a.log.Error("error closing zeebe client", map[string]interface{}{"error": err.Error()})
			}
		}()

		w := camunda.NewWorker(zeebe.GetClient(), chatreply.TaskType, a.cfg.Camunda.MaxJobsActive, handler, a.log)
		defer w.Stop()
		readyChecks["zeebe"] = pingFunc(zeebe.HealthCheck)
	}

	server := api.NewServer(a.cfg.Server, api.Dependencies{
		Pipeline:     handler,
		Limiter:      limiter,
		Knowledge:    a.kb,
		ReadyChecks:  readyChecks,
		SessionLimit: a.cfg.Chat.SessionRequestLimit,
	}, a.log)

	if err := server.Start(ctx); err != nil {
		return err
	}
	a.log.Info("archibald stopped gracefully", nil)
	return nil
}
