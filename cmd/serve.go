package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/iqfieldbot/internal/api"
	"github.com/abhisek/iqfieldbot/internal/buildinfo"
	"github.com/abhisek/iqfieldbot/internal/store"
	"github.com/abhisek/iqfieldbot/internal/tracing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "Listen port (overrides server.port)")
	serveCmd.Flags().String("store", "", "Session store backend: memory, sqlite, redis or mongo")
}

func runServe(cmd *cobra.Command, args []string) error {
	if p, _ := cmd.Flags().GetInt("port"); p != 0 {
		cfg.Server.Port = p
	}
	if b, _ := cmd.Flags().GetString("store"); b != "" {
		cfg.Store.Backend = b
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting iqfieldbot",
		zap.String("version", buildinfo.Version()),
		zap.String("store", cfg.Store.Backend),
		zap.Int("session_length", cfg.Session.Length),
	)

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.Init(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Error("failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	rt, err := buildRuntime(ctx, cmd, cfg.Store, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	gin.SetMode(cfg.Server.Mode)
	opts := api.Options{
		Engine:            rt.engine,
		Metrics:           rt.metrics,
		Logger:            log.Named("http"),
		RequireAuth:       cfg.Auth.Require,
		APISecret:         cfg.Auth.APISecret,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Burst:             cfg.RateLimit.Burst,
		Tracing:           cfg.Tracing.Enabled,
	}
	if p, ok := rt.store.(store.Pinger); ok {
		opts.Pinger = p
	}

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	return api.Serve(ctx, addr, api.NewRouter(opts), cfg.Server.ShutdownTimeout, log)
}
