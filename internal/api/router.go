// Package api serves the quiz engine over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/iqfieldbot/internal/buildinfo"
	"github.com/abhisek/iqfieldbot/internal/metrics"
	"github.com/abhisek/iqfieldbot/internal/session"
	"github.com/abhisek/iqfieldbot/internal/store"
	"github.com/abhisek/iqfieldbot/internal/tracing"
)

// Options configures the router. Engine is required.
type Options struct {
	Engine *session.Engine

	// Pinger backs the readiness probe; nil reports ready without checks.
	Pinger store.Pinger

	Metrics *metrics.Metrics
	Logger  *zap.Logger

	RequireAuth bool
	APISecret   string

	AllowedOrigins []string

	RequestsPerMinute int
	Burst             int

	Tracing bool

	// Version is reported by /health. Defaults to the binary's build version.
	Version string

	// Now overrides time.Now for the health timestamp.
	Now func() time.Time
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	version := opts.Version
	if version == "" {
		version = buildinfo.Version()
	}
	h := &handler{
		engine:  opts.Engine,
		pinger:  opts.Pinger,
		logger:  logger,
		version: version,
		now:     now,
	}

	r := gin.New()
	r.Use(
		Recovery(logger),
		RequestLogger(logger),
		CORS(opts.AllowedOrigins),
		Secure(),
		RateLimit(opts.RequestsPerMinute, opts.Burst),
	)
	if opts.Tracing {
		r.Use(tracing.GinMiddleware())
	}
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", opts.Metrics.Handler())
	}

	r.GET("/health", h.health)
	r.GET("/health/ready", h.ready)

	v1 := r.Group("/api/v1")
	v1.Use(Auth(opts.RequireAuth, opts.APISecret))
	{
		sessions := v1.Group("/sessions")
		sessions.POST("/create", h.createSession)
		sessions.GET("/:id", h.getSession)
		sessions.GET("/:id/analytics", h.analytics)
		sessions.DELETE("/:id", h.deleteSession)

		chat := v1.Group("/chat")
		chat.POST("/select-field", h.selectField)
		chat.POST("/answer", h.answer)
		chat.POST("/message", h.message)
	}

	r.NoRoute(func(c *gin.Context) {
		abortWith(c, http.StatusNotFound, "Not found")
	})
	return r
}

// Serve runs handler on addr until ctx is canceled, then drains in-flight
// requests for up to shutdownTimeout.
func Serve(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
