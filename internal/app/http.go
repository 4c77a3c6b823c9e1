package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/task-tracker/internal/config"
	"github.com/adanyl0v/task-tracker/internal/delivery/http/v1"
	"github.com/adanyl0v/task-tracker/internal/services"
	"github.com/adanyl0v/task-tracker/internal/storage/postgres"
)

// MustListenAndServeHTTP serves the task API until SIGINT or
// SIGTERM, then drains in-flight requests.
func MustListenAndServeHTTP() {
	cfg := config.Global()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := newRouter(cfg.Env, globalLogger, globalPostgres)
	err := serveHTTP(ctx, cfg.HTTP, router, globalLogger)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("http server failed")
		panic(err)
	}
}

func newRouter(env string, logger zerolog.Logger, conns postgres.Acquirer) *gin.Engine {
	if env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	taskService := services.NewTaskService(logger)
	v1.RegisterRoutes(router, v1.New(logger, conns, taskService))
	return router
}

// serveHTTP blocks until ctx is done or the listener fails.
// Shutdown is bounded by cfg.ShutdownTimeout.
func serveHTTP(ctx context.Context, cfg config.HTTPConfig, handler http.Handler, logger zerolog.Logger) error {
	server := &http.Server{
		Addr:    net.JoinHostPort(cfg.Host, cfg.Port),
		Handler: handler,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", server.Addr).
			Msg("listening http")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		return err
	}

	err = <-serveErr
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info().Msg("shut down http server")
	return nil
}
