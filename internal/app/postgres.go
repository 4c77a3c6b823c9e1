package app

import (
	"context"

	"github.com/adanyl0v/task-tracker/internal/config"
	"github.com/adanyl0v/task-tracker/internal/storage/postgres"
)

var globalPostgres *postgres.Gateway

func MustConnectPostgres() {
	cfg := config.Global().Postgres

	var err error
	globalPostgres, err = postgres.Connect(context.Background(), cfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("host", cfg.Host).
			Int("port", cfg.Port).
			Msg("failed to connect to postgres")
		panic(err)
	}
	globalLogger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("connected to postgres")
}

func MustEnsurePostgresSchema() {
	ctx, cancel := context.WithTimeout(context.Background(), config.Global().Postgres.PingTimeout)
	defer cancel()

	conn, err := globalPostgres.Acquire(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to acquire connection")
		panic(err)
	}
	defer conn.Release()

	err = postgres.EnsureSchema(ctx, conn, globalLogger)
	if err != nil {
		panic(err)
	}
}

func DisconnectPostgres() {
	globalPostgres.Close()
	globalLogger.Info().Msg("disconnected from postgres")
}
