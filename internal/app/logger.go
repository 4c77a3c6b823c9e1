package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/task-tracker/internal/config"
)

var globalLogger zerolog.Logger

func InitDefaultLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"
	zerolog.DurationFieldUnit = time.Millisecond

	globalLogger = newLogger(os.Stdout)
	globalLogger.Info().Msg("initialized default logger")
}

func MustInitApplicationLogger() {
	env := config.Global().Env

	level, err := levelForEnv(env)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("env", env).
			Msg("failed to pick log level")
		panic(err)
	}
	zerolog.SetGlobalLevel(level)

	globalLogger = globalLogger.Output(writerForEnv(env, os.Stdout))
	globalLogger.Info().
		Str("env", env).
		Str("level", level.String()).
		Msg("initialized application logger")
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Logger()
}

func levelForEnv(env string) (zerolog.Level, error) {
	switch env {
	case config.EnvLocal:
		return zerolog.TraceLevel, nil
	case config.EnvDev:
		return zerolog.DebugLevel, nil
	case config.EnvProd:
		return zerolog.InfoLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown env: %q", env)
	}
}

// writerForEnv keeps JSON lines everywhere but local, where
// a human reads the console.
func writerForEnv(env string, out io.Writer) io.Writer {
	if env != config.EnvLocal {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.DateTime,
	}
}
