package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/task-tracker/internal/config"
)

func TestLevelForEnv(t *testing.T) {
	for env, want := range map[string]zerolog.Level{
		config.EnvLocal: zerolog.TraceLevel,
		config.EnvDev:   zerolog.DebugLevel,
		config.EnvProd:  zerolog.InfoLevel,
	} {
		level, err := levelForEnv(env)
		require.NoError(t, err, env)
		assert.Equal(t, want, level, env)
	}

	_, err := levelForEnv("staging")
	assert.ErrorContains(t, err, "staging")
}

func TestWriterForEnv(t *testing.T) {
	var buf bytes.Buffer
	assert.Same(t, &buf, writerForEnv(config.EnvProd, &buf))
	assert.IsType(t, zerolog.ConsoleWriter{}, writerForEnv(config.EnvLocal, &buf))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf)
	logger.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, entry, "pid")
	assert.Contains(t, entry, "caller")
}
