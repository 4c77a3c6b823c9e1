package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV", EnvDev)
	t.Setenv("POSTGRES_SERVER", "localhost")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("POSTGRES_USER", "tracker")
	t.Setenv("POSTGRES_DB", "tasks")
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestEnvReader_Read(t *testing.T) {
	setRequiredEnv(t)
	unsetEnv(t, "POSTGRES_PASSWORD")
	unsetEnv(t, "POSTGRES_SSL_MODE")
	unsetEnv(t, "POSTGRES_CONNECT_TIMEOUT")
	unsetEnv(t, "HTTP_PORT")
	t.Setenv("POSTGRES_PING_TIMEOUT", "3s")

	cfg, err := NewEnvReader().Read()

	require.NoError(t, err)
	assert.Equal(t, EnvDev, cfg.Env)
	assert.Equal(t, PostgresConfig{
		Host:           "localhost",
		Port:           5432,
		Username:       "tracker",
		Database:       "tasks",
		SSLMode:        "disable",
		ConnectTimeout: 10 * time.Second,
		PingTimeout:    3 * time.Second,
	}, cfg.Postgres)
	assert.Equal(t, "8000", cfg.HTTP.Port)
}

func TestEnvReader_ReadMissing(t *testing.T) {
	for _, key := range []string{"POSTGRES_SERVER", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_DB"} {
		t.Run(key, func(t *testing.T) {
			setRequiredEnv(t)
			unsetEnv(t, key)

			cfg, err := NewEnvReader().Read()

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})

		t.Run(key+" empty", func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(key, "")

			_, err := NewEnvReader().Read()

			assert.Error(t, err)
		})
	}
}

func TestFileReader_Read(t *testing.T) {
	for _, key := range []string{"ENV", "POSTGRES_SERVER", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_DB", "HTTP_PORT"} {
		unsetEnv(t, key)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
env: prod
http:
  port: "9090"
postgres:
  server: db.internal
  port: 6432
  user: tracker
  db: tasks
`), 0o600)
	require.NoError(t, err)

	cfg, err := NewFileReader(path).Read()

	require.NoError(t, err)
	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 6432, cfg.Postgres.Port)
	assert.Equal(t, "tracker", cfg.Postgres.Username)
	assert.Equal(t, "tasks", cfg.Postgres.Database)
}

func TestFileReader_ReadMissingFile(t *testing.T) {
	_, err := NewFileReader(filepath.Join(t.TempDir(), "absent.yaml")).Read()
	assert.Error(t, err)
}
