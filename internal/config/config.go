package config

import (
	"errors"
	"fmt"
	"time"
)

var ErrMissingValue = errors.New("missing config value")

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-required:"true"`
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8000"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// PostgresConfig has no defaults for the connection target,
// a missing value fails startup.
type PostgresConfig struct {
	Host           string        `yaml:"server" env:"POSTGRES_SERVER" env-required:"true"`
	Port           int           `yaml:"port" env:"POSTGRES_PORT" env-required:"true"`
	Username       string        `yaml:"user" env:"POSTGRES_USER" env-required:"true"`
	Password       string        `yaml:"password" env:"POSTGRES_PASSWORD"`
	Database       string        `yaml:"db" env:"POSTGRES_DB" env-required:"true"`
	SSLMode        string        `yaml:"ssl_mode" env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `yaml:"ping_timeout" env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

// Validate rejects values that are present but empty,
// which cleanenv treats as set.
func (c *Config) Validate() error {
	switch {
	case c.Postgres.Host == "":
		return fmt.Errorf("%w: POSTGRES_SERVER", ErrMissingValue)
	case c.Postgres.Port <= 0:
		return fmt.Errorf("%w: POSTGRES_PORT", ErrMissingValue)
	case c.Postgres.Username == "":
		return fmt.Errorf("%w: POSTGRES_USER", ErrMissingValue)
	case c.Postgres.Database == "":
		return fmt.Errorf("%w: POSTGRES_DB", ErrMissingValue)
	}
	return nil
}
