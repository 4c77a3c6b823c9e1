package postgres

import (
	"context"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/task-tracker/internal/config"
)

// DB is the statement surface shared by *pgxpool.Conn,
// *pgx.Conn and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Handle is a live connection owned by a single request.
// It must be released exactly once.
type Handle interface {
	DB
	Ping(ctx context.Context) error
	Release()
}

type Acquirer interface {
	Acquire(ctx context.Context) (Handle, error)
}

type Gateway struct {
	pool *pgxpool.Pool
}

var _ Acquirer = (*Gateway)(nil)

// Connect opens a pool and pings it once before returning.
func Connect(ctx context.Context, cfg config.PostgresConfig) (*Gateway, error) {
	poolCfg, err := pgxpool.ParseConfig(NewConnString(cfg))
	if err != nil {
		return nil, err
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()

	err = pool.Ping(pingCtx)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &Gateway{pool: pool}, nil
}

func (g *Gateway) Acquire(ctx context.Context) (Handle, error) {
	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (g *Gateway) Close() {
	g.pool.Close()
}

// NewConnString builds a postgres:// URL. The password
// is optional and left out when empty.
func NewConnString(cfg config.PostgresConfig) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Database,
	}
	if cfg.Password != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	} else {
		u.User = url.User(cfg.Username)
	}
	if cfg.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {cfg.SSLMode}}.Encode()
	}
	return u.String()
}
