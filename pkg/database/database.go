// Package database opens the PostgreSQL or SQLite connection pool and ties
// its availability check and close to the lifecycle coordinator.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/JaimeStill/groundtruth/pkg/lifecycle"
)

// pingInterval spaces startup ping attempts within the connect timeout.
const pingInterval = 250 * time.Millisecond

// System owns the connection pool.
type System interface {
	Connection() *sql.DB
	// Driver returns DriverPostgres or DriverSQLite.
	Driver() string
	// Start registers the startup ping and the shutdown close with lc.
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn   *sql.DB
	driver string
	pool   Pool
	logger *slog.Logger
}

// New opens the pool for cfg without connecting. For SQLite the parent
// directory of Path is created first.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if cfg.Driver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	conn, err := sql.Open(cfg.DriverName(), cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	pool := cfg.Pool()
	conn.SetMaxOpenConns(pool.MaxOpen)
	conn.SetMaxIdleConns(pool.MaxIdle)
	conn.SetConnMaxLifetime(pool.MaxLifetime)

	return &database{
		conn:   conn,
		driver: cfg.Driver,
		pool:   pool,
		logger: logger.With("system", "database", "driver", cfg.Driver),
	}, nil
}

func (d *database) Connection() *sql.DB { return d.conn }

func (d *database) Driver() string { return d.driver }

func (d *database) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup("database", func() error {
		return d.ping(lc.Context())
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database closed")
	})

	return nil
}

// ping retries until the database answers or the connect timeout elapses.
func (d *database) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.pool.ConnTimeout)
	defer cancel()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		err := d.conn.PingContext(ctx)
		if err == nil {
			d.logger.Info("database connected", "attempts", attempt)
			return nil
		}

		select {
		case <-ctx.Done():
			d.logger.Error("database unreachable", "attempts", attempt, "error", err)
			return fmt.Errorf("ping database: %w", err)
		case <-ticker.C:
		}
	}
}
