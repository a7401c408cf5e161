package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/schema"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/orders/internal/config"
)

// Connections wraps the bun handle used to hand out scoped connections.
type Connections struct {
	DB     *bun.DB
	logger *zap.Logger
}

// Module registers the database connections with Fx.
var Module = fx.Provide(New)

// New opens the configured database and ties it to the Fx lifecycle.
// An unreachable database does not block startup; callers see the
// failure on their first scoped connection instead.
func New(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*Connections, error) {
	conns, err := Open(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := pingContext(ctx, conns.DB); err != nil {
				logger.Warn("database not reachable at startup", zap.String("driver", cfg.Database.Driver), zap.Error(err))
				return nil
			}
			logger.Info("database connected", zap.String("driver", cfg.Database.Driver))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := conns.DB.Close(); err != nil {
				return fmt.Errorf("close database: %w", err)
			}
			return nil
		},
	})

	return conns, nil
}

// Open builds Connections without lifecycle hooks.
func Open(cfg config.Database, logger *zap.Logger) (*Connections, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dial, err := selectDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	sqlDB, err := openSQLDB(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	applyPoolSettings(sqlDB, cfg)

	return &Connections{DB: bun.NewDB(sqlDB, dial), logger: logger}, nil
}

// Scoped acquires a dedicated connection for the duration of fn and
// releases it on every exit path.
func (c *Connections) Scoped(ctx context.Context, fn func(context.Context, bun.Conn) error) error {
	conn, err := c.DB.Conn(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			c.logger.Warn("release connection failed", zap.Error(err))
		}
	}()
	return fn(ctx, conn)
}

// Probe runs a trivial round-trip query and returns its row.
func (c *Connections) Probe(ctx context.Context) (map[string]int, error) {
	var ok int
	err := c.Scoped(ctx, func(ctx context.Context, conn bun.Conn) error {
		return conn.NewRaw("SELECT 1 AS ok").Scan(ctx, &ok)
	})
	if err != nil {
		return nil, err
	}
	return map[string]int{"ok": ok}, nil
}

// Close releases the underlying pool.
func (c *Connections) Close() error {
	return c.DB.Close()
}

func selectDialect(driver string) (schema.Dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return pgdialect.New(), nil
	case "mysql":
		return mysqldialect.New(), nil
	case "sqlite":
		return sqlitedialect.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

func openSQLDB(driver, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("empty DSN")
	}

	switch driver {
	case "postgres":
		connector := pgdriver.NewConnector(pgdriver.WithDSN(dsn))
		return sql.OpenDB(connector), nil
	case "pgx":
		return sql.Open("pgx", dsn)
	case "mysql":
		return sql.Open("mysql", dsn)
	case "sqlite":
		return sql.Open(sqliteshim.ShimName, dsn)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
}

func applyPoolSettings(db *sql.DB, cfg config.Database) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	// Zero idle connections closes every scoped connection on release.
	db.SetMaxIdleConns(max(cfg.MaxIdleConns, 0))
	if cfg.MaxConnLifetime > 0 {
		db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	}
}

func pingContext(ctx context.Context, db *bun.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.PingContext(pingCtx)
}
