// Package dbconn opens database/sql connections for the CLI's live checks
// and the integration tests.
package dbconn

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DefaultTimeout bounds the connectivity check of Open.
const DefaultTimeout = 10 * time.Second

// Config describes a connection.
type Config struct {
	// Driver is a driver name or alias: sqlite, sqlite3, postgres, pg, mysql.
	Driver string
	// DSN is passed to the driver. MySQL DSNs get parseTime=true so
	// temporal columns arrive as time.Time.
	DSN string
	// Timeout bounds the ping; zero means DefaultTimeout.
	Timeout time.Duration
	// MaxOpenConns limits the pool; zero picks 1 for sqlite and 5 otherwise.
	MaxOpenConns int
}

var driverAliases = map[string]string{
	"sqlite":     "sqlite",
	"sqlite3":    "sqlite",
	"postgres":   "postgres",
	"postgresql": "postgres",
	"pg":         "postgres",
	"mysql":      "mysql",
}

// DriverName maps an alias to the registered database/sql driver name.
func DriverName(alias string) (string, error) {
	name, ok := driverAliases[strings.ToLower(strings.TrimSpace(alias))]
	if !ok {
		return "", fmt.Errorf("unknown driver %q, expected sqlite, postgres or mysql", alias)
	}

	return name, nil
}

// Open opens and pings a connection pool.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	driver, err := DriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn, err := normalizeDSN(driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 5
		// every connection to ":memory:" is a separate database
		if driver == "sqlite" {
			maxOpen = 1
		}
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(min(maxOpen, 2))
	db.SetConnMaxLifetime(10 * time.Minute)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return db, nil
}

func normalizeDSN(driver, dsn string) (string, error) {
	switch driver {
	case "sqlite":
		if dsn == "" {
			return ":memory:", nil
		}

		return dsn, nil

	case "mysql":
		mc, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("parse mysql dsn: %w", err)
		}

		mc.ParseTime = true

		return mc.FormatDSN(), nil

	default:
		if dsn == "" {
			return "", fmt.Errorf("%s needs a dsn", driver)
		}

		return dsn, nil
	}
}
