// Package db opens the GORM database connection for the service.
package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	accountadapters "github.com/pb2106/MethaX/internal/feature/account/adapters"
	candleadapters "github.com/pb2106/MethaX/internal/feature/marketdata/adapters"
	tradeadapters "github.com/pb2106/MethaX/internal/feature/trades/adapters"
)

// retryInterval is the pause between connection attempts.
const retryInterval = 3 * time.Second

// Opener turns a DSN into a database handle.
type Opener func(dsn string) (*gorm.DB, error)

// IsPostgresDSN reports whether the URL selects the postgres driver.
// Anything else is treated as a SQLite file path.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// DefaultOpener picks the GORM driver from the DSN shape.
func DefaultOpener(dsn string) (*gorm.DB, error) {
	if IsPostgresDSN(dsn) {
		return gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(gsqlite.Open(dsn), &gorm.Config{})
}

// ConnectWithRetry keeps calling open until it succeeds or the timeout runs
// out. Databases in containers regularly come up after the service does.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}

		slog.Warn("db connect failed, retrying", "error", err)
		sleep := retryInterval
		if remaining < sleep {
			sleep = remaining
		}
		time.Sleep(sleep)
	}
}

// Open connects with retry and migrates the schema.
func Open(dsn string, timeout time.Duration) (*gorm.DB, error) {
	db, err := ConnectWithRetry(dsn, timeout, DefaultOpener)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the tables for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&candleadapters.CandleModel{},
		&accountadapters.AccountStateModel{},
		&tradeadapters.TradeModel{},
	)
}
