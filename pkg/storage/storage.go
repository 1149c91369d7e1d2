// Package storage keeps price bars durable.
//
// Every backend enforces one row per (owner, ticker, date) and treats a
// write of an already stored key as a no-op, so concurrent ingestions for
// the same key never produce duplicate rows.
package storage

import (
	"context"
	"fmt"

	"github.com/pricebars/pkg/models"
)

// Store is the record store used by the ingestion pipeline and by queries.
type Store interface {
	// ExistingDates returns which of dates are already stored for owner and ticker.
	ExistingDates(ctx context.Context, ownerID, ticker string, dates []models.Date) ([]models.Date, error)
	// SaveAll writes bars in one batch and returns how many rows were new.
	SaveAll(ctx context.Context, bars []models.PriceBar) (int64, error)
	// FindByOwnerAndTicker returns stored bars in insertion order.
	FindByOwnerAndTicker(ctx context.Context, ownerID, ticker string) ([]models.PriceBar, error)
	Close() error
}

// Option selects and configures a backend.
type Option struct {
	Driver       string
	SQLitePath   string
	Postgres     PostgresOption
	MaxOpenConns int
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open opens the backend named by opt.Driver.
func Open(opt Option) (Store, error) {
	switch opt.Driver {
	case "", DriverSQLite:
		return NewSQLiteStore(opt.SQLitePath, opt.MaxOpenConns)
	case DriverPostgres:
		return NewPostgresStore(opt.Postgres, opt.MaxOpenConns)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opt.Driver)
	}
}
