package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/pricebars/pkg/models"
)

// SQLiteStore persists price bars in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	// SQLite allows one writer at a time.
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at path and runs migrations.
func NewSQLiteStore(path string, maxOpenConns int) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	// Pragmas go in the DSN so every pooled connection gets them.
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_bars (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id TEXT NOT NULL,
			ticker   TEXT NOT NULL,
			date     TEXT NOT NULL,
			open     REAL NOT NULL,
			close    REAL NOT NULL,
			high     REAL NOT NULL,
			low      REAL NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uidx_price_bars_owner_ticker_date
			ON price_bars(owner_id, ticker, date)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) ExistingDates(ctx context.Context, ownerID, ticker string, dates []models.Date) ([]models.Date, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	args := make([]interface{}, 0, len(dates)+2)
	args = append(args, ownerID, ticker)
	for _, d := range dates {
		args = append(args, d)
	}
	query := `SELECT date FROM price_bars WHERE owner_id = ? AND ticker = ? AND date IN (?` +
		strings.Repeat(",?", len(dates)-1) + `)`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var existing []models.Date
	for rows.Next() {
		var d models.Date
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		existing = append(existing, d)
	}
	return existing, rows.Err()
}

func (s *SQLiteStore) SaveAll(ctx context.Context, bars []models.PriceBar) (int64, error) {
	if len(bars) == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO price_bars
		(owner_id, ticker, date, open, close, high, low)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT(owner_id, ticker, date) DO NOTHING`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var inserted int64
	for _, b := range bars {
		res, err := stmt.ExecContext(ctx, b.OwnerID, b.Ticker, b.Date, b.Open, b.Close, b.High, b.Low)
		if err != nil {
			return 0, fmt.Errorf("insert %s %s: %w", b.Ticker, b.Date, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += n
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *SQLiteStore) FindByOwnerAndTicker(ctx context.Context, ownerID, ticker string) ([]models.PriceBar, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT owner_id, ticker, date, open, close, high, low
		FROM price_bars WHERE owner_id = ? AND ticker = ? ORDER BY id`, ownerID, ticker)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bars := []models.PriceBar{}
	for rows.Next() {
		var b models.PriceBar
		if err := rows.Scan(&b.OwnerID, &b.Ticker, &b.Date, &b.Open, &b.Close, &b.High, &b.Low); err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
