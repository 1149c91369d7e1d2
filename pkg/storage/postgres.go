package storage

import (
	"context"
	"fmt"
	"net/url"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/pricebars/pkg/models"
)

const (
	defaultPostgresHost    = "localhost"
	defaultPostgresPort    = 5432
	defaultPostgresSSLMode = "disable"

	insertBatchSize = 500
)

// PostgresOption defines connection options for PostgreSQL. ConnString wins
// over the discrete fields when set.
type PostgresOption struct {
	Host       string
	Port       int
	User       string
	Password   string
	Database   string
	SSLMode    string
	Params     map[string]string
	ConnString string
}

// priceBarRow is the gorm mapping of a stored bar.
type priceBarRow struct {
	ID      uint64      `gorm:"primaryKey"`
	OwnerID string      `gorm:"size:128;not null;uniqueIndex:uidx_price_bars_owner_ticker_date,priority:1"`
	Ticker  string      `gorm:"size:32;not null;uniqueIndex:uidx_price_bars_owner_ticker_date,priority:2"`
	Date    models.Date `gorm:"not null;uniqueIndex:uidx_price_bars_owner_ticker_date,priority:3"`
	Open    float64     `gorm:"not null"`
	Close   float64     `gorm:"not null"`
	High    float64     `gorm:"not null"`
	Low     float64     `gorm:"not null"`
}

func (priceBarRow) TableName() string { return "price_bars" }

func toRow(b models.PriceBar) priceBarRow {
	return priceBarRow{
		OwnerID: b.OwnerID,
		Ticker:  b.Ticker,
		Date:    b.Date,
		Open:    b.Open,
		Close:   b.Close,
		High:    b.High,
		Low:     b.Low,
	}
}

func (r priceBarRow) bar() models.PriceBar {
	return models.PriceBar{
		OwnerID: r.OwnerID,
		Ticker:  r.Ticker,
		Date:    r.Date,
		Open:    r.Open,
		Close:   r.Close,
		High:    r.High,
		Low:     r.Low,
	}
}

// PostgresStore persists price bars in PostgreSQL through gorm.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore connects and migrates the price_bars table.
func NewPostgresStore(opt PostgresOption, maxOpenConns int) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(opt.dsn()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return newPostgresStore(db, maxOpenConns)
}

func newPostgresStore(db *gorm.DB, maxOpenConns int) (*PostgresStore, error) {
	if maxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(maxOpenConns)
	}
	if err := db.AutoMigrate(&priceBarRow{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) ExistingDates(ctx context.Context, ownerID, ticker string, dates []models.Date) ([]models.Date, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	var existing []models.Date
	err := s.db.WithContext(ctx).
		Model(&priceBarRow{}).
		Where("owner_id = ? AND ticker = ? AND date IN ?", ownerID, ticker, dates).
		Pluck("date", &existing).Error
	return existing, err
}

func (s *PostgresStore) SaveAll(ctx context.Context, bars []models.PriceBar) (int64, error) {
	if len(bars) == 0 {
		return 0, nil
	}
	rows := make([]priceBarRow, len(bars))
	for i, b := range bars {
		rows[i] = toRow(b)
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(rows, insertBatchSize)
	return res.RowsAffected, res.Error
}

func (s *PostgresStore) FindByOwnerAndTicker(ctx context.Context, ownerID, ticker string) ([]models.PriceBar, error) {
	var rows []priceBarRow
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND ticker = ?", ownerID, ticker).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	bars := make([]models.PriceBar, len(rows))
	for i, r := range rows {
		bars[i] = r.bar()
	}
	return bars, nil
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (opt PostgresOption) dsn() string {
	if opt.ConnString != "" {
		return opt.ConnString
	}

	host := opt.Host
	if host == "" {
		host = defaultPostgresHost
	}
	port := opt.Port
	if port == 0 {
		port = defaultPostgresPort
	}
	sslMode := opt.SSLMode
	if sslMode == "" {
		sslMode = defaultPostgresSSLMode
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", host, port),
	}
	if opt.User != "" {
		if opt.Password != "" {
			u.User = url.UserPassword(opt.User, opt.Password)
		} else {
			u.User = url.User(opt.User)
		}
	}
	if opt.Database != "" {
		u.Path = "/" + opt.Database
	}

	query := url.Values{}
	query.Set("sslmode", sslMode)
	for key, value := range opt.Params {
		if key == "" {
			continue
		}
		query.Set(key, value)
	}
	u.RawQuery = query.Encode()
	return u.String()
}
