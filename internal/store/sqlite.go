package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/minhvu-dn/weather-predict/internal/weather"
)

// readingRecord is the sqlite row shape for one reading.
type readingRecord struct {
	ID          uint      `gorm:"primaryKey"`
	Timestamp   time.Time `gorm:"index"`
	City        string
	Temperature float64
	Humidity    float64
	WindSpeed   float64
}

// SQLiteStore keeps readings in an embedded sqlite database, for
// single-node deployments that do not run InfluxDB.
type SQLiteStore struct {
	db    *gorm.DB
	table string
	log   *slog.Logger
}

// NewSQLiteStore opens (creating if needed) the database file and
// migrates the readings table.
func NewSQLiteStore(path, table string, log *slog.Logger) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite db %s: %w", path, err)
	}

	if err := db.Table(table).AutoMigrate(&readingRecord{}); err != nil {
		return nil, fmt.Errorf("migrate table %s: %w", table, err)
	}

	return &SQLiteStore{db: db, table: table, log: log}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, readings ...weather.Reading) error {
	records := make([]readingRecord, 0, len(readings))
	for _, r := range readings {
		records = append(records, readingRecord{
			Timestamp:   r.Timestamp,
			City:        r.City,
			Temperature: r.Temperature,
			Humidity:    r.Humidity,
			WindSpeed:   r.WindSpeed,
		})
	}

	if err := s.db.WithContext(ctx).Table(s.table).Create(&records).Error; err != nil {
		return fmt.Errorf("sqlite append: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Query(ctx context.Context, limit int, order Order) []weather.Reading {
	direction := "asc"
	if order == OrderDesc {
		direction = "desc"
	}

	var records []readingRecord
	err := s.db.WithContext(ctx).
		Table(s.table).
		Order("timestamp " + direction).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		s.log.Warn("sqlite query failed, returning empty result", "error", err)
		return nil
	}

	readings := make([]weather.Reading, 0, len(records))
	for _, rec := range records {
		readings = append(readings, weather.Reading{
			Timestamp:   rec.Timestamp.UTC(),
			City:        rec.City,
			Temperature: rec.Temperature,
			Humidity:    rec.Humidity,
			WindSpeed:   rec.WindSpeed,
		})
	}
	return readings
}

func (s *SQLiteStore) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
