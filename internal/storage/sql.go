package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// entry is one persisted slot.
type entry struct {
	SlotKey   string `gorm:"column:slot_key;primaryKey;size:255"`
	Value     string `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time
}

func (entry) TableName() string {
	return "theme_entries"
}

// SQL stores slots in a relational table through GORM.
type SQL struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) a SQLite database at dsn using the pure Go
// driver. Pass ":memory:" for a throwaway database. writer receives GORM's
// warnings and slow-query reports; nil discards them.
func OpenSQLite(dsn string, writer gormlogger.Writer) (*SQL, error) {
	gormLog := gormlogger.Discard
	if writer != nil {
		gormLog = gormlogger.New(writer, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormLog,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	sqlDB.SetMaxOpenConns(1)

	return NewSQL(db)
}

// NewSQL wraps an existing GORM connection and migrates the slot table.
func NewSQL(db *gorm.DB) (*SQL, error) {
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrating theme_entries: %w", err)
	}
	return &SQL{db: db}, nil
}

// Get implements Backend.
func (s *SQL) Get(key string) ([]byte, error) {
	var e entry
	err := s.db.Where("slot_key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return []byte(e.Value), nil
}

// Set implements Backend as an upsert.
func (s *SQL) Set(key string, value []byte) error {
	e := entry{SlotKey: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *SQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
