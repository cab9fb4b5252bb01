package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"

	"calboard/internal/appinfo"
	"calboard/internal/config"
	"calboard/pkg/logger"
)

// schema mirrors the tables written by earlier deployments of the board, so
// an existing leaderboard.db opens unchanged. AUTOINCREMENT keeps ids
// monotonic across resets.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		calories INTEGER NOT NULL,
		proof TEXT,
		date TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_name ON logs(name)`,
}

// Store owns the SQLite file holding log entries and the reset marker.
type Store struct {
	db   *gorm.DB
	path string
	now  func() time.Time
}

// Open creates or opens the SQLite file at cfg.Path in WAL mode, applies the
// schema and seeds the lastReset marker if it is missing. It is safe to call
// on every startup. All failures are ErrStorageUnavailable.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	dbPath := cfg.Path

	if err := ensureDir(dbPath); err != nil {
		return nil, wrap(ErrStorageUnavailable, "ensure database directory", err)
	}

	// WAL lets the fetch endpoint read while a write is in flight; busy_timeout
	// makes the driver wait for the write lock instead of failing.
	dsn := fmt.Sprintf(
		"%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL",
		dbPath,
	)

	logMode := gormLogger.Silent
	if logger.IsDebug() {
		logMode = gormLogger.Warn
	}
	gormConfig := &gorm.Config{
		Logger:                 gormLogger.Default.LogMode(logMode),
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, wrap(ErrStorageUnavailable, "open sqlite", err)
	}

	s := &Store{db: db, path: dbPath, now: time.Now}

	if err := configurePool(db); err != nil {
		s.Close()
		return nil, wrap(ErrStorageUnavailable, "configure pool", err)
	}
	if err := s.migrate(); err != nil {
		s.Close()
		return nil, wrap(ErrStorageUnavailable, "apply schema", err)
	}
	if err := s.seedLastReset(); err != nil {
		s.Close()
		return nil, wrap(ErrStorageUnavailable, "seed lastReset", err)
	}

	s.loadInitialStats()

	logger.LogInfo("Database initialized at %s", dbPath)
	return s, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0750)
	}
	return nil
}

func configurePool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	// One connection: SQLite has a single writer anyway, and it keeps the
	// PRAGMAs from the DSN on every statement.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)
	return sqlDB.Ping()
}

func (s *Store) migrate() error {
	for _, stmt := range schema {
		if err := s.db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) seedLastReset() error {
	row := Meta{Key: lastResetKey, Value: strconv.FormatInt(s.now().UnixMilli(), 10)}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

func (s *Store) loadInitialStats() {
	var count int64
	if err := s.db.Model(&LogEntry{}).Count(&count).Error; err != nil {
		logger.LogWarn("Failed to load initial stats: %v", err)
		return
	}
	appinfo.SetInitialStats(count)
}

// DB exposes the underlying handle for maintenance tasks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
