package repository

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"planly/internal/model"
)

const defaultDSN = "planly.db"

// NewDB opens the SQLite file behind the slot store, creating it and its
// directory on first use. The pool holds a single connection so the watch
// jobs take turns on the file.
func NewDB(dsn string, verbose bool) (*gorm.DB, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	if dir := sqliteDir(dsn); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir %q: %w", dir, err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: sqlLogger(verbose)})
	if err != nil {
		return nil, fmt.Errorf("open db %s: %w", dsn, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open db %s: %w", dsn, err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.Slot{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate slots: %w", err)
	}
	return db, nil
}

// sqlLogger sends gorm output through the standard logger. Verbose runs
// also see every statement.
func sqlLogger(verbose bool) logger.Interface {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	return logger.New(log.Default(), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// sqliteDir is the directory a file DSN lives in, or "" for in-memory
// databases and bare file names.
func sqliteDir(dsn string) string {
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return ""
	}
	path, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if dir := filepath.Dir(path); dir != "." {
		return dir
	}
	return ""
}
