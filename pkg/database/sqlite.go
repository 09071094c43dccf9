package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rentmoment/rental-api/config"
)

// NewSQLiteDB opens a SQLite database. A single connection is kept so that
// in-memory databases are shared by every query.
func NewSQLiteDB(dsn, environment string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), GormConfig(environment))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Open connects to the configured driver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		return NewSQLiteDB(cfg.Database.SQLitePath, cfg.App.Environment)
	default:
		return NewPostgresDB(cfg)
	}
}
