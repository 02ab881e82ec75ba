package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"studentms/internal/config"
	"studentms/internal/store"
)

// Open connects to the configured SQL backend and migrates the
// students table.
func Open(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case store.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	case store.DriverPostgres:
		dsn := "host=" + cfg.DBHost + " user=" + cfg.DBUser + " password=" + cfg.DBPassword +
			" dbname=" + cfg.DBName + " port=" + cfg.DBPort + " sslmode=disable"
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("driver %q is not a SQL store", cfg.StoreDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.StoreDriver, err)
	}

	if err := db.AutoMigrate(&store.StudentRow{}); err != nil {
		return nil, fmt.Errorf("migrate students table: %w", err)
	}

	return db, nil
}
