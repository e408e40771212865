package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andrewpaige1/quizset-api/migrations"
	"github.com/andrewpaige1/quizset-api/models"
)

// Connect opens the store selected by cfg and brings its schema up to date.
// Postgres uses the embedded migrations; SQLite is auto-migrated from the models.
func Connect(cfg *Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.MigrateOnStart {
			if err := migrations.Run(cfg.DBURL, "up"); err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
			log.Println("database migrated")
		}
		db, err := gorm.Open(postgres.Open(cfg.DBURL), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return db, nil
	case DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.DBURL), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("connect sqlite: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite serializes writers; one connection also keeps in-memory databases alive.
		sqlDB.SetMaxOpenConns(1)
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// AutoMigrate creates or updates the tables for every model.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Set{}, &models.Question{}, &models.User{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
