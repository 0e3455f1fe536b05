package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mockmate/interview-coach/internal/models"
)

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := cfg.GetDatabaseDSN()

	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("✅ Database connected successfully")

	if err := MigrateModels(db); err != nil {
		return nil, err
	}

	log.Println("✅ Database migration completed")

	return db, nil
}

// MigrateModels runs AutoMigrate for every entity. Split out so tests can
// reuse it against an in-memory database.
func MigrateModels(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profession{},
		&models.Question{},
		&models.Interview{},
		&models.Answer{},
		&models.CV{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
