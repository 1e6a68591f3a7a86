package config

import (
	"github.com/breevs/roulette-backend/models"
	"github.com/breevs/roulette-backend/utils/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// SetupDatabase connects to DB and runs migrations.
// TranslateError is on so a unique-index violation surfaces as
// gorm.ErrDuplicatedKey in the summary pipeline.
func SetupDatabase(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Log.Fatalf("Failed to connect to DB: %v", err)
	}
	DB = db

	if err := Migrate(db); err != nil {
		logger.Log.Fatalf("Migration failed: %v", err)
	}

	logger.Info("Database connected and migrated")
	return db
}

// Migrate runs AutoMigrate for all persisted entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Player{},
		&models.Game{},
		&models.GameEvent{},
		&models.GameSummary{},
		&models.GameCommentary{},
	)
}
