package database

import (
	"log"

	"github.com/readmarathon/reading-marathon-api/internal/config"
	"github.com/readmarathon/reading-marathon-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(
		&models.GlobalSettings{},
		&models.Member{},
		&models.Book{},
		&models.ChallengePeriod{},
		&models.ReadingLog{},
		&models.Achievement{},
		&models.MemberStats{},
		&models.GroupStats{},
		&models.APIKey{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	if err := Seed(db); err != nil {
		log.Fatalf("Failed to seed default settings: %v", err)
	}

	return db
}

// Seed inserts the singleton global settings row on first start.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.GlobalSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	settings := models.GlobalSettings{ScoringRules: models.DefaultScoringRules()}
	return db.Create(&settings).Error
}
