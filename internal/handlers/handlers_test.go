package handlers

import (
	"testing"
	"time"

	"github.com/readmarathon/reading-marathon-api/internal/auth"
	"github.com/readmarathon/reading-marathon-api/internal/config"
	"github.com/readmarathon/reading-marathon-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTest(t *testing.T) (*gorm.DB, *auth.AuthHandler, auth.AuthInput) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
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
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{JWTSecret: "test-secret", AdminPassword: "pw"}
	authHandler := auth.NewAuthHandler(cfg, db)
	token, err := authHandler.GenerateToken()
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	return db, authHandler, auth.AuthInput{Cookie: "auth_token=" + token}
}

func seedGlobalSettings(t *testing.T, db *gorm.DB) models.GlobalSettings {
	t.Helper()
	settings := models.GlobalSettings{ScoringRules: models.DefaultScoringRules()}
	if err := db.Create(&settings).Error; err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}
	return settings
}

func testDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
