package engine

import (
	"context"
	"testing"
	"time"

	"github.com/readmarathon/reading-marathon-api/internal/models"
	"github.com/readmarathon/reading-marathon-api/internal/source"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeSource struct {
	rows []source.SubmissionRow
	err  error
}

func (f *fakeSource) Fetch(ctx context.Context) ([]source.SubmissionRow, error) {
	return f.rows, f.err
}

func setupDB(t *testing.T) *gorm.DB {
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
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedSettings(t *testing.T, db *gorm.DB) {
	t.Helper()
	settings := models.GlobalSettings{ScoringRules: models.DefaultScoringRules()}
	if err := db.Create(&settings).Error; err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}
}

func seedPeriod(t *testing.T, db *gorm.DB, start, end time.Time, rules models.ScoringRules) models.ChallengePeriod {
	t.Helper()
	book := models.Book{Title: "Test Book " + start.Format("2006-01-02"), Author: "Author"}
	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to create book: %v", err)
	}
	period := models.ChallengePeriod{
		StartDate:    models.DateOnly(start),
		EndDate:      models.DateOnly(end),
		BookID:       book.ID,
		ScoringRules: rules,
	}
	if err := db.Create(&period).Error; err != nil {
		t.Fatalf("failed to create period: %v", err)
	}
	return period
}

func seedMember(t *testing.T, db *gorm.DB, name string) models.Member {
	t.Helper()
	member := models.Member{Name: name, Active: true}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("failed to create member: %v", err)
	}
	return member
}

// newTestEngine wires an engine with a fixed clock.
func newTestEngine(db *gorm.DB, src source.SubmissionSource, today time.Time) *Engine {
	e := New(db, src)
	e.now = func() time.Time { return today }
	return e
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
