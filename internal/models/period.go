package models

import (
	"time"

	"gorm.io/gorm"
)

// ChallengePeriod is one challenge bound to a common book. The embedded
// ScoringRules are copied from the global defaults (or a custom override)
// when the period is created and never touched afterwards.
type ChallengePeriod struct {
	gorm.Model
	StartDate    time.Time    `json:"start_date"`
	EndDate      time.Time    `json:"end_date"`
	BookID       uint         `json:"book_id"`
	Book         Book         `json:"book"`
	ScoringRules `gorm:"embedded"`
}

// Contains reports whether day falls inside [StartDate, EndDate], inclusive.
func (p *ChallengePeriod) Contains(day time.Time) bool {
	return !day.Before(p.StartDate) && !day.After(p.EndDate)
}

// PeriodFor returns the period whose date range contains day, or nil.
func PeriodFor(periods []ChallengePeriod, day time.Time) *ChallengePeriod {
	for i := range periods {
		if periods[i].Contains(day) {
			return &periods[i]
		}
	}
	return nil
}
