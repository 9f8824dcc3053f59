package models

import (
	"time"

	"gorm.io/gorm"
)

// MemberStats is the per-member rollup rebuilt from scratch on every engine
// cycle. It is never edited by hand; it is the deterministic output of
// recalculation over the full log and achievement history.
type MemberStats struct {
	gorm.Model
	MemberID                  uint       `gorm:"uniqueIndex" json:"member_id"`
	TotalPoints               int        `json:"total_points"`
	TotalReadingMinutesCommon int        `json:"total_reading_minutes_common"`
	TotalReadingMinutesOther  int        `json:"total_reading_minutes_other"`
	TotalCommonBooksRead      int        `json:"total_common_books_read"`
	TotalOtherBooksRead       int        `json:"total_other_books_read"`
	TotalQuotesSubmitted      int        `json:"total_quotes_submitted"`
	MeetingsAttended          int        `json:"meetings_attended"`
	LastLogDate               *time.Time `json:"last_log_date"`
	LastQuoteDate             *time.Time `json:"last_quote_date"`
	LogStreak                 int        `json:"log_streak"`
	QuoteStreak               int        `json:"quote_streak"`
}

// GroupStats is the per-period aggregate across all members.
type GroupStats struct {
	gorm.Model
	PeriodID               uint `gorm:"uniqueIndex" json:"period_id"`
	TotalGroupMinutesCommon int `json:"total_group_minutes_common"`
	TotalGroupMinutesOther  int `json:"total_group_minutes_other"`
	TotalGroupQuotesCommon  int `json:"total_group_quotes_common"`
	TotalGroupQuotesOther   int `json:"total_group_quotes_other"`
	ActiveMembers           int `json:"active_members"`
}
