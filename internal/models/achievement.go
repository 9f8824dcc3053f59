package models

import (
	"time"

	"gorm.io/gorm"
)

type AchievementType string

const (
	FinishedCommonBook AchievementType = "FINISHED_COMMON_BOOK"
	FinishedOtherBook  AchievementType = "FINISHED_OTHER_BOOK"
	AttendedDiscussion AchievementType = "ATTENDED_DISCUSSION"
)

// Achievement records a special claim made through the form. The first two
// types are claimable at most once per (member, period); FINISHED_OTHER_BOOK
// claims are recorded unconditionally and validated against accumulated
// reading time during recalculation.
type Achievement struct {
	gorm.Model
	MemberID uint            `json:"member_id"`
	Member   Member          `json:"member"`
	PeriodID *uint           `json:"period_id"`
	BookID   *uint           `json:"book_id"`
	Type     AchievementType `gorm:"column:achievement_type" json:"achievement_type"`
	Date     time.Time       `gorm:"column:achievement_date" json:"achievement_date"`
}
