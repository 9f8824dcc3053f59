package models

import (
	"time"

	"gorm.io/gorm"
)

// ReadingLog is one validated daily submission. Timestamp is the external
// form's submission identifier and the sole idempotency key; rows are
// insert-only and never updated.
type ReadingLog struct {
	gorm.Model
	Timestamp            string    `gorm:"uniqueIndex" json:"timestamp"`
	MemberID             uint      `json:"member_id"`
	Member               Member    `json:"member"`
	SubmissionDate       time.Time `json:"submission_date"`
	CommonBookMinutes    int       `json:"common_book_minutes"`
	OtherBookMinutes     int       `json:"other_book_minutes"`
	SubmittedCommonQuote int       `json:"submitted_common_quote"`
	SubmittedOtherQuote  int       `json:"submitted_other_quote"`
}
