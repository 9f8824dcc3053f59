package models

import (
	"gorm.io/gorm"
)

// ScoringRules is the full rule set for one challenge period. Every period
// owns its own copy, frozen at creation time; editing the global defaults
// later never changes an existing period's scoring.
type ScoringRules struct {
	MinutesPerPointCommon    int `json:"minutes_per_point_common"`
	MinutesPerPointOther     int `json:"minutes_per_point_other"`
	FinishCommonBookPoints   int `json:"finish_common_book_points"`
	FinishOtherBookPoints    int `json:"finish_other_book_points"`
	QuoteCommonBookPoints    int `json:"quote_common_book_points"`
	QuoteOtherBookPoints     int `json:"quote_other_book_points"`
	AttendDiscussionPoints   int `json:"attend_discussion_points"`
	NoLogDaysTrigger         int `json:"no_log_days_trigger"`
	NoLogInitialPenalty      int `json:"no_log_initial_penalty"`
	NoLogSubsequentPenalty   int `json:"no_log_subsequent_penalty"`
	NoQuoteDaysTrigger       int `json:"no_quote_days_trigger"`
	NoQuoteInitialPenalty    int `json:"no_quote_initial_penalty"`
	NoQuoteSubsequentPenalty int `json:"no_quote_subsequent_penalty"`
}

// GlobalSettings is the single row holding the default rules used to seed
// newly created challenge periods. The recalculation engine never reads it.
type GlobalSettings struct {
	gorm.Model
	ScoringRules `gorm:"embedded"`
}

// DefaultScoringRules returns the rule set seeded on first start.
func DefaultScoringRules() ScoringRules {
	return ScoringRules{
		MinutesPerPointCommon:    10,
		MinutesPerPointOther:     5,
		FinishCommonBookPoints:   50,
		FinishOtherBookPoints:    25,
		QuoteCommonBookPoints:    3,
		QuoteOtherBookPoints:     1,
		AttendDiscussionPoints:   25,
		NoLogDaysTrigger:         3,
		NoLogInitialPenalty:      10,
		NoLogSubsequentPenalty:   2,
		NoQuoteDaysTrigger:       3,
		NoQuoteInitialPenalty:    5,
		NoQuoteSubsequentPenalty: 1,
	}
}
