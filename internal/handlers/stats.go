package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/readmarathon/reading-marathon-api/internal/auth"
	"github.com/readmarathon/reading-marathon-api/internal/models"
	"gorm.io/gorm"
)

type StatsHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewStatsHandler(db *gorm.DB, authHandler *auth.AuthHandler) *StatsHandler {
	return &StatsHandler{db: db, authHandler: authHandler}
}

// MemberStatsRow is a stats row joined with the member's name, ordered by
// points: the leaderboard.
type MemberStatsRow struct {
	MemberID                  uint       `json:"member_id"`
	Name                      string     `json:"name"`
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

type MemberStatsInput struct {
	auth.AuthInput
}

type MemberStatsOutput struct {
	Body []MemberStatsRow
}

func (h *StatsHandler) HandleMemberStats(ctx context.Context, input *MemberStatsInput) (*MemberStatsOutput, error) {
	if err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var rows []MemberStatsRow
	err := h.db.Model(&models.MemberStats{}).
		Select("member_stats.*, members.name").
		Joins("JOIN members ON members.id = member_stats.member_id").
		Order("member_stats.total_points DESC, members.name").
		Scan(&rows).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load member stats")
	}

	return &MemberStatsOutput{Body: rows}, nil
}

type GroupStatsInput struct {
	auth.AuthInput
}

type GroupStatsOutput struct {
	Body []models.GroupStats
}

func (h *StatsHandler) HandleGroupStats(ctx context.Context, input *GroupStatsInput) (*GroupStatsOutput, error) {
	if err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var stats []models.GroupStats
	if err := h.db.Order("period_id").Find(&stats).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load group stats")
	}

	return &GroupStatsOutput{Body: stats}, nil
}
