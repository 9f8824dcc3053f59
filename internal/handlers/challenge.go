package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/readmarathon/reading-marathon-api/internal/auth"
	"github.com/readmarathon/reading-marathon-api/internal/models"
	"gorm.io/gorm"
)

type ChallengeHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewChallengeHandler(db *gorm.DB, authHandler *auth.AuthHandler) *ChallengeHandler {
	return &ChallengeHandler{db: db, authHandler: authHandler}
}

type ListChallengesInput struct {
	auth.AuthInput
}

type ListChallengesOutput struct {
	Body []models.ChallengePeriod
}

func (h *ChallengeHandler) HandleList(ctx context.Context, input *ListChallengesInput) (*ListChallengesOutput, error) {
	if err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var periods []models.ChallengePeriod
	if err := h.db.Preload("Book").Order("start_date").Find(&periods).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list challenges")
	}

	return &ListChallengesOutput{Body: periods}, nil
}

type CreateChallengeInput struct {
	auth.AuthInput
	Body struct {
		Title     string               `json:"title" doc:"Common book title" required:"true"`
		Author    string               `json:"author" doc:"Common book author" required:"true"`
		Year      int                  `json:"year" doc:"Publication year"`
		StartDate time.Time            `json:"start_date" required:"true"`
		EndDate   time.Time            `json:"end_date" required:"true"`
		Rules     *models.ScoringRules `json:"rules,omitempty" doc:"Custom rule set; global defaults are copied when omitted"`
	}
}

type CreateChallengeOutput struct {
	Body models.ChallengePeriod
}

// HandleCreate creates a book and its challenge period. The period gets its
// own copy of the scoring rules; editing the global defaults later never
// reshapes an existing challenge.
func (h *ChallengeHandler) HandleCreate(ctx context.Context, input *CreateChallengeInput) (*CreateChallengeOutput, error) {
	if err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	start := models.DateOnly(input.Body.StartDate)
	end := models.DateOnly(input.Body.EndDate)
	if !end.After(start) {
		return nil, huma.Error400BadRequest("End date must be after start date")
	}

	var overlapping int64
	if err := h.db.Model(&models.ChallengePeriod{}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&overlapping).Error; err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	if overlapping > 0 {
		return nil, huma.Error409Conflict("Challenge dates overlap an existing challenge")
	}

	rules := input.Body.Rules
	if rules == nil {
		var settings models.GlobalSettings
		if err := h.db.First(&settings).Error; err != nil {
			return nil, huma.Error500InternalServerError("Global default rules not found")
		}
		rules = &settings.ScoringRules
	}

	var period models.ChallengePeriod
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var book models.Book
		if err := tx.Where("title = ?", input.Body.Title).First(&book).Error; err == gorm.ErrRecordNotFound {
			book = models.Book{Title: input.Body.Title, Author: input.Body.Author, Year: input.Body.Year}
			if err := tx.Create(&book).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		period = models.ChallengePeriod{
			StartDate:    start,
			EndDate:      end,
			BookID:       book.ID,
			ScoringRules: *rules,
		}
		return tx.Create(&period).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to create challenge: " + err.Error())
	}

	if err := h.db.Preload("Book").First(&period, period.ID).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load created challenge")
	}

	return &CreateChallengeOutput{Body: period}, nil
}

type DeleteChallengeInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

// HandleDelete removes a challenge period along with its achievements and
// group statistics. The currently active challenge cannot be deleted.
func (h *ChallengeHandler) HandleDelete(ctx context.Context, input *DeleteChallengeInput) (*struct{}, error) {
	if err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var period models.ChallengePeriod
	if err := h.db.First(&period, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Challenge not found")
	}

	if period.Contains(models.DateOnly(time.Now())) {
		return nil, huma.Error409Conflict("The currently active challenge cannot be deleted")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("period_id = ?", period.ID).Delete(&models.Achievement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("period_id = ?", period.ID).Delete(&models.GroupStats{}).Error; err != nil {
			return err
		}
		return tx.Delete(&period).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete challenge")
	}

	return nil, nil
}
