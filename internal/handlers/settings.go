package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/readmarathon/reading-marathon-api/internal/auth"
	"github.com/readmarathon/reading-marathon-api/internal/models"
	"gorm.io/gorm"
)

type SettingsHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewSettingsHandler(db *gorm.DB, authHandler *auth.AuthHandler) *SettingsHandler {
	return &SettingsHandler{db: db, authHandler: authHandler}
}

type GetSettingsInput struct {
	auth.AuthInput
}

type SettingsOutput struct {
	Body models.ScoringRules
}

func (h *SettingsHandler) HandleGet(ctx context.Context, input *GetSettingsInput) (*SettingsOutput, error) {
	if err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var settings models.GlobalSettings
	if err := h.db.First(&settings).Error; err != nil {
		return nil, huma.Error500InternalServerError("Global settings not found")
	}

	return &SettingsOutput{Body: settings.ScoringRules}, nil
}

type UpdateSettingsInput struct {
	auth.AuthInput
	Body models.ScoringRules
}

// HandleUpdate changes the global default rules. Only future challenges are
// affected; existing periods keep the copy taken at their creation.
func (h *SettingsHandler) HandleUpdate(ctx context.Context, input *UpdateSettingsInput) (*SettingsOutput, error) {
	if err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var settings models.GlobalSettings
	if err := h.db.First(&settings).Error; err != nil {
		return nil, huma.Error500InternalServerError("Global settings not found")
	}

	settings.ScoringRules = input.Body
	if err := h.db.Save(&settings).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update settings")
	}

	return &SettingsOutput{Body: settings.ScoringRules}, nil
}
