package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/danielgtaylor/huma/v2"
	"github.com/readmarathon/reading-marathon-api/internal/auth"
	"github.com/readmarathon/reading-marathon-api/internal/engine"
)

type SyncHandler struct {
	engine      *engine.Engine
	notifier    engine.SummaryNotifier
	authHandler *auth.AuthHandler
}

func NewSyncHandler(e *engine.Engine, notifier engine.SummaryNotifier, authHandler *auth.AuthHandler) *SyncHandler {
	return &SyncHandler{engine: e, notifier: notifier, authHandler: authHandler}
}

type SyncInput struct {
	auth.AuthInput
}

type SyncOutput struct {
	Body engine.CycleReport
}

// HandleSync runs one full update cycle on demand.
func (h *SyncHandler) HandleSync(ctx context.Context, input *SyncInput) (*SyncOutput, error) {
	if err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	report, err := h.engine.RunCycle(ctx)
	if err != nil {
		if errors.Is(err, engine.ErrSetupIncomplete) {
			return nil, huma.Error409Conflict("Setup incomplete: add members and a challenge before syncing")
		}
		return nil, huma.Error500InternalServerError("Sync failed: " + err.Error())
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyCycleSummary(report); err != nil {
			log.Printf("Failed to send cycle summary: %v", err)
			// Don't fail the request; the cycle itself succeeded.
		}
	}

	return &SyncOutput{Body: *report}, nil
}
