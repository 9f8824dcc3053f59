package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/readmarathon/reading-marathon-api/internal/auth"
	"github.com/readmarathon/reading-marathon-api/internal/config"
	"github.com/readmarathon/reading-marathon-api/internal/database"
	"github.com/readmarathon/reading-marathon-api/internal/engine"
	"github.com/readmarathon/reading-marathon-api/internal/handlers"
	"github.com/readmarathon/reading-marathon-api/internal/notifier"
	"github.com/readmarathon/reading-marathon-api/internal/source"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Submission source (the Google Sheet behind the registration form)
	if cfg.SpreadsheetID == "" {
		log.Fatal("SPREADSHEET_ID is not configured")
	}
	sheetSource, err := source.NewSheetSource(context.Background(), cfg.GoogleCredentialsFile, cfg.SpreadsheetID, cfg.SheetName)
	if err != nil {
		log.Fatalf("Failed to initialize submission source: %v", err)
	}

	// Initialize Handlers
	discordNotifier, err := notifier.NewDiscordNotifier(cfg.DiscordBotToken, cfg.DiscordAnnounceChannelID)
	if err != nil {
		log.Printf("Discord notifier not initialized: %v", err)
	}
	var summaryNotifier engine.SummaryNotifier
	if discordNotifier != nil {
		summaryNotifier = discordNotifier
	}

	updateEngine := engine.New(db, sheetSource)

	authHandler := auth.NewAuthHandler(cfg, db)
	memberHandler := handlers.NewMemberHandler(db, authHandler)
	challengeHandler := handlers.NewChallengeHandler(db, authHandler)
	settingsHandler := handlers.NewSettingsHandler(db, authHandler)
	statsHandler := handlers.NewStatsHandler(db, authHandler)
	syncHandler := handlers.NewSyncHandler(updateEngine, summaryNotifier, authHandler)
	apiKeyHandler := handlers.NewAPIKeyHandler(db, authHandler)

	// Start the periodic sync cycle
	sched, err := updateEngine.StartSyncScheduler(cfg.SyncIntervalMinutes, summaryNotifier)
	if err != nil {
		log.Fatalf("Failed to start sync scheduler: %v", err)
	}
	defer func() { _ = sched.Shutdown() }()

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, authHandler, memberHandler, challengeHandler, settingsHandler, statsHandler, syncHandler, apiKeyHandler)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
