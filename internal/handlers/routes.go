package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/readmarathon/reading-marathon-api/internal/auth"
)

func RegisterRoutes(
	r *chi.Mux,
	authHandler *auth.AuthHandler,
	memberHandler *MemberHandler,
	challengeHandler *ChallengeHandler,
	settingsHandler *SettingsHandler,
	statsHandler *StatsHandler,
	syncHandler *SyncHandler,
	apiKeyHandler *APIKeyHandler,
) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Reading Marathon API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: "auth_token",
		},
	}
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	huma.Post(api, "/auth/login", authHandler.HandleLogin)

	secured := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
	}

	huma.Get(api, "/members", memberHandler.HandleList, secured)
	huma.Post(api, "/members", memberHandler.HandleAdd, secured)
	huma.Post(api, "/members/{id}/deactivate", memberHandler.HandleDeactivate, secured)
	huma.Post(api, "/members/{id}/reactivate", memberHandler.HandleReactivate, secured)

	huma.Get(api, "/challenges", challengeHandler.HandleList, secured)
	huma.Post(api, "/challenges", challengeHandler.HandleCreate, secured)
	huma.Delete(api, "/challenges/{id}", challengeHandler.HandleDelete, secured)

	huma.Get(api, "/settings", settingsHandler.HandleGet, secured)
	huma.Put(api, "/settings", settingsHandler.HandleUpdate, secured)

	huma.Get(api, "/stats/members", statsHandler.HandleMemberStats, secured)
	huma.Get(api, "/stats/groups", statsHandler.HandleGroupStats, secured)

	huma.Post(api, "/sync", syncHandler.HandleSync, secured)

	huma.Post(api, "/api-keys", apiKeyHandler.HandleCreate, secured)
	huma.Get(api, "/api-keys", apiKeyHandler.HandleList, secured)
	huma.Delete(api, "/api-keys/{id}", apiKeyHandler.HandleDelete, secured)
}
