package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/readmarathon/reading-marathon-api/internal/config"
	"gorm.io/gorm"
)

const TokenDuration = 24 * time.Hour

// AuthHandler authenticates the organizer. There is a single admin identity:
// a password login issues a JWT cookie, and API keys let automation call the
// protected endpoints without a session.
type AuthHandler struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{cfg: cfg, db: db}
}

// AuthInput carries the credentials accepted on protected operations.
type AuthInput struct {
	Cookie string `header:"Cookie"`
	APIKey string `header:"X-API-KEY"`
}

type LoginRequest struct {
	Body struct {
		Password string `json:"password" doc:"Admin password" required:"true"`
	}
}

type LoginResponse struct {
	SetCookie string `header:"Set-Cookie"`
	Body      struct {
		Message string `json:"message"`
	}
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*LoginResponse, error) {
	if h.cfg.AdminPassword == "" {
		return nil, huma.Error500InternalServerError("Admin password not configured")
	}
	if subtle.ConstantTimeCompare([]byte(input.Body.Password), []byte(h.cfg.AdminPassword)) != 1 {
		return nil, huma.Error401Unauthorized("Invalid password")
	}

	token, err := h.GenerateToken()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	cookie := &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
	}

	res := &LoginResponse{SetCookie: cookie.String()}
	res.Body.Message = "Logged in"
	return res, nil
}

func (h *AuthHandler) GenerateToken() (string, error) {
	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}
