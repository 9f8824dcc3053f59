package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/readmarathon/reading-marathon-api/internal/models"
)

// Authorize validates the credentials on a protected operation. API keys are
// checked first, then the JWT cookie.
func (h *AuthHandler) Authorize(ctx context.Context, input AuthInput) error {
	if input.APIKey != "" {
		var keyModel models.APIKey
		if err := h.db.Where("key = ?", input.APIKey).First(&keyModel).Error; err == nil {
			if keyModel.ExpiresAt != nil && time.Now().After(*keyModel.ExpiresAt) {
				return huma.Error401Unauthorized("API Key expired")
			}
			h.db.Model(&keyModel).Update("last_used_at", time.Now())
			return nil
		}
	}

	tokenString, err := tokenFromCookieHeader(input.Cookie)
	if err != nil {
		return huma.Error401Unauthorized("No token found")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return huma.Error401Unauthorized("Invalid token")
	}

	return nil
}

func tokenFromCookieHeader(header string) (string, error) {
	if header == "" {
		return "", http.ErrNoCookie
	}
	req := http.Request{Header: http.Header{"Cookie": {header}}}
	cookie, err := req.Cookie("auth_token")
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}
