package models

import (
	"time"

	"gorm.io/gorm"
)

// APIKey lets external automation (e.g. a cron hitting POST /sync) call the
// admin API without a login session.
type APIKey struct {
	gorm.Model
	Key        string     `json:"key" gorm:"uniqueIndex"`
	Name       string     `json:"name"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}
