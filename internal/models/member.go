package models

import (
	"gorm.io/gorm"
)

// Member is a challenge participant. Members are never hard-deleted while
// reading logs reference them; deactivation just hides them from the form.
type Member struct {
	gorm.Model
	Name   string `gorm:"uniqueIndex" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`
}
