package models

import (
	"gorm.io/gorm"
)

type Book struct {
	gorm.Model
	Title  string `gorm:"uniqueIndex" json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
}
