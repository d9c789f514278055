package models

import "gorm.io/gorm"

// Resume is a stored resume document built in the resume editor. The
// structured sections (experience, education, projects, ...) live in the
// Document JSON column; the builder owns that shape, the backend only
// stores and returns it.
type Resume struct {
	gorm.Model

	UserID   string `gorm:"type:text;not null;index" json:"userId"`
	Name     string `gorm:"not null" json:"name"`
	Template string `gorm:"default:modern" json:"template"`
	Document string `gorm:"type:jsonb" json:"document"`
}
