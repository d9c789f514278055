package models

import (
	"time"

	"gorm.io/gorm"
)

// Todo priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Todo is one entry on a user's task list.
type Todo struct {
	gorm.Model

	UserID    string     `gorm:"type:text;not null;index" json:"userId"`
	Text      string     `gorm:"not null" json:"text"`
	Completed bool       `gorm:"default:false" json:"completed"`
	DueDate   *time.Time `json:"dueDate"`
	Priority  string     `gorm:"default:medium" json:"priority"`
}

// StudySession records one focused study block, used for XP and streaks.
type StudySession struct {
	gorm.Model

	UserID string `gorm:"type:text;not null;index" json:"userId"`
	// Duration is in seconds.
	Duration int       `gorm:"not null" json:"duration"`
	Task     string    `json:"task"`
	Date     time.Time `gorm:"index" json:"date"`
}
