package models

import (
	"time"

	"gorm.io/gorm"
)

// Meeting types and statuses.
const (
	MeetingTypeVideo    = "video"
	MeetingTypeAudio    = "audio"
	MeetingTypeInPerson = "in-person"

	MeetingStatusScheduled = "scheduled"
	MeetingStatusCompleted = "completed"
	MeetingStatusCancelled = "cancelled"
)

// Meeting is a scheduled mentorship session between a mentor and a student.
type Meeting struct {
	gorm.Model

	Title     string    `gorm:"not null" json:"title"`
	MentorID  string    `gorm:"type:text;not null;index" json:"mentorId"`
	StudentID string    `gorm:"type:text;not null;index" json:"studentId"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	// Duration is in minutes.
	Duration    int    `gorm:"not null" json:"duration"`
	Type        string `gorm:"not null;default:video" json:"type"`
	Status      string `gorm:"not null;default:scheduled" json:"status"`
	MeetingLink string `json:"meetingLink"`
	Location    string `json:"location"`
	Notes       string `json:"notes"`

	// ReminderSent keeps the reminder job from mailing twice.
	ReminderSent bool `gorm:"default:false" json:"-"`
}
