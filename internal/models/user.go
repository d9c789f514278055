package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // required for pq.StringArray columns
	"gorm.io/gorm"
)

// Roles a user account can hold.
const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
	RoleAdmin   = "admin"
)

// User represents an account on the platform. Students, mentors and admins
// share one table; the Role field tells them apart.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"not null;default:student" json:"role"`

	Bio        string         `json:"bio"`
	Experience string         `json:"experience"`
	Avatar     string         `json:"avatar"`
	Location   string         `json:"location"`
	Interests  pq.StringArray `gorm:"type:text[]" json:"interests"`
	Skills     pq.StringArray `gorm:"type:text[]" json:"skills"`
	Badges     pq.StringArray `gorm:"type:text[]" json:"badges"`

	Rating     float64 `gorm:"default:5.0" json:"rating"`
	XP         int     `gorm:"column:xp;default:0" json:"xp"`
	Streak     int     `gorm:"default:0" json:"streak"`
	Sessions   int     `gorm:"default:0" json:"sessions"`
	HourlyRate int     `json:"hourlyRate"`

	IsMentorCertified bool `gorm:"default:false" json:"isMentorCertified"`
	MentorExamScore   int  `json:"mentorExamScore"`

	// TelegramChatID, when linked, is where offline notifications go.
	TelegramChatID int64 `gorm:"index" json:"-"`

	IsOnline   bool      `gorm:"default:false" json:"isOnline"`
	LastActive time.Time `json:"lastActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BeforeCreate is a GORM hook that assigns a UUID when the ID is not set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
