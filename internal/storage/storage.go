package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"mentorhub/backend/internal/models"
)

// Storage is the persistence surface consumed by the handlers, the chat hub
// and the scheduler.
type Storage interface {
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	GetUsersByRoles(roles []string) ([]models.User, error)
	FindMentors(search, expertise, sortBy string) ([]models.User, error)
	SetUserOnlineStatus(userID string, online bool, lastActive time.Time) error
	CountUsers() (int64, error)
	CountUsersByRole(role string) (int64, error)

	SaveMessage(msg *models.ChatMessage) error
	GetChatHistory(chatID string) ([]models.ChatMessage, error)
	GetMessagesForUser(userID string) ([]models.ChatMessage, error)
	MarkChatRead(chatID, readerID string) error
	DeleteMessagesBefore(cutoff time.Time) (int64, error)

	SaveMeeting(meeting *models.Meeting) error
	GetMeetingsForUser(userID string) ([]models.Meeting, error)
	MeetingsNeedingReminder(from, to time.Time) ([]models.Meeting, error)
	MarkReminderSent(meetingID uint) error
	CountMeetingsByStatus(status string) (int64, error)

	SaveTodo(todo *models.Todo) error
	GetTodos(userID string) ([]models.Todo, error)
	UpdateTodo(todo *models.Todo) error
	DeleteTodo(id uint, userID string) error
	GetOverdueTodos(userID string, now time.Time) ([]models.Todo, error)

	SaveResume(resume *models.Resume) error
	GetResumes(userID string) ([]models.Resume, error)
	GetResumeByID(id uint, userID string) (*models.Resume, error)

	SaveStudySession(session *models.StudySession) error
	GetStudySessionsSince(userID string, since time.Time) ([]models.StudySession, error)
	HasSessionBetween(userID string, from, to time.Time) (bool, error)
	ResetStaleStreaks(from, to time.Time) (int64, error)

	GetCachedDailyQuote(day string) (string, error)
	CacheDailyQuote(day, quote string) error
}

// Service implements Storage on PostgreSQL (entities) and Redis (hot-path
// caches: online flags, daily quote).
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateUser inserts a new user; the BeforeCreate hook assigns the ID.
func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail returns nil without an error when no account exists, so
// login and registration can tell "unknown" from "broken".
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) GetUsersByRoles(roles []string) ([]models.User, error) {
	var users []models.User
	err := s.DB.Where("role IN ?", roles).Find(&users).Error
	return users, err
}

// FindMentors searches certified mentors. search matches name, bio and
// skills; expertise filters on a single skill; sortBy is one of rating,
// price, experience.
func (s *Service) FindMentors(search, expertise, sortBy string) ([]models.User, error) {
	q := s.DB.Where("role = ? AND is_mentor_certified = ?", models.RoleMentor, true)

	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("name ILIKE ? OR bio ILIKE ? OR EXISTS (SELECT 1 FROM unnest(skills) skill WHERE skill ILIKE ?)",
			pattern, pattern, pattern)
	}
	if expertise != "" {
		q = q.Where("? = ANY(skills)", expertise)
	}

	switch sortBy {
	case "price":
		q = q.Order("hourly_rate asc")
	case "experience":
		q = q.Order("sessions desc")
	default:
		q = q.Order("rating desc")
	}

	var mentors []models.User
	if err := q.Limit(50).Find(&mentors).Error; err != nil {
		log.Printf("ERROR: mentor search failed: %v", err)
		return nil, err
	}
	return mentors, nil
}

// SetUserOnlineStatus records the online flag and last-active time in
// PostgreSQL and mirrors the flag into Redis so presence lookups from other
// services stay off the database.
func (s *Service) SetUserOnlineStatus(userID string, online bool, lastActive time.Time) error {
	err := s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_online":   online,
			"last_active": lastActive,
		}).Error
	if err != nil {
		return err
	}

	if s.Redis != nil {
		key := "online:" + userID
		if online {
			if err := s.Redis.Set(s.Ctx, key, lastActive.Unix(), 24*time.Hour).Err(); err != nil {
				log.Printf("WARNING: failed to cache online flag for %s: %v", userID, err)
			}
		} else if err := s.Redis.Del(s.Ctx, key).Err(); err != nil {
			log.Printf("WARNING: failed to drop online flag for %s: %v", userID, err)
		}
	}
	return nil
}

func (s *Service) CountUsers() (int64, error) {
	var n int64
	err := s.DB.Model(&models.User{}).Count(&n).Error
	return n, err
}

func (s *Service) CountUsersByRole(role string) (int64, error) {
	var n int64
	err := s.DB.Model(&models.User{}).Where("role = ?", role).Count(&n).Error
	return n, err
}

// GetCachedDailyQuote returns the cached quote for a day key, or "" when the
// cache is cold.
func (s *Service) GetCachedDailyQuote(day string) (string, error) {
	if s.Redis == nil {
		return "", nil
	}
	quote, err := s.Redis.Get(s.Ctx, "quote:"+day).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return quote, err
}

func (s *Service) CacheDailyQuote(day, quote string) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Set(s.Ctx, "quote:"+day, quote, 48*time.Hour).Err()
}
