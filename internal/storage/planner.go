package storage

import (
	"log"
	"time"

	"mentorhub/backend/internal/models"
)

// SaveMeeting persists a new or updated meeting.
func (s *Service) SaveMeeting(meeting *models.Meeting) error {
	return s.DB.Save(meeting).Error
}

// GetMeetingsForUser returns meetings where the user is mentor or student,
// soonest first.
func (s *Service) GetMeetingsForUser(userID string) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := s.DB.Where("mentor_id = ? OR student_id = ?", userID, userID).
		Order("date asc").
		Find(&meetings).Error
	if err != nil {
		log.Printf("ERROR: Failed to get meetings for user %s: %v", userID, err)
		return nil, err
	}
	return meetings, nil
}

// MeetingsNeedingReminder returns scheduled meetings starting inside
// [from, to] whose reminder has not gone out yet.
func (s *Service) MeetingsNeedingReminder(from, to time.Time) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := s.DB.Where("date >= ? AND date <= ?", from, to).
		Where("status = ? AND reminder_sent = ?", models.MeetingStatusScheduled, false).
		Find(&meetings).Error
	return meetings, err
}

func (s *Service) MarkReminderSent(meetingID uint) error {
	return s.DB.Model(&models.Meeting{}).
		Where("id = ?", meetingID).
		Update("reminder_sent", true).Error
}

func (s *Service) CountMeetingsByStatus(status string) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Meeting{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (s *Service) SaveTodo(todo *models.Todo) error {
	return s.DB.Create(todo).Error
}

func (s *Service) GetTodos(userID string) ([]models.Todo, error) {
	var todos []models.Todo
	err := s.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&todos).Error
	return todos, err
}

func (s *Service) UpdateTodo(todo *models.Todo) error {
	return s.DB.Save(todo).Error
}

// DeleteTodo removes a todo, scoped to its owner so one user cannot delete
// another's entries.
func (s *Service) DeleteTodo(id uint, userID string) error {
	result := s.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Todo{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetOverdueTodos returns the user's incomplete todos whose due date has
// passed.
func (s *Service) GetOverdueTodos(userID string, now time.Time) ([]models.Todo, error) {
	var todos []models.Todo
	err := s.DB.Where("user_id = ? AND completed = ? AND due_date IS NOT NULL AND due_date <= ?",
		userID, false, now).
		Find(&todos).Error
	return todos, err
}

func (s *Service) SaveResume(resume *models.Resume) error {
	return s.DB.Save(resume).Error
}

func (s *Service) GetResumes(userID string) ([]models.Resume, error) {
	var resumes []models.Resume
	err := s.DB.Where("user_id = ?", userID).Order("updated_at desc").Find(&resumes).Error
	return resumes, err
}

func (s *Service) GetResumeByID(id uint, userID string) (*models.Resume, error) {
	var resume models.Resume
	err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&resume).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (s *Service) SaveStudySession(session *models.StudySession) error {
	return s.DB.Create(session).Error
}

func (s *Service) GetStudySessionsSince(userID string, since time.Time) ([]models.StudySession, error) {
	var sessions []models.StudySession
	err := s.DB.Where("user_id = ? AND date >= ?", userID, since).Find(&sessions).Error
	return sessions, err
}

// HasSessionBetween reports whether the user logged any study session in
// [from, to). Used by the streak rules.
func (s *Service) HasSessionBetween(userID string, from, to time.Time) (bool, error) {
	var n int64
	err := s.DB.Model(&models.StudySession{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Count(&n).Error
	return n > 0, err
}

// ResetStaleStreaks zeroes the streak of every user who logged no study
// session in [from, to). Returns how many users were reset.
func (s *Service) ResetStaleStreaks(from, to time.Time) (int64, error) {
	result := s.DB.Model(&models.User{}).
		Where("streak > 0").
		Where("id NOT IN (?)", s.DB.Model(&models.StudySession{}).
			Select("user_id").
			Where("date >= ? AND date < ?", from, to)).
		Update("streak", 0)
	return result.RowsAffected, result.Error
}
