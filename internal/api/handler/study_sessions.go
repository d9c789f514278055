package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mentorhub/backend/internal/models"
)

type createSessionRequest struct {
	// Duration is in seconds.
	Duration int    `json:"duration" binding:"required"`
	Task     string `json:"task"`
}

// CreateStudySession logs a study block, awards XP (one point per minute)
// and maintains the daily streak: studying yesterday (or starting fresh)
// extends it, a gap restarts it at one.
func (h *Handler) CreateStudySession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID := currentUserID(c)
	session := &models.StudySession{
		UserID:   userID,
		Duration: req.Duration,
		Task:     req.Task,
		Date:     time.Now(),
	}
	if err := h.Storage.SaveStudySession(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	user, err := h.Storage.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	user.XP += req.Duration / 60

	todayStart := time.Now().Truncate(24 * time.Hour)
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	studiedYesterday, err := h.Storage.HasSessionBetween(userID, yesterdayStart, todayStart)
	if err != nil {
		log.Printf("streak check failed for %s: %v", userID, err)
	}
	if studiedYesterday || user.Streak == 0 {
		user.Streak++
	} else {
		user.Streak = 1
	}

	if err := h.Storage.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, session)
}

// StudyAnalytics buckets the user's recent sessions per day.
func (h *Handler) StudyAnalytics(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}

	since := time.Now().AddDate(0, 0, -days)
	sessions, err := h.Storage.GetStudySessionsSince(currentUserID(c), since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	type dayStats struct {
		TotalTime int `json:"totalTime"`
		Sessions  int `json:"sessions"`
	}
	analytics := make(map[string]*dayStats)
	for _, s := range sessions {
		day := s.Date.Format("2006-01-02")
		if analytics[day] == nil {
			analytics[day] = &dayStats{}
		}
		analytics[day].TotalTime += s.Duration
		analytics[day].Sessions++
	}
	c.JSON(http.StatusOK, analytics)
}
