package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mentorhub/backend/internal/models"
)

type createMeetingRequest struct {
	Title    string    `json:"title" binding:"required"`
	MentorID string    `json:"mentorId" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
	Duration int       `json:"duration" binding:"required"`
	Type     string    `json:"type"`
	Notes    string    `json:"notes"`
	Location string    `json:"location"`
}

// ListMeetings returns the caller's meetings, mentor or student side.
func (h *Handler) ListMeetings(c *gin.Context) {
	meetings, err := h.Storage.GetMeetingsForUser(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, meetings)
}

// CreateMeeting books a session with a mentor. The caller is the student.
func (h *Handler) CreateMeeting(c *gin.Context) {
	var req createMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	meetingType := req.Type
	switch meetingType {
	case models.MeetingTypeVideo, models.MeetingTypeAudio, models.MeetingTypeInPerson:
	default:
		meetingType = models.MeetingTypeVideo
	}

	meeting := &models.Meeting{
		Title:       req.Title,
		MentorID:    req.MentorID,
		StudentID:   currentUserID(c),
		Date:        req.Date,
		Duration:    req.Duration,
		Type:        meetingType,
		Status:      models.MeetingStatusScheduled,
		Notes:       req.Notes,
		Location:    req.Location,
		MeetingLink: "https://meet.mentorhub.dev/" + uuid.New().String()[:8],
	}
	if err := h.Storage.SaveMeeting(meeting); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, meeting)
}
