package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorhub/backend/internal/models"
)

// AdminStats returns the dashboard counters.
func (h *Handler) AdminStats(c *gin.Context) {
	totalUsers, err := h.Storage.CountUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	totalMentors, err := h.Storage.CountUsersByRole(models.RoleMentor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	totalSessions, err := h.Storage.CountMeetingsByStatus(models.MeetingStatusCompleted)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":    totalUsers,
		"totalMentors":  totalMentors,
		"totalSessions": totalSessions,
		"onlineUsers":   len(h.Hub.Registry.OnlineUserIDs()),
	})
}
