package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorhub/backend/internal/models"
)

// ListMentors searches the certified mentor directory.
func (h *Handler) ListMentors(c *gin.Context) {
	mentors, err := h.Storage.FindMentors(
		c.Query("search"),
		c.Query("expertise"),
		c.Query("sortBy"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, mentors)
}

type examSubmission struct {
	Score int `json:"score" binding:"required"`
}

// certification threshold and reward, from the mentor exam rules.
const (
	mentorExamPassScore = 70
	mentorCertXPReward  = 500
)

// SubmitMentorExam records an exam attempt; a passing score certifies the
// user as a mentor.
func (h *Handler) SubmitMentorExam(c *gin.Context) {
	var req examSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.Storage.GetUserByID(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	user.MentorExamScore = req.Score
	passed := req.Score >= mentorExamPassScore
	if passed && !user.IsMentorCertified {
		user.IsMentorCertified = true
		user.Role = models.RoleMentor
		user.Badges = append(user.Badges, "Certified Mentor")
		user.XP += mentorCertXPReward
	}

	if err := h.Storage.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"passed":    passed,
		"score":     req.Score,
		"certified": user.IsMentorCertified,
	})
}
