package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mentorhub/backend/internal/models"
)

type resumeRequest struct {
	Name     string `json:"name" binding:"required"`
	Template string `json:"template"`
	Document string `json:"document"`
}

func (h *Handler) ListResumes(c *gin.Context) {
	resumes, err := h.Storage.GetResumes(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, resumes)
}

func (h *Handler) CreateResume(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	resume := &models.Resume{
		UserID:   currentUserID(c),
		Name:     req.Name,
		Template: req.Template,
		Document: req.Document,
	}
	if resume.Template == "" {
		resume.Template = "modern"
	}
	if err := h.Storage.SaveResume(resume); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, resume)
}

func (h *Handler) UpdateResume(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid resume id"})
		return
	}
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	resume, err := h.Storage.GetResumeByID(uint(id), currentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Resume not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	resume.Name = req.Name
	if req.Template != "" {
		resume.Template = req.Template
	}
	resume.Document = req.Document
	if err := h.Storage.SaveResume(resume); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, resume)
}
