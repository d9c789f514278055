package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadSize caps chat attachments and avatars.
const maxUploadSize = 10 << 20

// UploadFile stores an uploaded file and returns the /uploads URL that
// image and file chat messages carry as content.
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File too large"})
		return
	}

	// Server-generated name; only the extension survives from the client.
	name := fmt.Sprintf("%d-%s%s",
		time.Now().UnixMilli(), uuid.New().String()[:8], filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(h.Cfg.UploadDir, name)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename":     name,
		"originalName": file.Filename,
		"path":         "/uploads/" + name,
		"size":         file.Size,
	})
}
