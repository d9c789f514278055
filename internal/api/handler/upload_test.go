package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"mentorhub/backend/internal/api/handler"
	"mentorhub/backend/internal/config"
)

func uploadRouter(dir string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &handler.Handler{Cfg: &config.Config{UploadDir: dir}}
	r := gin.New()
	r.POST("/api/upload", h.UploadFile)
	return r
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = fw.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadFileStoresAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	r := uploadRouter(dir)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "avatar.png", []byte("png-bytes")))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Filename     string `json:"filename"`
		OriginalName string `json:"originalName"`
		Path         string `json:"path"`
		Size         int64  `json:"size"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "avatar.png", resp.OriginalName)
	assert.Equal(t, "/uploads/"+resp.Filename, resp.Path)
	assert.Equal(t, ".png", filepath.Ext(resp.Filename))
	assert.EqualValues(t, len("png-bytes"), resp.Size)

	// The stored name is server-generated, never the client's.
	assert.NotEqual(t, "avatar.png", resp.Filename)
	saved, err := os.ReadFile(filepath.Join(dir, resp.Filename))
	assert.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), saved)
}

func TestUploadFileRequiresAFile(t *testing.T) {
	r := uploadRouter(t.TempDir())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/upload", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
