package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mentorhub/backend/internal/models"
	"mentorhub/backend/internal/storage"
)

type createTodoRequest struct {
	Text     string     `json:"text" binding:"required"`
	DueDate  *time.Time `json:"dueDate"`
	Priority string     `json:"priority"`
}

type updateTodoRequest struct {
	Text      *string    `json:"text"`
	Completed *bool      `json:"completed"`
	DueDate   *time.Time `json:"dueDate"`
	Priority  *string    `json:"priority"`
}

func (h *Handler) ListTodos(c *gin.Context) {
	todos, err := h.Storage.GetTodos(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, todos)
}

func (h *Handler) CreateTodo(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	priority := req.Priority
	switch priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		priority = models.PriorityMedium
	}

	todo := &models.Todo{
		UserID:   currentUserID(c),
		Text:     req.Text,
		DueDate:  req.DueDate,
		Priority: priority,
	}
	if err := h.Storage.SaveTodo(todo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, todo)
}

func (h *Handler) UpdateTodo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid todo id"})
		return
	}
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID := currentUserID(c)
	todos, err := h.Storage.GetTodos(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	var todo *models.Todo
	for i := range todos {
		if todos[i].ID == uint(id) {
			todo = &todos[i]
			break
		}
	}
	if todo == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Todo not found"})
		return
	}

	if req.Text != nil {
		todo.Text = *req.Text
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}
	if req.DueDate != nil {
		todo.DueDate = req.DueDate
	}
	if req.Priority != nil {
		todo.Priority = *req.Priority
	}

	if err := h.Storage.UpdateTodo(todo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid todo id"})
		return
	}
	err = h.Storage.DeleteTodo(uint(id), currentUserID(c))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Todo not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully"})
}
