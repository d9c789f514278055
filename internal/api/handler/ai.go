package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mentorhub/backend/internal/ai"
)

type aiChatRequest struct {
	Message string       `json:"message" binding:"required"`
	History []ai.Message `json:"conversationHistory"`
}

// AIChat forwards a question to the AI mentor assistant.
func (h *Handler) AIChat(c *gin.Context) {
	var req aiChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	response, err := h.Assistant.Chat(c.Request.Context(), req.Message, req.History)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to generate AI response"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": response, "timestamp": time.Now()})
}

var dailyQuotes = []string{
	"Success is not final, failure is not fatal: it is the courage to continue that counts. - Winston Churchill",
	"The only way to do great work is to love what you do. - Steve Jobs",
	"Innovation distinguishes between a leader and a follower. - Steve Jobs",
	"Your work is going to fill a large part of your life, and the only way to be truly satisfied is to do what you believe is great work. - Steve Jobs",
	"The future belongs to those who believe in the beauty of their dreams. - Eleanor Roosevelt",
}

// DailyQuote returns one quote per calendar day, cached in Redis so every
// user sees the same one.
func (h *Handler) DailyQuote(c *gin.Context) {
	day := time.Now().Format("2006-01-02")

	if quote, err := h.Storage.GetCachedDailyQuote(day); err == nil && quote != "" {
		c.JSON(http.StatusOK, gin.H{"quote": quote})
		return
	}

	quote := dailyQuotes[time.Now().YearDay()%len(dailyQuotes)]
	if err := h.Storage.CacheDailyQuote(day, quote); err != nil {
		log.Printf("failed to cache daily quote: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}
