package handler

import (
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"mentorhub/backend/internal/chathub"
	"mentorhub/backend/internal/models"
)

// chatSummary is one row in the conversation list.
type chatSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Avatar      string    `json:"avatar"`
	IsOnline    bool      `json:"isOnline"`
	LastMessage string    `json:"lastMessage"`
	Timestamp   time.Time `json:"timestamp"`
	Unread      int       `json:"unread"`
}

// ListChats folds the user's messages into one summary per chat partner,
// most recent conversation first.
func (h *Handler) ListChats(c *gin.Context) {
	userID := currentUserID(c)

	messages, err := h.Storage.GetMessagesForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	partnerOf := func(m models.ChatMessage) string {
		if m.SenderID == userID {
			return m.ReceiverID
		}
		return m.SenderID
	}
	grouped := lo.GroupBy(messages, partnerOf)

	summaries := make([]chatSummary, 0, len(grouped))
	for partnerID, msgs := range grouped {
		// Messages come newest first, so the head is the latest.
		latest := msgs[0]
		unread := lo.CountBy(msgs, func(m models.ChatMessage) bool {
			return m.ReceiverID == userID && !m.IsRead
		})

		summary := chatSummary{
			ID:          partnerID,
			LastMessage: latest.Content,
			Timestamp:   latest.CreatedAt,
			Unread:      unread,
			IsOnline:    h.Hub.Registry.IsOnline(partnerID),
		}
		if partner, err := h.Storage.GetUserByID(partnerID); err == nil {
			summary.Name = partner.Name
			summary.Avatar = partner.Avatar
		}
		summaries = append(summaries, summary)
	}

	// Newest conversation on top.
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Timestamp.After(summaries[j].Timestamp)
	})
	c.JSON(http.StatusOK, summaries)
}

// GetChatHistory returns the full conversation with one partner and marks it
// read for the caller.
func (h *Handler) GetChatHistory(c *gin.Context) {
	userID := currentUserID(c)
	partnerID := c.Param("partnerId")

	chatID := models.ChatIDFor(userID, partnerID)
	history, err := h.Storage.GetChatHistory(chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if err := h.Storage.MarkChatRead(chatID, userID); err != nil {
		log.Printf("failed to mark chat %s read: %v", chatID, err)
	}
	c.JSON(http.StatusOK, history)
}

// SendMessage is the REST flavour of sendMessage. It rides the same relay as
// the socket path, so the receiver's open tabs see the message immediately
// and ordering matches the store.
func (h *Handler) SendMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	msg, delivered, err := h.Relay.SendAs(currentUserID(c), "", req)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, models.MessageAck{Message: msg, Delivered: delivered})
	case errors.Is(err, chathub.ErrEmptyContent),
		errors.Is(err, chathub.ErrInvalidMessageType),
		errors.Is(err, chathub.ErrMissingReceiver),
		errors.Is(err, chathub.ErrUnidentifiedSender):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send message"})
	}
}
