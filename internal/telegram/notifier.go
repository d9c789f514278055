// Package telegram pings users through the Telegram Bot API when they are
// away from the site.
package telegram

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mentorhub/backend/internal/models"
)

// UserDirectory resolves user IDs to profiles with Telegram bindings.
type UserDirectory interface {
	GetUserByID(id string) (*models.User, error)
}

// Notifier sends one-way notifications. It satisfies chathub.OfflineNotifier.
type Notifier struct {
	BotAPI  *tgbotapi.BotAPI
	Users   UserDirectory
	SiteURL string
}

// NewNotifier authorizes the bot with the given token.
func NewNotifier(token string, users UserDirectory, siteURL string) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("Authorized on Telegram account %s", bot.Self.UserName)

	return &Notifier{BotAPI: bot, Users: users, SiteURL: siteURL}, nil
}

func (n *Notifier) sendTo(user *models.User, text string) {
	if user.TelegramChatID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(user.TelegramChatID, text)
	if _, err := n.BotAPI.Send(msg); err != nil {
		log.Printf("Failed to send Telegram notification to user %s: %v", user.ID, err)
	}
}

// NotifyOfflineMessage tells an offline receiver that a chat message is
// waiting for them.
func (n *Notifier) NotifyOfflineMessage(receiverID string, chatMsg *models.ChatMessage) {
	receiver, err := n.Users.GetUserByID(receiverID)
	if err != nil {
		log.Printf("Cannot notify user %s: %v", receiverID, err)
		return
	}

	senderName := "Someone"
	if sender, err := n.Users.GetUserByID(chatMsg.SenderID); err == nil {
		senderName = sender.Name
	}

	preview := chatMsg.Content
	if chatMsg.Type != models.MessageTypeText {
		preview = "[" + chatMsg.Type + "]"
	}
	if len(preview) > 120 {
		preview = preview[:117] + "..."
	}

	n.sendTo(receiver, fmt.Sprintf("New message from %s:\n%s\n\nReply at %s/messages",
		senderName, preview, n.SiteURL))
}

// NotifyMeetingReminder pings a participant shortly before a meeting starts.
func (n *Notifier) NotifyMeetingReminder(userID string, meeting *models.Meeting) {
	user, err := n.Users.GetUserByID(userID)
	if err != nil {
		log.Printf("Cannot notify user %s: %v", userID, err)
		return
	}
	n.sendTo(user, fmt.Sprintf("Reminder: \"%s\" starts at %s.",
		meeting.Title, meeting.Date.Format("15:04")))
}
