package chathub

import (
	"errors"
	"log"
	"strings"

	"mentorhub/backend/internal/models"
)

// Validation failures surfaced to the sending connection only.
var (
	ErrUnidentifiedSender = errors.New("sender connection is not identified")
	ErrEmptyContent       = errors.New("message content must not be empty")
	ErrInvalidMessageType = errors.New("unknown message type")
	ErrMissingReceiver    = errors.New("receiver id must not be empty")
)

// OfflineNotifier is pinged when a message lands for a user with no live
// connection, so an out-of-band channel can nudge them. Failures are the
// notifier's problem; the relay never waits on it.
type OfflineNotifier interface {
	NotifyOfflineMessage(receiverID string, msg *models.ChatMessage)
}

// RelayService routes chat messages: persist first, then push to whoever is
// connected. Both the websocket handler and the REST send endpoint go
// through here, which is what keeps per-chat ordering equal to the store's
// write order.
type RelayService struct {
	Hub         *ManagerService
	Persistence Persistence
	Notifier    OfflineNotifier
}

// NewRelayService creates a relay bound to the hub's registry and the
// persistence collaborator. The offline notifier is optional.
func NewRelayService(hub *ManagerService, p Persistence) *RelayService {
	return &RelayService{Hub: hub, Persistence: p}
}

// Send relays a message from an identified connection. See SendAs.
func (r *RelayService) Send(sender Client, req models.SendMessageRequest) (*models.ChatMessage, bool, error) {
	return r.SendAs(sender.GetUserID(), sender.GetConnID(), req)
}

// SendAs relays a message on behalf of senderID. senderConnID names the
// originating connection and is excluded from the sender-side echo; the REST
// endpoint passes "" so every socket tab of the sender gets the echo.
//
// The message is persisted before any push. If the store rejects it the
// whole send fails with zero transport activity, so no message is ever
// delivered but unrecorded. Delivery itself is best-effort: the returned
// delivered flag only says whether the receiver had a live connection when
// the pushes went out.
func (r *RelayService) SendAs(senderID, senderConnID string, req models.SendMessageRequest) (*models.ChatMessage, bool, error) {
	if senderID == "" {
		return nil, false, ErrUnidentifiedSender
	}
	if strings.TrimSpace(req.ReceiverID) == "" {
		return nil, false, ErrMissingReceiver
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, false, ErrEmptyContent
	}
	msgType := req.Type
	if msgType == "" {
		msgType = models.MessageTypeText
	}
	if !models.ValidMessageType(msgType) {
		return nil, false, ErrInvalidMessageType
	}

	msg := &models.ChatMessage{
		ChatID:     models.ChatIDFor(senderID, req.ReceiverID),
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
		Type:       msgType,
	}
	if err := r.Persistence.SaveMessage(msg); err != nil {
		return nil, false, err
	}

	// Connections are snapshotted only after the write landed: a connection
	// closed mid-persist is already out of the registry and gets skipped.
	delivered := r.deliver(msg)
	r.echo(senderID, senderConnID, msg, delivered)

	if !delivered && r.Notifier != nil {
		go r.Notifier.NotifyOfflineMessage(req.ReceiverID, msg)
	}
	return msg, delivered, nil
}

// deliver pushes the persisted message to every live connection of the
// receiver. An unknown or offline receiver yields zero connections, which is
// a valid no-op, not an error.
func (r *RelayService) deliver(msg *models.ChatMessage) bool {
	conns := r.Hub.Registry.ConnectionsFor(msg.ReceiverID)
	ev := models.NewEvent(models.EventNewMessage, msg)
	for _, connID := range conns {
		if !r.Hub.Push(connID, ev) {
			log.Printf("newMessage push to connection %s failed", connID)
		}
	}
	return len(conns) > 0
}

// echo acknowledges the persisted message to the sender's other connections
// so a second open tab shows the sent message too.
func (r *RelayService) echo(senderID, senderConnID string, msg *models.ChatMessage, delivered bool) {
	ev := models.NewEvent(models.EventMessageSent, models.MessageAck{Message: msg, Delivered: delivered})
	for _, connID := range r.Hub.Registry.ConnectionsFor(senderID) {
		if connID == senderConnID {
			continue
		}
		r.Hub.Push(connID, ev)
	}
}
