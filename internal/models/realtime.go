package models

import "encoding/json"

// Socket event names. Inbound events come from the browser client,
// outbound events are pushed by the hub and the relay.
const (
	// Inbound
	EventUserOnline  = "userOnline"  // payload: userID string
	EventSendMessage = "sendMessage" // payload: SendMessageRequest

	// Outbound
	EventOnlineUsers  = "onlineUsers"  // payload: []string of online user IDs
	EventNewMessage   = "newMessage"   // payload: ChatMessage, pushed to the receiver
	EventMessageSent  = "messageSent"  // payload: MessageAck, echoed to the sender
	EventMessageError = "messageError" // payload: ErrorPayload
)

// Event is the JSON envelope exchanged over the websocket.
type Event struct {
	Name    string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEvent marshals payload into an Event envelope. Marshal failures are a
// programming error on our own payload types, so they are swallowed into an
// empty payload rather than propagated.
func NewEvent(name string, payload any) Event {
	raw, _ := json.Marshal(payload)
	return Event{Name: name, Payload: raw}
}

// SendMessageRequest is the payload of a sendMessage event and of the REST
// send endpoint.
type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required"`
	Type       string `json:"type"`
}

// MessageAck confirms a persisted message back to the sender. Delivered is
// derived, never stored: true when the receiver had at least one live
// connection at push time.
type MessageAck struct {
	Message   *ChatMessage `json:"message"`
	Delivered bool         `json:"delivered"`
}

// ErrorPayload carries a rejection reason to the originating connection only.
type ErrorPayload struct {
	Error string `json:"error"`
}
