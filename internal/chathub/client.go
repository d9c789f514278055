package chathub

import "mentorhub/backend/internal/models"

// Client is the interface for one live connection managed by the hub. It
// abstracts the underlying transport so the hub and relay can push events
// without knowing about websockets.
type Client interface {
	// GetConnID returns the opaque, unique identifier of this connection.
	GetConnID() string

	// GetUserID returns the identity bound to the connection, or "" while
	// the connection is still unidentified.
	GetUserID() string
	// SetUserID binds an identity to the connection. Only the hub's run
	// loop calls this.
	SetUserID(string)

	// GetSendChannel returns the channel the hub and relay push outbound
	// events into. It is drained by the client's write pump.
	GetSendChannel() chan<- models.Event

	// Run starts the client's read and write pumps.
	Run()
	// Close tells the client to shut down its pumps. It must be safe to call
	// while other goroutines are still pushing into the send channel, so
	// implementations must not close that channel.
	Close()
}
