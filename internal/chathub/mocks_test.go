package chathub_test

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"mentorhub/backend/internal/chathub"
	"mentorhub/backend/internal/models"
)

// MockPersistence is a testify double for the chathub.Persistence
// collaborator.
type MockPersistence struct {
	mock.Mock
}

func (m *MockPersistence) SaveMessage(msg *models.ChatMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockPersistence) SetUserOnlineStatus(userID string, online bool, lastActive time.Time) error {
	args := m.Called(userID, online, lastActive)
	return args.Error(0)
}

// MockNotifier records offline-message notifications.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyOfflineMessage(receiverID string, msg *models.ChatMessage) {
	m.Called(receiverID, msg)
}

// mockClient is a plain in-memory Client with a buffered send channel, so
// tests can inspect exactly which events a connection received.
type mockClient struct {
	connID string
	userID string
	send   chan models.Event
	closed bool
}

func newMockClient(connID string) *mockClient {
	return &mockClient{
		connID: connID,
		send:   make(chan models.Event, 16), // buffered to prevent blocking in tests
	}
}

func (c *mockClient) GetConnID() string                   { return c.connID }
func (c *mockClient) GetUserID() string                   { return c.userID }
func (c *mockClient) SetUserID(id string)                 { c.userID = id }
func (c *mockClient) GetSendChannel() chan<- models.Event { return c.send }
func (c *mockClient) Run()                                {}
func (c *mockClient) Close()                              { c.closed = true }

// drain returns every event currently buffered for the client.
func (c *mockClient) drain() []models.Event {
	var events []models.Event
	for {
		select {
		case ev := <-c.send:
			events = append(events, ev)
		default:
			return events
		}
	}
}

// gateClient stalls GetSendChannel on demand, so a test can interleave a
// disconnect between the hub's connection lookup and the channel send.
type gateClient struct {
	*mockClient
	mu   sync.Mutex
	gate chan struct{}
}

// holdSends makes subsequent GetSendChannel calls block until the returned
// release func is called.
func (c *gateClient) holdSends() (release func()) {
	gate := make(chan struct{})
	c.mu.Lock()
	c.gate = gate
	c.mu.Unlock()
	return func() { close(gate) }
}

func (c *gateClient) GetSendChannel() chan<- models.Event {
	c.mu.Lock()
	gate := c.gate
	c.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return c.mockClient.GetSendChannel()
}

// eventsNamed filters a drained slice by event name.
func eventsNamed(events []models.Event, name string) []models.Event {
	var out []models.Event
	for _, ev := range events {
		if ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}

// decodePayload unmarshals an event payload into dst.
func decodePayload(ev models.Event, dst any) error {
	return json.Unmarshal(ev.Payload, dst)
}

// startHub builds a hub around the mock persistence and runs its dispatcher.
func startHub(p chathub.Persistence) *chathub.ManagerService {
	hub := chathub.NewManagerService(p)
	go hub.Run()
	return hub
}

// settle gives the hub's run loop and fire-and-forget goroutines time to
// finish.
func settle() {
	time.Sleep(50 * time.Millisecond)
}
