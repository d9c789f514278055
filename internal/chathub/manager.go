package chathub

import (
	"log"
	"strings"
	"sync"
	"time"

	"mentorhub/backend/internal/models"
)

// Persistence is the durable store the hub and relay write through. The
// storage service implements it; tests substitute a mock.
type Persistence interface {
	// SaveMessage stores a chat message and fills in its ID and timestamps.
	SaveMessage(msg *models.ChatMessage) error
	// SetUserOnlineStatus records the online flag and last-active time for
	// a user. Callers treat failures as non-fatal.
	SetUserOnlineStatus(userID string, online bool, lastActive time.Time) error
}

// IdentifyRequest asks the hub to bind a user identity to a connection.
type IdentifyRequest struct {
	Client Client
	UserID string
}

// ManagerService owns the connection lifecycle. Every open connection is
// tracked here from upgrade to close; identify and disconnect events mutate
// the presence registry and trigger the onlineUsers broadcast.
//
// Lifecycle transitions are serialized by the single Run goroutine, so a
// disconnect following an identify on the same connection always observes
// the identify's effects.
type ManagerService struct {
	RegisterCh   chan Client
	UnregisterCh chan Client
	IdentifyCh   chan IdentifyRequest

	Registry    *PresenceRegistry
	Persistence Persistence

	mu    sync.RWMutex
	conns map[string]Client
}

// NewManagerService creates a hub around the given persistence collaborator.
func NewManagerService(p Persistence) *ManagerService {
	return &ManagerService{
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		IdentifyCh:   make(chan IdentifyRequest),
		Registry:     NewPresenceRegistry(),
		Persistence:  p,
		conns:        make(map[string]Client),
	}
}

// Run is the hub's main dispatcher. It must run in its own goroutine.
func (m *ManagerService) Run() {
	for {
		select {
		case client := <-m.RegisterCh:
			m.handleOpen(client)
		case req := <-m.IdentifyCh:
			m.handleIdentify(req)
		case client := <-m.UnregisterCh:
			m.handleClose(client)
		}
	}
}

// handleOpen tracks a freshly upgraded connection. It stays unidentified
// until the client announces who it is.
func (m *ManagerService) handleOpen(client Client) {
	m.mu.Lock()
	m.conns[client.GetConnID()] = client
	m.mu.Unlock()
}

// handleIdentify binds the asserted user ID to the connection, registers it
// in the presence registry and broadcasts the updated online set. A second
// identify on the same connection re-registers under the new user so no
// stale presence entry survives.
func (m *ManagerService) handleIdentify(req IdentifyRequest) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		// Rejected identify: the connection stays unidentified and only the
		// originating connection hears about it.
		m.pushTo(req.Client, models.NewEvent(models.EventMessageError,
			models.ErrorPayload{Error: "identify requires a non-empty user id"}))
		return
	}

	connID := req.Client.GetConnID()
	if prev := req.Client.GetUserID(); prev != "" && prev != userID {
		if _, wentOffline := m.Registry.Unregister(connID); wentOffline {
			m.persistStatus(prev, false)
		}
	}

	req.Client.SetUserID(userID)
	if first := m.Registry.Register(userID, connID); first {
		m.persistStatus(userID, true)
	}
	m.broadcastPresence()
}

// handleClose removes a connection. Unidentified connections leave no trace;
// identified ones are unregistered and the online set is re-broadcast.
func (m *ManagerService) handleClose(client Client) {
	connID := client.GetConnID()

	m.mu.Lock()
	_, tracked := m.conns[connID]
	if tracked {
		delete(m.conns, connID)
	}
	m.mu.Unlock()
	if !tracked {
		return
	}

	userID, wentOffline := m.Registry.Unregister(connID)
	client.Close()

	if userID == "" {
		return
	}
	if wentOffline {
		m.persistStatus(userID, false)
	}
	m.broadcastPresence()
}

// broadcastPresence pushes the current online-user set to every open
// connection, identified or not.
func (m *ManagerService) broadcastPresence() {
	ev := models.NewEvent(models.EventOnlineUsers, m.Registry.OnlineUserIDs())

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, client := range m.conns {
		m.pushTo(client, ev)
	}
}

// Push delivers an event to one live connection. It reports false when the
// connection is gone or its send buffer is full; either way the failure is
// the caller's to ignore, a slow consumer must not fail the operation that
// produced the event.
func (m *ManagerService) Push(connID string, ev models.Event) bool {
	m.mu.RLock()
	client, ok := m.conns[connID]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	return m.pushTo(client, ev)
}

func (m *ManagerService) pushTo(client Client, ev models.Event) bool {
	select {
	case client.GetSendChannel() <- ev:
		return true
	default:
		// A full buffer means the write pump stopped draining. Drop the
		// whole connection, not just the event; the unregister rides its own
		// goroutine because pushTo also runs inside the run loop.
		log.Printf("send buffer full on connection %s, dropping connection", client.GetConnID())
		go func() { m.UnregisterCh <- client }()
		return false
	}
}

// persistStatus records the online flag in the background. Presence
// correctness lives in the registry; a failed status write is logged and
// never blocks or reverts the in-memory transition.
func (m *ManagerService) persistStatus(userID string, online bool) {
	go func() {
		if err := m.Persistence.SetUserOnlineStatus(userID, online, time.Now()); err != nil {
			log.Printf("failed to persist online=%v for user %s: %v", online, userID, err)
		}
	}()
}
