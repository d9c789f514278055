// Package chathub contains the real-time core of the backend: the presence
// registry, the connection lifecycle hub, and the message relay that routes
// persisted messages to live connections.
package chathub

import "sync"

// PresenceRegistry is the authoritative mapping of online users to their
// live connections. A user may hold several connections at once (two browser
// tabs, a phone); the user counts as online while at least one remains.
//
// The registry is mutated by the hub's run loop and read by the relay and by
// HTTP handler goroutines, so every operation takes the mutex.
type PresenceRegistry struct {
	mu     sync.RWMutex
	byUser map[string]map[string]struct{}
	byConn map[string]string
}

// NewPresenceRegistry returns an empty registry.
func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		byUser: make(map[string]map[string]struct{}),
		byConn: make(map[string]string),
	}
}

// Register adds connID to userID's connection set, creating the entry when
// the user was offline. Registering the same pair twice is a no-op.
// It returns true when this was the user's first connection.
func (r *PresenceRegistry) Register(userID, connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns, ok := r.byUser[userID]
	if !ok {
		conns = make(map[string]struct{})
		r.byUser[userID] = conns
	}
	conns[connID] = struct{}{}
	r.byConn[connID] = userID
	return !ok
}

// Unregister removes connID from whichever user owns it. When the user's set
// becomes empty the whole entry is deleted. An unknown connID is a no-op,
// not an error: disconnect handlers may race and fire twice.
// It returns the owning userID and whether the user went offline.
func (r *PresenceRegistry) Unregister(connID string) (userID string, wentOffline bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byConn[connID]
	if !ok {
		return "", false
	}
	delete(r.byConn, connID)

	conns := r.byUser[userID]
	delete(conns, connID)
	if len(conns) == 0 {
		delete(r.byUser, userID)
		return userID, true
	}
	return userID, false
}

// IsOnline reports whether userID has at least one registered connection.
func (r *PresenceRegistry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[userID]) > 0
}

// ConnectionsFor returns a snapshot of userID's live connection IDs.
// It returns an empty slice for unknown users, never an error.
func (r *PresenceRegistry) ConnectionsFor(userID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]string, 0, len(r.byUser[userID]))
	for connID := range r.byUser[userID] {
		conns = append(conns, connID)
	}
	return conns
}

// OnlineUserIDs returns a snapshot of every user ID with a live connection.
func (r *PresenceRegistry) OnlineUserIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]string, 0, len(r.byUser))
	for userID := range r.byUser {
		users = append(users, userID)
	}
	return users
}
