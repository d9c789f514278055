package chathub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mentorhub/backend/internal/chathub"
	"mentorhub/backend/internal/models"
)

func TestManager_IdentifyBroadcastsPresence(t *testing.T) {
	persistence := new(MockPersistence)
	persistence.On("SetUserOnlineStatus", "u1", true, mock.Anything).Return(nil)
	hub := startHub(persistence)

	clientA := newMockClient("conn-a")
	hub.RegisterCh <- clientA
	hub.IdentifyCh <- chathub.IdentifyRequest{Client: clientA, UserID: "u1"}
	settle()

	assert.Equal(t, []string{"u1"}, hub.Registry.OnlineUserIDs())
	assert.Equal(t, "u1", clientA.GetUserID())

	broadcasts := eventsNamed(clientA.drain(), models.EventOnlineUsers)
	assert.Len(t, broadcasts, 1)
	var online []string
	assert.NoError(t, decodePayload(broadcasts[0], &online))
	assert.Equal(t, []string{"u1"}, online)

	persistence.AssertCalled(t, "SetUserOnlineStatus", "u1", true, mock.Anything)
}

func TestManager_IdentifyEmptyUserIDRejected(t *testing.T) {
	persistence := new(MockPersistence)
	hub := startHub(persistence)

	clientA := newMockClient("conn-a")
	hub.RegisterCh <- clientA
	hub.IdentifyCh <- chathub.IdentifyRequest{Client: clientA, UserID: "   "}
	settle()

	// Connection stays unidentified, no presence mutation, no broadcast.
	assert.Empty(t, hub.Registry.OnlineUserIDs())
	assert.Equal(t, "", clientA.GetUserID())

	events := clientA.drain()
	assert.Empty(t, eventsNamed(events, models.EventOnlineUsers))
	assert.Len(t, eventsNamed(events, models.EventMessageError), 1)
	persistence.AssertNotCalled(t, "SetUserOnlineStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestManager_DisconnectRemovesPresence(t *testing.T) {
	persistence := new(MockPersistence)
	persistence.On("SetUserOnlineStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	hub := startHub(persistence)

	clientA := newMockClient("conn-a")
	watcher := newMockClient("conn-w")
	hub.RegisterCh <- clientA
	hub.RegisterCh <- watcher
	hub.IdentifyCh <- chathub.IdentifyRequest{Client: clientA, UserID: "u1"}
	settle()
	watcher.drain()

	hub.UnregisterCh <- clientA
	settle()

	assert.Empty(t, hub.Registry.OnlineUserIDs())
	assert.True(t, clientA.closed)

	// The surviving connection saw a second broadcast reflecting removal.
	broadcasts := eventsNamed(watcher.drain(), models.EventOnlineUsers)
	assert.Len(t, broadcasts, 1)
	var online []string
	assert.NoError(t, decodePayload(broadcasts[0], &online))
	assert.Empty(t, online)

	persistence.AssertCalled(t, "SetUserOnlineStatus", "u1", false, mock.Anything)
}

func TestManager_UnidentifiedDisconnectLeavesNoTrace(t *testing.T) {
	persistence := new(MockPersistence)
	hub := startHub(persistence)

	clientA := newMockClient("conn-a")
	hub.RegisterCh <- clientA
	hub.UnregisterCh <- clientA
	settle()

	assert.Empty(t, hub.Registry.OnlineUserIDs())
	persistence.AssertNotCalled(t, "SetUserOnlineStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestManager_SecondTabKeepsUserOnline(t *testing.T) {
	persistence := new(MockPersistence)
	persistence.On("SetUserOnlineStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	hub := startHub(persistence)

	tab1 := newMockClient("conn-1")
	tab2 := newMockClient("conn-2")
	hub.RegisterCh <- tab1
	hub.RegisterCh <- tab2
	hub.IdentifyCh <- chathub.IdentifyRequest{Client: tab1, UserID: "u1"}
	hub.IdentifyCh <- chathub.IdentifyRequest{Client: tab2, UserID: "u1"}
	settle()

	hub.UnregisterCh <- tab1
	settle()

	assert.Equal(t, []string{"u1"}, hub.Registry.OnlineUserIDs())

	hub.UnregisterCh <- tab2
	settle()
	assert.Empty(t, hub.Registry.OnlineUserIDs())
}

func TestManager_ReidentifyReplacesBinding(t *testing.T) {
	persistence := new(MockPersistence)
	persistence.On("SetUserOnlineStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	hub := startHub(persistence)

	clientA := newMockClient("conn-a")
	hub.RegisterCh <- clientA
	hub.IdentifyCh <- chathub.IdentifyRequest{Client: clientA, UserID: "u1"}
	hub.IdentifyCh <- chathub.IdentifyRequest{Client: clientA, UserID: "u2"}
	settle()

	// No stale entry for the first identity.
	assert.Equal(t, []string{"u2"}, hub.Registry.OnlineUserIDs())
	persistence.AssertCalled(t, "SetUserOnlineStatus", "u1", false, mock.Anything)
	persistence.AssertCalled(t, "SetUserOnlineStatus", "u2", true, mock.Anything)
}

// A disconnect right after identify must not leave the user in the online
// set, however the status writes interleave.
func TestManager_DisconnectAfterIdentifyRace(t *testing.T) {
	persistence := new(MockPersistence)
	persistence.On("SetUserOnlineStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	hub := startHub(persistence)

	clientA := newMockClient("conn-a")
	hub.RegisterCh <- clientA
	hub.IdentifyCh <- chathub.IdentifyRequest{Client: clientA, UserID: "u1"}
	hub.UnregisterCh <- clientA
	settle()

	assert.Empty(t, hub.Registry.OnlineUserIDs())
	assert.False(t, hub.Registry.IsOnline("u1"))
}

// A push that looked the connection up just before the hub processed its
// disconnect must complete harmlessly: the event lands in the buffer or is
// dropped, it never panics the pushing goroutine.
func TestManager_PushRacingDisconnectDoesNotPanic(t *testing.T) {
	persistence := new(MockPersistence)
	persistence.On("SetUserOnlineStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	hub := startHub(persistence)

	client := &gateClient{mockClient: newMockClient("conn-a")}
	hub.RegisterCh <- client
	hub.IdentifyCh <- chathub.IdentifyRequest{Client: client, UserID: "u1"}
	settle()
	client.drain()

	// Park the push after the hub has resolved the connection but before the
	// channel send, then run the disconnect to completion.
	release := client.holdSends()
	pushed := make(chan struct{})
	go func() {
		hub.Push("conn-a", models.NewEvent(models.EventNewMessage, nil))
		close(pushed)
	}()
	settle()

	hub.UnregisterCh <- client
	settle()
	assert.True(t, client.closed)

	release()
	<-pushed

	assert.False(t, hub.Registry.IsOnline("u1"))
}

// A connection whose send buffer is full is dropped entirely, taking its
// presence entry with it.
func TestManager_SlowConnectionForceUnregistered(t *testing.T) {
	persistence := new(MockPersistence)
	persistence.On("SetUserOnlineStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	hub := startHub(persistence)

	slow := newMockClient("conn-slow")
	hub.RegisterCh <- slow
	hub.IdentifyCh <- chathub.IdentifyRequest{Client: slow, UserID: "u1"}
	settle()

	// Stuff the buffer so the next broadcast cannot be delivered.
	for len(slow.send) < cap(slow.send) {
		slow.send <- models.NewEvent(models.EventOnlineUsers, nil)
	}

	healthy := newMockClient("conn-b")
	hub.RegisterCh <- healthy
	hub.IdentifyCh <- chathub.IdentifyRequest{Client: healthy, UserID: "u2"}
	settle()

	assert.True(t, slow.closed)
	assert.False(t, hub.Registry.IsOnline("u1"))
	assert.Equal(t, []string{"u2"}, hub.Registry.OnlineUserIDs())
}

// Status persistence failures are logged, not propagated: the in-memory
// transition and the broadcast must complete regardless.
func TestManager_StatusPersistenceFailureIsNonFatal(t *testing.T) {
	persistence := new(MockPersistence)
	persistence.On("SetUserOnlineStatus", mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)
	hub := startHub(persistence)

	clientA := newMockClient("conn-a")
	hub.RegisterCh <- clientA
	hub.IdentifyCh <- chathub.IdentifyRequest{Client: clientA, UserID: "u1"}
	settle()

	assert.Equal(t, []string{"u1"}, hub.Registry.OnlineUserIDs())
	assert.Len(t, eventsNamed(clientA.drain(), models.EventOnlineUsers), 1)
}
