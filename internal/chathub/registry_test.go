package chathub_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"mentorhub/backend/internal/chathub"
)

func TestRegistry_RegisterUnregister(t *testing.T) {
	r := chathub.NewPresenceRegistry()

	assert.False(t, r.IsOnline("u1"))

	first := r.Register("u1", "c1")
	assert.True(t, first)
	assert.True(t, r.IsOnline("u1"))

	// Second tab: user stays online, not a "first" registration.
	first = r.Register("u1", "c2")
	assert.False(t, first)
	assert.ElementsMatch(t, []string{"c1", "c2"}, r.ConnectionsFor("u1"))

	userID, wentOffline := r.Unregister("c1")
	assert.Equal(t, "u1", userID)
	assert.False(t, wentOffline)
	assert.True(t, r.IsOnline("u1"))

	userID, wentOffline = r.Unregister("c2")
	assert.Equal(t, "u1", userID)
	assert.True(t, wentOffline)
	assert.False(t, r.IsOnline("u1"))
	assert.Empty(t, r.OnlineUserIDs())
}

func TestRegistry_RegisterIsIdempotent(t *testing.T) {
	r := chathub.NewPresenceRegistry()

	r.Register("u1", "c1")
	r.Register("u1", "c1")
	assert.Equal(t, []string{"c1"}, r.ConnectionsFor("u1"))

	// One unregister is enough to take the user offline.
	_, wentOffline := r.Unregister("c1")
	assert.True(t, wentOffline)
	assert.False(t, r.IsOnline("u1"))
}

func TestRegistry_UnregisterUnknownIsNoop(t *testing.T) {
	r := chathub.NewPresenceRegistry()
	r.Register("u1", "c1")

	userID, wentOffline := r.Unregister("never-registered")
	assert.Equal(t, "", userID)
	assert.False(t, wentOffline)

	// Nothing else was touched.
	assert.True(t, r.IsOnline("u1"))
	assert.Equal(t, []string{"c1"}, r.ConnectionsFor("u1"))

	// Double unregister of a known connection is also harmless.
	r.Unregister("c1")
	userID, wentOffline = r.Unregister("c1")
	assert.Equal(t, "", userID)
	assert.False(t, wentOffline)
}

func TestRegistry_ConnectionsForUnknownUser(t *testing.T) {
	r := chathub.NewPresenceRegistry()
	assert.Empty(t, r.ConnectionsFor("ghost"))
	assert.NotNil(t, r.ConnectionsFor("ghost"))
}

func TestRegistry_OnlineUserIDs(t *testing.T) {
	r := chathub.NewPresenceRegistry()
	r.Register("u1", "c1")
	r.Register("u2", "c2")
	r.Register("u2", "c3")

	assert.ElementsMatch(t, []string{"u1", "u2"}, r.OnlineUserIDs())

	r.Unregister("c2")
	assert.ElementsMatch(t, []string{"u1", "u2"}, r.OnlineUserIDs())
	r.Unregister("c3")
	assert.ElementsMatch(t, []string{"u1"}, r.OnlineUserIDs())
}

// A user is online iff registered connections minus unregistered ones is
// positive, whatever the interleaving.
func TestRegistry_OnlineMatchesConnectionCount(t *testing.T) {
	r := chathub.NewPresenceRegistry()

	live := 0
	for i := 0; i < 10; i++ {
		r.Register("u1", fmt.Sprintf("c%d", i))
		live++
		if i%3 == 0 {
			r.Unregister(fmt.Sprintf("c%d", i))
			live--
		}
		assert.Equal(t, live > 0, r.IsOnline("u1"))
		assert.Len(t, r.ConnectionsFor("u1"), live)
	}
}

func TestRegistry_ConcurrentChurn(t *testing.T) {
	r := chathub.NewPresenceRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			connID := fmt.Sprintf("c%d", i)
			userID := fmt.Sprintf("u%d", i%4)
			r.Register(userID, connID)
			r.IsOnline(userID)
			r.OnlineUserIDs()
			r.Unregister(connID)
		}(i)
	}
	wg.Wait()

	assert.Empty(t, r.OnlineUserIDs())
}
