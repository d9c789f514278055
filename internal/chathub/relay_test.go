package chathub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mentorhub/backend/internal/chathub"
	"mentorhub/backend/internal/models"
)

// relayFixture wires a hub, relay and two identified users: u1 on conn-a1
// (and optionally conn-a2), u2 on conn-b1/conn-b2.
func relayFixture(t *testing.T, persistence *MockPersistence) (*chathub.ManagerService, *chathub.RelayService) {
	t.Helper()
	persistence.On("SetUserOnlineStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	hub := startHub(persistence)
	return hub, chathub.NewRelayService(hub, persistence)
}

func connect(hub *chathub.ManagerService, connID, userID string) *mockClient {
	c := newMockClient(connID)
	hub.RegisterCh <- c
	hub.IdentifyCh <- chathub.IdentifyRequest{Client: c, UserID: userID}
	return c
}

func TestRelay_SendFansOutToEveryReceiverConnection(t *testing.T) {
	persistence := new(MockPersistence)
	persistence.On("SaveMessage", mock.AnythingOfType("*models.ChatMessage")).Return(nil)
	hub, relay := relayFixture(t, persistence)

	sender := connect(hub, "conn-a1", "u1")
	tab1 := connect(hub, "conn-b1", "u2")
	tab2 := connect(hub, "conn-b2", "u2")
	settle()
	tab1.drain()
	tab2.drain()

	msg, delivered, err := relay.Send(sender, models.SendMessageRequest{
		ReceiverID: "u2", Content: "hi", Type: "text",
	})
	assert.NoError(t, err)
	assert.True(t, delivered)
	assert.Equal(t, models.ChatIDFor("u1", "u2"), msg.ChatID)
	assert.Equal(t, "u1", msg.SenderID)
	assert.Equal(t, "u2", msg.ReceiverID)

	// Both tabs got the push exactly once.
	for _, tab := range []*mockClient{tab1, tab2} {
		pushes := eventsNamed(tab.drain(), models.EventNewMessage)
		assert.Len(t, pushes, 1)
		var got models.ChatMessage
		assert.NoError(t, decodePayload(pushes[0], &got))
		assert.Equal(t, "hi", got.Content)
	}
	persistence.AssertCalled(t, "SaveMessage", mock.AnythingOfType("*models.ChatMessage"))
}

func TestRelay_NoPushWithoutPersistedMessage(t *testing.T) {
	persistence := new(MockPersistence)
	persistence.On("SaveMessage", mock.AnythingOfType("*models.ChatMessage")).Return(assert.AnError)
	hub, relay := relayFixture(t, persistence)
	notifier := new(MockNotifier)
	relay.Notifier = notifier

	sender := connect(hub, "conn-a1", "u1")
	receiver := connect(hub, "conn-b1", "u2")
	settle()
	receiver.drain()
	sender.drain()

	msg, delivered, err := relay.Send(sender, models.SendMessageRequest{
		ReceiverID: "u2", Content: "hi",
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, msg)
	assert.False(t, delivered)

	// Persistence failed, so nothing reached any connection.
	assert.Empty(t, receiver.drain())
	assert.Empty(t, sender.drain())
	notifier.AssertNotCalled(t, "NotifyOfflineMessage", mock.Anything, mock.Anything)
}

func TestRelay_OfflineReceiverStillPersists(t *testing.T) {
	persistence := new(MockPersistence)
	persistence.On("SaveMessage", mock.AnythingOfType("*models.ChatMessage")).Return(nil)
	hub, relay := relayFixture(t, persistence)

	notifier := new(MockNotifier)
	notifier.On("NotifyOfflineMessage", "u2", mock.AnythingOfType("*models.ChatMessage")).Return()
	relay.Notifier = notifier

	sender := connect(hub, "conn-a1", "u1")
	otherTab := connect(hub, "conn-a2", "u1")
	settle()
	otherTab.drain()

	msg, delivered, err := relay.Send(sender, models.SendMessageRequest{
		ReceiverID: "u2", Content: "hi", Type: "text",
	})
	assert.NoError(t, err)
	assert.False(t, delivered)
	assert.NotNil(t, msg)
	persistence.AssertCalled(t, "SaveMessage", mock.AnythingOfType("*models.ChatMessage"))

	// The sender's second tab still gets its echo.
	echoes := eventsNamed(otherTab.drain(), models.EventMessageSent)
	assert.Len(t, echoes, 1)
	var ack models.MessageAck
	assert.NoError(t, decodePayload(echoes[0], &ack))
	assert.False(t, ack.Delivered)

	settle()
	notifier.AssertCalled(t, "NotifyOfflineMessage", "u2", mock.AnythingOfType("*models.ChatMessage"))
}

func TestRelay_EchoSkipsOriginatingConnection(t *testing.T) {
	persistence := new(MockPersistence)
	persistence.On("SaveMessage", mock.AnythingOfType("*models.ChatMessage")).Return(nil)
	hub, relay := relayFixture(t, persistence)

	sender := connect(hub, "conn-a1", "u1")
	otherTab := connect(hub, "conn-a2", "u1")
	receiver := connect(hub, "conn-b1", "u2")
	settle()
	sender.drain()
	otherTab.drain()
	receiver.drain()

	_, _, err := relay.Send(sender, models.SendMessageRequest{ReceiverID: "u2", Content: "hi"})
	assert.NoError(t, err)

	// The relay answers the originating connection through the return value,
	// not an echo event; the other tab gets exactly one.
	assert.Empty(t, eventsNamed(sender.drain(), models.EventMessageSent))
	assert.Len(t, eventsNamed(otherTab.drain(), models.EventMessageSent), 1)
	assert.Len(t, eventsNamed(receiver.drain(), models.EventNewMessage), 1)
}

func TestRelay_Validation(t *testing.T) {
	persistence := new(MockPersistence)
	hub, relay := relayFixture(t, persistence)

	sender := connect(hub, "conn-a1", "u1")
	unidentified := newMockClient("conn-x")
	hub.RegisterCh <- unidentified
	settle()

	cases := []struct {
		name    string
		client  chathub.Client
		req     models.SendMessageRequest
		wantErr error
	}{
		{"unidentified sender", unidentified, models.SendMessageRequest{ReceiverID: "u2", Content: "hi"}, chathub.ErrUnidentifiedSender},
		{"empty content", sender, models.SendMessageRequest{ReceiverID: "u2", Content: "  "}, chathub.ErrEmptyContent},
		{"missing receiver", sender, models.SendMessageRequest{Content: "hi"}, chathub.ErrMissingReceiver},
		{"bad type", sender, models.SendMessageRequest{ReceiverID: "u2", Content: "hi", Type: "carrier-pigeon"}, chathub.ErrInvalidMessageType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := relay.Send(tc.client, tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	persistence.AssertNotCalled(t, "SaveMessage", mock.Anything)
}

func TestRelay_DefaultsToTextType(t *testing.T) {
	persistence := new(MockPersistence)
	persistence.On("SaveMessage", mock.MatchedBy(func(m *models.ChatMessage) bool {
		return m.Type == models.MessageTypeText
	})).Return(nil)
	hub, relay := relayFixture(t, persistence)

	sender := connect(hub, "conn-a1", "u1")
	settle()

	msg, _, err := relay.Send(sender, models.SendMessageRequest{ReceiverID: "u2", Content: "hi"})
	assert.NoError(t, err)
	assert.Equal(t, models.MessageTypeText, msg.Type)
}

// Both directions of a conversation persist under one chat id.
func TestRelay_SharedChatIDAcrossDirections(t *testing.T) {
	persistence := new(MockPersistence)
	var chatIDs []string
	persistence.On("SaveMessage", mock.AnythingOfType("*models.ChatMessage")).
		Run(func(args mock.Arguments) {
			chatIDs = append(chatIDs, args.Get(0).(*models.ChatMessage).ChatID)
		}).Return(nil)
	hub, relay := relayFixture(t, persistence)

	alice := connect(hub, "conn-a1", "u1")
	bob := connect(hub, "conn-b1", "u2")
	settle()

	_, _, err := relay.Send(alice, models.SendMessageRequest{ReceiverID: "u2", Content: "hi"})
	assert.NoError(t, err)
	_, _, err = relay.Send(bob, models.SendMessageRequest{ReceiverID: "u1", Content: "hello back"})
	assert.NoError(t, err)

	assert.Len(t, chatIDs, 2)
	assert.Equal(t, chatIDs[0], chatIDs[1])
}
