package service

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"webchat/internal/apperr"
	"webchat/internal/chat"
	"webchat/internal/entity"
)

func newChatFixture() (*fakeUserRepository, *fakeMessageRepository, *chat.PresenceTracker, ChatService) {
	users := newFakeUserRepository()
	messages := newFakeMessageRepository()
	presence := chat.NewPresenceTracker(2 * time.Minute)
	svc := NewChatService(users, messages, presence, slog.Default())
	return users, messages, presence, svc
}

func directoryUser(uuid, username string) *entity.User {
	return &entity.User{UUID: uuid, Username: username, Email: username + "@example.com", CreatedAt: time.Now().UTC()}
}

func Test_SendAndFetch_PrivateConversation(t *testing.T) {
	req := require.New(t)
	_, _, _, svc := newChatFixture()

	first, err := svc.SendPrivateMessage(SendMessageCommand{
		SenderID: "id-alice", SenderName: "alice",
		ReceiverID: "id-bob", ReceiverName: "bob",
		Body: "hi",
	})
	req.NoError(err)
	req.NotEmpty(first.ID)
	req.False(first.Timestamp.IsZero())

	second, err := svc.SendPrivateMessage(SendMessageCommand{
		SenderID: "id-bob", SenderName: "bob",
		ReceiverID: "id-alice", ReceiverName: "alice",
		Body: "hello",
	})
	req.NoError(err)

	// Both directions resolve to the same conversation, send order kept.
	history, err := svc.GetPrivateMessages("id-alice", "id-bob")
	req.NoError(err)
	req.Len(history, 2)
	req.Equal(first, history[0])
	req.Equal(second, history[1])
	req.Equal("id-alice", history[0].SenderID)
	req.Equal("id-bob", history[0].ReceiverID)
	req.Equal("id-bob", history[1].SenderID)

	reversed, err := svc.GetPrivateMessages("id-bob", "id-alice")
	req.NoError(err)
	req.Equal(history, reversed)
}

func Test_SendPrivateMessage_EmptyBody_StoresNothing(t *testing.T) {
	req := require.New(t)
	_, messages, _, svc := newChatFixture()

	_, err := svc.SendPrivateMessage(SendMessageCommand{
		SenderID: "id-alice", SenderName: "alice",
		ReceiverID: "id-bob", ReceiverName: "bob",
		Body: "",
	})
	req.ErrorIs(err, apperr.ErrValidation)
	req.Zero(messages.totalStored())
}

func Test_SendPrivateMessage_MarksSenderOnline(t *testing.T) {
	req := require.New(t)
	_, _, presence, svc := newChatFixture()

	req.False(presence.IsOnline("id-alice"))
	_, err := svc.SendPrivateMessage(SendMessageCommand{
		SenderID: "id-alice", SenderName: "alice",
		ReceiverID: "id-bob", ReceiverName: "bob",
		Body: "hi",
	})
	req.NoError(err)
	req.True(presence.IsOnline("id-alice"))
	req.False(presence.IsOnline("id-bob"))
}

func Test_SendPrivateMessage_StorageFailure_Propagates(t *testing.T) {
	req := require.New(t)
	_, messages, presence, svc := newChatFixture()
	messages.appendErr = apperr.ErrStorage

	_, err := svc.SendPrivateMessage(SendMessageCommand{
		SenderID: "id-alice", SenderName: "alice",
		ReceiverID: "id-bob", ReceiverName: "bob",
		Body: "hi",
	})
	req.ErrorIs(err, apperr.ErrStorage)
	req.Zero(messages.totalStored())
	// The send attempt still proves liveness even though the write failed.
	req.True(presence.IsOnline("id-alice"))
}

func Test_GetPrivateMessages_EmptyConversation(t *testing.T) {
	req := require.New(t)
	_, _, _, svc := newChatFixture()

	history, err := svc.GetPrivateMessages("id-alice", "id-bob")
	req.NoError(err)
	req.Empty(history)
}

func Test_GetPrivateMessages_RequiresBothIDs(t *testing.T) {
	req := require.New(t)
	_, _, _, svc := newChatFixture()

	_, err := svc.GetPrivateMessages("id-alice", "")
	req.ErrorIs(err, apperr.ErrValidation)
}

func Test_ListOnlineUsers_OnlineFirstThenAlphabetical(t *testing.T) {
	req := require.New(t)
	users, _, _, svc := newChatFixture()

	req.NoError(users.Create(directoryUser("id-alice", "alice")))
	req.NoError(users.Create(directoryUser("id-bob", "bob")))
	req.NoError(users.Create(directoryUser("id-zoe", "zoe")))

	svc.Heartbeat("id-zoe", true)

	statuses, err := svc.ListOnlineUsers()
	req.NoError(err)
	req.Len(statuses, 3)

	// zoe is online and comes first despite sorting last alphabetically.
	req.Equal("zoe", statuses[0].Username)
	req.True(statuses[0].IsOnline)
	req.Equal("alice", statuses[1].Username)
	req.False(statuses[1].IsOnline)
	req.Equal("bob", statuses[2].Username)
}

func Test_Heartbeat_TogglesPresence(t *testing.T) {
	req := require.New(t)
	_, _, presence, svc := newChatFixture()

	svc.Heartbeat("id-alice", true)
	req.True(presence.IsOnline("id-alice"))

	svc.Heartbeat("id-alice", false)
	req.False(presence.IsOnline("id-alice"))

	// Going offline for an untracked user is a no-op, not an error.
	svc.Heartbeat("id-ghost", false)
}
