package repository

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"webchat/internal/entity"
)

func openTestBadger(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testMessage(sender, receiver, body string, at time.Time) *entity.Message {
	return &entity.Message{
		ID:           uuid.New().String(),
		SenderID:     sender,
		SenderName:   sender,
		ReceiverID:   receiver,
		ReceiverName: receiver,
		Body:         body,
		Timestamp:    at,
	}
}

func Test_Append_And_List_InSendOrder(t *testing.T) {
	req := require.New(t)
	repo := NewBadgerMessageRepository(openTestBadger(t), slog.Default(), 100)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := testMessage("alice", "bob", "hi", at)
	second := testMessage("bob", "alice", "hello", at.Add(time.Second))

	req.NoError(repo.Append("alice:bob", first))
	req.NoError(repo.Append("alice:bob", second))

	messages, err := repo.List("alice:bob")
	req.NoError(err)
	req.Len(messages, 2)
	req.Equal(first, messages[0])
	req.Equal(second, messages[1])
}

func Test_Append_SameTimestamp_KeepsInsertionOrder(t *testing.T) {
	req := require.New(t)
	repo := NewBadgerMessageRepository(openTestBadger(t), slog.Default(), 100)

	// All messages share one timestamp, so only the sequence in the key can
	// keep them in insertion order.
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		msg := testMessage("alice", "bob", fmt.Sprintf("message %d", i), at)
		req.NoError(repo.Append("alice:bob", msg))
	}

	messages, err := repo.List("alice:bob")
	req.NoError(err)
	req.Len(messages, 20)
	for i, msg := range messages {
		req.Equal(fmt.Sprintf("message %d", i), msg.Body)
	}
}

func Test_List_UnknownConversation_IsEmptyNotError(t *testing.T) {
	req := require.New(t)
	repo := NewBadgerMessageRepository(openTestBadger(t), slog.Default(), 100)

	messages, err := repo.List("nobody:nothing")
	req.NoError(err)
	req.Empty(messages)
}

func Test_Append_TrimsToRetentionLimit(t *testing.T) {
	req := require.New(t)
	repo := NewBadgerMessageRepository(openTestBadger(t), slog.Default(), 100)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 105; i++ {
		msg := testMessage("alice", "bob", fmt.Sprintf("message %d", i), at.Add(time.Duration(i)*time.Second))
		req.NoError(repo.Append("alice:bob", msg))
	}

	messages, err := repo.List("alice:bob")
	req.NoError(err)
	req.Len(messages, 100)
	// The five oldest were dropped, relative order preserved.
	req.Equal("message 5", messages[0].Body)
	req.Equal("message 104", messages[99].Body)
}

func Test_Append_ConcurrentConversations_NoLostWrite(t *testing.T) {
	req := require.New(t)
	repo := NewBadgerMessageRepository(openTestBadger(t), slog.Default(), 100)

	at := time.Now().UTC()
	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		errs <- repo.Append("alice:bob", testMessage("alice", "bob", "hi bob", at))
	}()
	go func() {
		defer wg.Done()
		errs <- repo.Append("alice:carol", testMessage("carol", "alice", "hi alice", at))
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		req.NoError(err)
	}

	first, err := repo.List("alice:bob")
	req.NoError(err)
	req.Len(first, 1)

	second, err := repo.List("alice:carol")
	req.NoError(err)
	req.Len(second, 1)
}
