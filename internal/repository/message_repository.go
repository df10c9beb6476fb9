/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"webchat/internal/apperr"
	"webchat/internal/entity"
)

// This repository stores private conversations in BadgerDB with a bounded
// per-conversation history.
type MessageRepository interface {
	Append(conversationID string, message *entity.Message) error // Persists a message, evicting the oldest ones beyond the retention limit
	List(conversationID string) ([]*entity.Message, error)       // Retrieves the conversation's messages in send order; empty for unknown conversations
}

// Implementation of the repository using BadgerDB.
// The key is formatted as "msg:{conversation}:{timestamp_padded}:{seq_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Keep insertion order between messages stamped in the same nanosecond,
//     via a monotonic per-process sequence number.
//  3. Keep keys unique across process restarts, via the message UUID.
type BadgerMessageRepository struct {
	db    *badger.DB
	log   *slog.Logger
	limit int

	// mu serializes all mutations. Append is read-modify-write over the whole
	// conversation (count then trim), so two concurrent appends must never
	// interleave or one of the writes is lost. seq is only touched under mu.
	mu  sync.Mutex
	seq uint64
}

func NewBadgerMessageRepository(db *badger.DB, log *slog.Logger, limit int) *BadgerMessageRepository {
	return &BadgerMessageRepository{db: db, log: log, limit: limit}
}

func conversationPrefix(conversationID string) []byte {
	return []byte("msg:" + conversationID + ":")
}

func messageKey(conversationID string, message *entity.Message, seq uint64) []byte {
	return []byte(fmt.Sprintf("msg:%s:%019d:%012d:%s", conversationID, message.Timestamp.UnixNano(), seq, message.ID))
}

// Append writes the message and then trims the conversation from the front
// until at most limit messages remain. Both happen in one transaction, so a
// failed append leaves the stored history untouched.
func (r *BadgerMessageRepository) Append(conversationID string, message *entity.Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%w: encoding message: %v", apperr.ErrStorage, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++

	err = r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(messageKey(conversationID, message, r.seq), payload); err != nil {
			return err
		}
		return r.trim(txn, conversationID)
	})
	if err != nil {
		return fmt.Errorf("%w: appending message: %v", apperr.ErrStorage, err)
	}
	return nil
}

// trim deletes the oldest keys of the conversation until limit remain.
// Called inside the Append transaction.
func (r *BadgerMessageRepository) trim(txn *badger.Txn, conversationID string) error {
	prefix := conversationPrefix(conversationID)

	options := badger.DefaultIteratorOptions
	options.PrefetchValues = false
	it := txn.NewIterator(options)
	defer it.Close()

	var keys [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}

	if len(keys) <= r.limit {
		return nil
	}
	r.log.Debug("Trimming conversation history", "conversation", conversationID, "evicted", len(keys)-r.limit)
	for _, key := range keys[:len(keys)-r.limit] {
		if err := txn.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// List returns the stored messages oldest first. Thanks to the padded
// timestamp in the key, a forward prefix scan is already in send order.
func (r *BadgerMessageRepository) List(conversationID string) ([]*entity.Message, error) {
	prefix := conversationPrefix(conversationID)
	messages := []*entity.Message{}

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var message entity.Message
				if err := json.Unmarshal(value, &message); err != nil {
					return err
				}
				messages = append(messages, &message)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: reading conversation: %v", apperr.ErrStorage, err)
	}
	return messages, nil
}
