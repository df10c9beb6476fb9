/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"webchat/internal/apperr"
	"webchat/internal/chat"
	"webchat/internal/entity"
	"webchat/internal/repository"
)

var validate = validator.New()

// SendMessageCommand carries everything needed to post a private message.
// Sender and receiver names travel with the message so history stays readable
// even after a profile rename.
type SendMessageCommand struct {
	SenderID     string `validate:"required"`
	SenderName   string `validate:"required"`
	ReceiverID   string `validate:"required"`
	ReceiverName string `validate:"required"`
	Body         string `validate:"required"`
}

// Service orchestrating presence and private messaging, the operations the
// polling client consumes.
type ChatService interface {
	ListOnlineUsers() ([]*entity.UserStatus, error)                          // Directory merged with presence, online users first
	GetPrivateMessages(userID, receiverID string) ([]*entity.Message, error) // Conversation history in send order
	SendPrivateMessage(cmd SendMessageCommand) (*entity.Message, error)      // Validates, marks the sender online, stores the message
	Heartbeat(userID string, online bool)                                    // Keep-alive or explicit offline signal
}

type chatService struct {
	users    repository.UserRepository
	messages repository.MessageRepository
	presence *chat.PresenceTracker
	log      *slog.Logger
}

func NewChatService(users repository.UserRepository, messages repository.MessageRepository, presence *chat.PresenceTracker, log *slog.Logger) ChatService {
	return &chatService{users: users, messages: messages, presence: presence, log: log}
}

func (s *chatService) ListOnlineUsers() ([]*entity.UserStatus, error) {
	users, err := s.users.GetAll()
	if err != nil {
		return nil, err
	}
	online := s.presence.ListOnline()

	statuses := lo.Map(users, func(u *entity.User, _ int) *entity.UserStatus {
		_, isOnline := online[u.UUID]
		return &entity.UserStatus{User: *u, IsOnline: isOnline}
	})

	// Online users first, alphabetical by username inside each group.
	slices.SortStableFunc(statuses, func(a, b *entity.UserStatus) int {
		if a.IsOnline != b.IsOnline {
			if a.IsOnline {
				return -1
			}
			return 1
		}
		return strings.Compare(strings.ToLower(a.Username), strings.ToLower(b.Username))
	})
	return statuses, nil
}

func (s *chatService) GetPrivateMessages(userID, receiverID string) ([]*entity.Message, error) {
	conversationID, err := chat.ConversationID(userID, receiverID)
	if err != nil {
		return nil, err
	}
	return s.messages.List(conversationID)
}

func (s *chatService) SendPrivateMessage(cmd SendMessageCommand) (*entity.Message, error) {
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}

	// Sending proves liveness even between heartbeats.
	s.presence.SetOnline(cmd.SenderID)

	conversationID, err := chat.ConversationID(cmd.SenderID, cmd.ReceiverID)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		ID:           uuid.New().String(),
		SenderID:     cmd.SenderID,
		SenderName:   cmd.SenderName,
		ReceiverID:   cmd.ReceiverID,
		ReceiverName: cmd.ReceiverName,
		Body:         cmd.Body,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.messages.Append(conversationID, message); err != nil {
		return nil, err
	}
	s.log.Debug("Message stored", "conversation", conversationID, "message", message.ID)
	return message, nil
}

func (s *chatService) Heartbeat(userID string, online bool) {
	if online {
		s.presence.SetOnline(userID)
		return
	}
	s.presence.SetOffline(userID)
}
