/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"net/http"

	"webchat/internal/service"
)

type statusReqFields struct {
	UserID string `json:"userId" validate:"required"`
	Online bool   `json:"online"`
}

type msgReqFields struct {
	SenderID     string `json:"senderId" validate:"required"`
	SenderName   string `json:"senderName" validate:"required"`
	ReceiverID   string `json:"receiverId" validate:"required"`
	ReceiverName string `json:"receiverName" validate:"required"`
	Body         string `json:"message" validate:"required"`
}

// ChatHandler serves the polling endpoints of the chat: the online-user
// listing, presence updates and private conversations.
type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Returns every registered user tagged with its presence, online users first
func (c *ChatHandler) GetOnlineUsers(w http.ResponseWriter, r *http.Request) {
	statuses, err := c.chatService.ListOnlineUsers()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, statuses)
}

// Heartbeat endpoint, used both for keep-alive pings and explicit logout/unload signals
func (c *ChatHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var request statusReqFields
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	user, ok := currentUser(r)
	if !ok || user.UUID != request.UserID {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	c.chatService.Heartbeat(request.UserID, request.Online)
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Retrieves the messages in a private chat. An unknown conversation is an
// empty list, never an error.
func (c *ChatHandler) GetPrivateMessages(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	receiverID := r.URL.Query().Get("receiverId")

	user, ok := currentUser(r)
	if !ok || (user.UUID != userID && user.UUID != receiverID) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	messages, err := c.chatService.GetPrivateMessages(userID, receiverID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messages)
}

// Used to send a message in a private chat
func (c *ChatHandler) SendPrivateMessage(w http.ResponseWriter, r *http.Request) {
	var request msgReqFields
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	user, ok := currentUser(r)
	if !ok || user.UUID != request.SenderID {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	message, err := c.chatService.SendPrivateMessage(service.SendMessageCommand{
		SenderID:     request.SenderID,
		SenderName:   request.SenderName,
		ReceiverID:   request.ReceiverID,
		ReceiverName: request.ReceiverName,
		Body:         request.Body,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}
