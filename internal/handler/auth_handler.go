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

	"github.com/gorilla/sessions"

	"webchat/internal/middleware"
	"webchat/internal/service"
)

type registerReqFields struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginReqFields struct {
	Username string `json:"username" validate:"required"` // Username or email
	Password string `json:"password" validate:"required"`
}

// AuthHandler helps in managing user registration and authentication
type AuthHandler struct {
	authService service.AuthService
	chatService service.ChatService
	cookieStore *sessions.CookieStore
}

func NewAuthHandler(authService service.AuthService, chatService service.ChatService, cookieStore *sessions.CookieStore) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		chatService: chatService,
		cookieStore: cookieStore,
	}
}

// Registers a user and opens a session for it
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var request registerReqFields
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.authService.Register(request.Username, request.Email, request.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.openSession(w, r, user.UUID, user.Username); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Registration successful",
		"user":    user,
	})
}

// Login handles the authentication phase
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request loginReqFields
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.authService.Login(request.Username, request.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.openSession(w, r, user.UUID, user.Username); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"user":    user,
	})
}

// Logout closes the session and marks the user offline
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	h.chatService.Heartbeat(user.UUID, false)

	session, _ := h.cookieStore.Get(r, middleware.SessionName)
	session.Options.MaxAge = -1
	sessions.Save(r, w)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out",
	})
}

func (h *AuthHandler) openSession(w http.ResponseWriter, r *http.Request, userUUID, username string) error {
	session, _ := h.cookieStore.Get(r, middleware.SessionName)
	session.Values["user_uuid"] = userUUID
	session.Values["username"] = username
	return sessions.Save(r, w)
}
