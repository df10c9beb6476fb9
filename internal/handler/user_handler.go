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

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"webchat/internal/middleware"
	"webchat/internal/service"
)

type profileReqFields struct {
	UserID   string `json:"userId" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type passwordReqFields struct {
	UserID          string `json:"userId" validate:"required"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

type deleteReqFields struct {
	Password string `json:"password" validate:"required"`
}

// UserHandler is used for all the routes regarding users (apart from authentication):
// the directory listing and profile/settings maintenance.
type UserHandler struct {
	userService service.UserService
	authService service.AuthService
	cookieStore *sessions.CookieStore
}

func NewUserHandler(userService service.UserService, authService service.AuthService, cookieStore *sessions.CookieStore) *UserHandler {
	return &UserHandler{userService, authService, cookieStore}
}

// Returns the full user directory, secrets never included
func (u *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := u.userService.ListUsers()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Updates username and email of the logged in user
func (u *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var request profileReqFields
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	user, ok := currentUser(r)
	if !ok || user.UUID != request.UserID {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	updated, err := u.userService.UpdateProfile(request.UserID, request.Username, request.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	// The session carries the username, keep it in sync with the rename.
	session, _ := u.cookieStore.Get(r, middleware.SessionName)
	session.Values["username"] = updated.Username
	sessions.Save(r, w)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Profile updated successfully",
		"user":    updated,
	})
}

// Changes the password of the logged in user
func (u *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var request passwordReqFields
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	user, ok := currentUser(r)
	if !ok || user.UUID != request.UserID {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := u.authService.ChangePassword(request.UserID, request.CurrentPassword, request.NewPassword); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password changed successfully",
	})
}

// Handles the user deletion request
func (u *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	uuid := vars["uuid"]

	var request deleteReqFields
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	user, ok := currentUser(r)
	if !ok || user.UUID != uuid {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := u.authService.DeleteAccount(uuid, request.Password); err != nil {
		respondError(w, err)
		return
	}

	session, _ := u.cookieStore.Get(r, middleware.SessionName)
	session.Options.MaxAge = -1
	sessions.Save(r, w)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Account deleted successfully",
	})
}
