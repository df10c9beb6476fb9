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
)

// NewRouter wires every route of the JSON API. Authentication routes are
// open, everything else sits behind the session middleware; message sending
// is additionally rate limited per client.
func NewRouter(
	auth *AuthHandler,
	users *UserHandler,
	chat *ChatHandler,
	store *sessions.CookieStore,
	limiter *middleware.LimiterStore,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/register", auth.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/login", auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/logout", middleware.AuthMiddleware(store, auth.Logout)).Methods(http.MethodPost)

	r.HandleFunc("/api/users", middleware.AuthMiddleware(store, users.GetUsers)).Methods(http.MethodGet)
	r.HandleFunc("/api/users/online", middleware.AuthMiddleware(store, chat.GetOnlineUsers)).Methods(http.MethodGet)
	r.HandleFunc("/api/users/status", middleware.AuthMiddleware(store, chat.UpdateStatus)).Methods(http.MethodPost)
	r.HandleFunc("/api/users/profile", middleware.AuthMiddleware(store, users.UpdateProfile)).Methods(http.MethodPut)
	r.HandleFunc("/api/users/password", middleware.AuthMiddleware(store, users.ChangePassword)).Methods(http.MethodPut)
	r.HandleFunc("/api/users/{uuid}", middleware.AuthMiddleware(store, users.DeleteUser)).Methods(http.MethodDelete)

	r.HandleFunc("/api/chat/private", middleware.AuthMiddleware(store, chat.GetPrivateMessages)).Methods(http.MethodGet)
	r.HandleFunc("/api/chat/private",
		middleware.AuthMiddleware(store, middleware.RateLimit(limiter, chat.SendPrivateMessage))).Methods(http.MethodPost)

	return r
}
