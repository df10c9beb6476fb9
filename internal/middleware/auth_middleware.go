package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"

	"webchat/internal/entity"
)

const SessionName = "auth-session"

// AuthMiddleware guards a route behind the cookie session. The authenticated
// user is placed in the request context under the "user" key.
func AuthMiddleware(store *sessions.CookieStore, next func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := store.Get(r, SessionName)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		userUUID, ok1 := session.Values["user_uuid"].(string)
		username, ok2 := session.Values["username"].(string)
		if !(ok1 && ok2) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user := entity.User{
			UUID:     userUUID,
			Username: username,
		}

		ctx := context.WithValue(r.Context(), "user", user)
		r = r.WithContext(ctx)

		next(w, r)
	}
}
