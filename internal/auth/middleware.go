// Package auth establishes the two cookie-backed identities every request
// carries: an anonymous per-browser user token and the whiteboard session
// code the browser has joined, if any.
package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const cookieName = "_whiteboard_session"

type contextKey int

const (
	userIDKey contextKey = iota
	sessionIDKey
)

// Identity assigns a user token to first-time browsers and injects both the
// user ID and the current session code into the request context.
func Identity(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, _ := store.Get(r, cookieName)

			userID, _ := session.Values["user_id"].(string)
			if userID == "" {
				userID = uuid.NewString()
				session.Values["user_id"] = userID
				if err := session.Save(r, w); err != nil {
					http.Error(w, "Failed to save session", http.StatusInternalServerError)
					return
				}
			}
			sessionID, _ := session.Values["session_id"].(string)

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, sessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests that somehow reached a handler without an
// established user identity.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserID(r.Context()) == "" {
			http.Error(w, "Not Authorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID returns the anonymous user token for the request, or "".
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// SessionID returns the joined whiteboard session code, or "".
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}

// SetSessionCode stores the joined session code in the browser cookie.
func SetSessionCode(w http.ResponseWriter, r *http.Request, store sessions.Store, code string) error {
	session, _ := store.Get(r, cookieName)
	session.Values["session_id"] = code
	return session.Save(r, w)
}

// ClearSessionCode drops the joined session code, returning the browser to
// the shared default bucket.
func ClearSessionCode(w http.ResponseWriter, r *http.Request, store sessions.Store) error {
	session, _ := store.Get(r, cookieName)
	delete(session.Values, "session_id")
	return session.Save(r, w)
}
