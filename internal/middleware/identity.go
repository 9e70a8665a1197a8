// Package middleware provides the HTTP middleware chain: request identity
// resolution and metrics collection.
package middleware

import (
	"context"
	"net/http"

	"timeclock/internal/httputil"
)

type contextKey string

// UserIDKey is the request context key carrying the resolved user identity.
const UserIDKey contextKey = "userId"

// Identity resolves the already-authenticated user from the fronting
// proxy's headers into the request context. Credential verification is the
// proxy's job; requests without an identity are rejected.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-Auth-User")

		// Common alternatives set by other proxies
		if userID == "" {
			userID = r.Header.Get("X-Forwarded-User")
		}
		if userID == "" {
			userID = r.Header.Get("Remote-User")
		}

		if userID == "" {
			httputil.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID returns the resolved user identity, or "" when absent.
func GetUserID(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
