// Package middleware provides HTTP middlewares for session resolution and logging.
package middleware

import (
	"context"
	"net/http"

	"github.com/cipromart/directory/internal/models"
	"go.uber.org/zap"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionResolver returns the signed-in user, or nil when there is none.
type SessionResolver interface {
	GetCurrentUser(ctx context.Context) (*models.User, error)
}

// RequireSession is a middleware that only lets requests through while a
// user is signed in.
//
// The resolved user is stored in the request context, so handlers can use
// it as the authenticated user. Without a session the request is answered
// with 401; a failing store yields 500.
func RequireSession(sessions SessionResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := sessions.GetCurrentUser(r.Context())
			if err != nil {
				logger.Error("resolve session", zap.Error(err))
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if user == nil {
				http.Error(w, "please log in", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireActiveSubscription lets a request through only when the user put
// in the context by RequireSession has an active subscription. It answers
// 401 when there is no user and 403 when the subscription is inactive.
func RequireActiveSubscription(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok {
			http.Error(w, "please log in", http.StatusUnauthorized)
			return
		}
		if !user.Subscription.IsActive {
			http.Error(w, "an active subscription is required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext extracts the signed-in user from the request context.
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

// GetUserIDFromContext extracts the signed-in user's ID from the request
// context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	if user, ok := GetUserFromContext(ctx); ok {
		return user.ID
	}
	return ""
}
