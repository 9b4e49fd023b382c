package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const cookieName = "dashboard_session"

type ctxKey struct{}

// EnsureCookie assigns every browser a stable session ID so the store has a
// key to hang role tokens on. The ID carries no auth meaning by itself.
func EnsureCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
			sid = c.Value
		} else {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Expires:  time.Now().Add(30 * 24 * time.Hour),
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sid)))
	})
}

// FromContext returns the session ID set by EnsureCookie.
func FromContext(ctx context.Context) string {
	sid, _ := ctx.Value(ctxKey{}).(string)
	return sid
}

// WithID injects a session ID directly, for tests.
func WithID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, sid)
}
