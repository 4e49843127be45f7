package middleware

import (
	"context"
	"net/http"
	"strings"
)

type userIDKey struct{}

// Identity copies the caller identity set by the upstream identity provider from
// header into the request context. Requests without it pass through anonymous; the
// handlers reject them where an identity is required.
func Identity(header string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := strings.TrimSpace(r.Header.Get(header)); id != "" {
				r = r.WithContext(WithUserID(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the caller identity or "" for anonymous requests.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}
