package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout gives every request a deadline. Repository calls receive the
// request context, so a query still running when d elapses is cancelled and
// the handler answers 504. A non-positive d disables the deadline.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
