// Package middleware provides the chi middleware shared by all routes.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"patient-intake/pkg/requestcontext"
)

// RequestIDHeader is echoed back so browser clients can correlate a failed
// submission with server logs.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request a UUID (or adopts the caller's) and stores
// it in the context for handlers and services.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
