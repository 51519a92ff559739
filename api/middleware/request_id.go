package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/velureshop/velure-backend/pkg/logger"
)

const (
	requestIDHeader = "X-Request-Id"
	maxRequestIDLen = 64
)

// RequestID honors an incoming X-Request-Id (trimmed and capped so proxy
// garbage cannot flood the log stream) or mints a fresh uuid, echoes it on
// the response and attaches it to the request-scoped logger.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if len(reqID) > maxRequestIDLen {
				reqID = reqID[:maxRequestIDLen]
			}
			if reqID == "" {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
