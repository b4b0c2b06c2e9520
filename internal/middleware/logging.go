package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	logpkg "github.com/geminidesk/geminidesk/internal/logger"
	"github.com/geminidesk/geminidesk/internal/request"
)

// Logging creates logging middleware. Each request gets an ID (inbound
// X-Request-ID or a minted one) that is echoed back to the caller.
func Logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := request.WithRequestID(r.Context(), r.Header.Get("X-Request-ID"))
			r = r.WithContext(ctx)
			w.Header().Set("X-Request-ID", request.RequestID(ctx))

			// Wrap ResponseWriter to capture status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			logger.Info("http_request",
				zap.String("request_id", request.RequestID(ctx)),
				zap.String("method", r.Method),
				zap.String("path", logpkg.SanitizePath(r.URL.Path)),
				zap.String("remote", request.ClientIP(r)),
				zap.Int("status_code", wrapped.statusCode),
				zap.Int64("duration_ms", duration.Milliseconds()),
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
