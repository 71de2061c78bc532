package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.written {
		rw.status = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func logMiddleware(logger logrus.FieldLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		duration := time.Since(start)

		entry := logger.WithFields(logrus.Fields{
			"request_id":  requestID,
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": duration.Milliseconds(),
		})
		switch {
		case rec.status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case duration > 30*time.Second:
			entry.Warn("slow request")
		default:
			entry.Info("request completed")
		}
	})
}

// rateLimit rejects requests once limiter is exhausted. A nil limiter lets
// everything through.
func rateLimit(limiter *rate.Limiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter(limiter)))
			writeErrorBody(w, http.StatusTooManyRequests, "rate_limited", "too many generation requests, try again shortly")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func retryAfter(limiter *rate.Limiter) int {
	l := float64(limiter.Limit())
	if l <= 0 || l >= 1 {
		return 1
	}
	return int(1/l + 0.5)
}
