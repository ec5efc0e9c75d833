package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// ClientHeader names the caller; it keys rate limiting and request logs.
const ClientHeader = "X-Client-ID"

func clientKey(r *http.Request) string {
	if id := r.Header.Get(ClientHeader); id != "" {
		return id
	}
	return r.RemoteAddr
}

func AdminAuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+token {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"client", r.Header.Get(ClientHeader),
				"request_id", chiMiddleware.GetReqID(r.Context()),
			)
		})
	}
}

type rateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
}

// RateLimitMiddleware allows requestsPerMinute per client; 0 disables it.
func RateLimitMiddleware(requestsPerMinute int) func(http.Handler) http.Handler {
	rl := &rateLimiter{
		requests: make(map[string][]time.Time),
		limit:    requestsPerMinute,
		window:   time.Minute,
	}
	return func(next http.Handler) http.Handler {
		if requestsPerMinute <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			rl.mu.Lock()
			now := time.Now()
			cutoff := now.Add(-rl.window)
			var valid []time.Time
			for _, t := range rl.requests[key] {
				if t.After(cutoff) {
					valid = append(valid, t)
				}
			}
			if len(valid) >= rl.limit {
				rl.mu.Unlock()
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}
			rl.requests[key] = append(valid, now)
			rl.mu.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}
