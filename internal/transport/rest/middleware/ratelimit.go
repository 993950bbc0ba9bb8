package middleware

import (
	"bemanai/internal/cache"
	"errors"
	"log"
	"net"
	"net/http"
	"strconv"
)

// RateLimit limits requests per subject: the authenticated user or API key,
// else the client address. Limiter failures let the request through.
func RateLimit(limiter cache.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := GetSubject(r.Context())
			if subject == "" {
				subject = "ip:" + clientIP(r)
			}

			remaining, err := limiter.Allow(r.Context(), subject)
			if errors.Is(err, cache.ErrRateLimited) {
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			if err != nil {
				log.Printf("rate limiter failed: %v", err)
			} else {
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
