package api

import (
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles the public apply endpoint with a Redis fixed window
// per client IP. The waitlist form is unauthenticated, so this is the only
// thing standing between the table and a scripted submitter.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a limiter allowing `limit` requests per window per
// client. A nil Redis client yields a nil limiter, which Middleware treats
// as "no limiting".
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	if rdb == nil {
		return nil
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window}
}

// Middleware enforces the limit. Redis failures fail open: a broken limiter
// must not take the waitlist down with it.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if rl == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "waitlist:apply:" + clientIP(r)

		count, err := rl.rdb.Incr(r.Context(), key).Result()
		if err != nil {
			log.Printf("rate limiter: redis incr failed, allowing request: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			rl.rdb.Expire(r.Context(), key, rl.window)
		}

		if count > int64(rl.limit) {
			ttl, _ := rl.rdb.TTL(r.Context(), key).Result()
			if ttl <= 0 {
				ttl = rl.window
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			respondError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the originating client address: first hop of
// X-Forwarded-For when present (the service runs behind a load balancer),
// otherwise the connection's remote address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
