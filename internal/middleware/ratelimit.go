package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ceylonsure/motor-risk/pkg/problem"
)

// RateLimiter provides simple in-memory rate limiting, per client IP.
// In production, use Redis-based distributed rate limiting.
type RateLimiter struct {
	requests map[string][]time.Time
	mu       sync.Mutex
	limit    int           // max requests
	window   time.Duration // time window
	stopCh   chan struct{}
}

// NewRateLimiter creates a rate limiter with the given limit per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		stopCh:   make(chan struct{}),
	}
	// Cleanup old entries every minute
	go rl.cleanup()
	return rl
}

// Stop gracefully stops the rate limiter's cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// StartWithContext stops cleanup when the context is cancelled.
func (rl *RateLimiter) StartWithContext(ctx context.Context) {
	go func() {
		<-ctx.Done()
		rl.Stop()
	}()
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for ip, times := range rl.requests {
				var valid []time.Time
				for _, t := range times {
					if now.Sub(t) < rl.window {
						valid = append(valid, t)
					}
				}
				if len(valid) == 0 {
					delete(rl.requests, ip)
				} else {
					rl.requests[ip] = valid
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) isAllowed(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-rl.window)

	// Filter to only requests within window
	var valid []time.Time
	for _, t := range rl.requests[ip] {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[ip] = valid
		return false
	}

	rl.requests[ip] = append(valid, now)
	return true
}

// Middleware returns the rate limiting middleware handler.
// NOTE: use AFTER chi's RealIP middleware, which safely sets
// RemoteAddr from X-Forwarded-For behind trusted proxies.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r.RemoteAddr)

		if !rl.isAllowed(ip) {
			w.Header().Set("Retry-After", "60")
			problem.Write(w, http.StatusTooManyRequests, "Rate Limit Exceeded",
				"Too many requests. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from a RemoteAddr, handling the bracketed
// IPv6 form.
func clientIP(addr string) string {
	if strings.Count(addr, ":") > 1 {
		if bracketIdx := strings.LastIndex(addr, "]:"); bracketIdx != -1 {
			return addr[1:bracketIdx]
		}
		return addr
	}
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
