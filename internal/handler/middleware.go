package handler

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// SecurityHeaders adds security response headers on every route.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'self'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// RateLimiter enforces a sliding-window per-IP request limit. It guards
// the public submission endpoint against form spam; admin routes are
// not limited.
type RateLimiter struct {
	maxPerMinute int
	mu           sync.Mutex
	windows      map[string][]time.Time
}

// NewRateLimiter creates a limiter with the given requests-per-minute cap.
func NewRateLimiter(maxPerMinute int) *RateLimiter {
	rl := &RateLimiter{
		maxPerMinute: maxPerMinute,
		windows:      map[string][]time.Time{},
	}
	go rl.sweep()
	return rl
}

// allow records one request for ip and reports whether it is within the
// cap. The per-IP window is pruned in place on every call.
func (rl *RateLimiter) allow(ip string, now time.Time) (ok bool, retryAfter time.Duration) {
	cutoff := now.Add(-time.Minute)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	kept := rl.windows[ip][:0]
	for _, ts := range rl.windows[ip] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= rl.maxPerMinute {
		rl.windows[ip] = kept
		return false, kept[0].Add(time.Minute).Sub(now)
	}

	rl.windows[ip] = append(kept, now)
	return true, 0
}

// sweep drops idle IPs so the map does not grow without bound.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for now := range ticker.C {
		cutoff := now.Add(-time.Minute)
		rl.mu.Lock()
		for ip, window := range rl.windows {
			if len(window) == 0 || !window[len(window)-1].After(cutoff) {
				delete(rl.windows, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware returns an http.Handler enforcing the limit.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, retryAfter := rl.allow(clientIP(r), time.Now())
		if !ok {
			secs := int(retryAfter.Seconds()) + 1
			if secs < 1 {
				secs = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			writeError(w, http.StatusTooManyRequests, "rate_limit_exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client address, trusting one reverse proxy's
// X-Forwarded-For entry.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[len(parts)-1])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
