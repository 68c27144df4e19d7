package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/careerloft/careerloft/pkg/response"
)

// limiter keeps a fixed-window counter per client IP. Windows
// self-expire; a sweeper trims dead entries so the map stays bounded.
type limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	clients map[string]*window
}

type window struct {
	count   int
	resetAt time.Time
}

func newLimiter(max int, dur time.Duration) *limiter {
	l := &limiter{max: max, window: dur, clients: map[string]*window{}}
	go l.sweep()
	return l
}

func (l *limiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.clients[ip]
	if !ok || now.After(w.resetAt) {
		l.clients[ip] = &window{count: 1, resetAt: now.Add(l.window)}
		return true
	}
	w.count++
	return w.count <= l.max
}

func (l *limiter) sweep() {
	tick := time.NewTicker(time.Minute)
	defer tick.Stop()
	for range tick.C {
		now := time.Now()
		l.mu.Lock()
		for ip, w := range l.clients {
			if now.After(w.resetAt) {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

// clientIP prefers the first hop of X-Forwarded-For so limits follow
// the real client when we sit behind a proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit caps each client IP at max requests per window and answers
// 429 beyond that.
func RateLimit(max int, dur time.Duration) func(http.Handler) http.Handler {
	l := newLimiter(max, dur)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientIP(r)) {
				response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
