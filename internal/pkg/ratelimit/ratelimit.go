// Package ratelimit provides a fixed-window, per-key request limiter.
package ratelimit

import (
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type window struct {
	start time.Time
	count int
}

// Limiter allows at most limit hits per key within each period
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a limiter and starts its cleanup goroutine. Call Stop when done.
func New(limit int, period time.Duration) *Limiter {
	l := &Limiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go l.cleanup()

	return l
}

// Allow records a hit for key. When the key is over its limit, ok is false
// and retryAfter is the time left in the current window.
func (l *Limiter) Allow(key string) (ok bool, retryAfter time.Duration) {
	if l.limit <= 0 {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, exists := l.windows[key]
	if !exists || now.Sub(w.start) >= l.period {
		l.windows[key] = &window{start: now, count: 1}
		return true, 0
	}

	if w.count >= l.limit {
		return false, w.start.Add(l.period).Sub(now)
	}

	w.count++
	return true, 0
}

// Len returns the number of tracked keys
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
		<-l.done
	})
}

// cleanup periodically removes expired windows
func (l *Limiter) cleanup() {
	defer close(l.done)

	interval := l.period
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.period {
			delete(l.windows, key)
		}
	}
}

// ClientIP extracts the client IP. Proxy headers are only honored when
// trustProxyHeaders is set, i.e. when the server sits behind a proxy that
// overwrites them.
func ClientIP(c *gin.Context, trustProxyHeaders bool) string {
	if trustProxyHeaders {
		// Priority: Cloudflare, nginx, then the first X-Forwarded-For entry
		for _, header := range []string{"CF-Connecting-IP", "True-Client-IP", "X-Real-IP"} {
			if ip := parseIP(c.GetHeader(header)); ip != "" {
				return ip
			}
		}
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			if ip := parseIP(strings.Split(xff, ",")[0]); ip != "" {
				return ip
			}
		}
	}

	if ip := parseIP(c.ClientIP()); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// parseIP validates and extracts an IP address, stripping port if present
func parseIP(ipStr string) string {
	ipStr = strings.TrimSpace(ipStr)
	if ipStr == "" {
		return ""
	}

	if host, _, err := net.SplitHostPort(ipStr); err == nil {
		ipStr = host
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return ""
	}

	return ip.String()
}
