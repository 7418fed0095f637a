// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"factorysite/internal/render"
)

// bucket counts one client's requests in the current window.
type bucket struct {
	count   int
	resetAt time.Time
}

// RateLimiter gives every client IP a fixed budget of requests per
// window. The public forms and the admin login each get their own
// limiter, so exhausting one budget leaves the other untouched.
type RateLimiter struct {
	name   string
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter returns a limiter named name (used in logs) allowing
// limit requests per window and per client. Idle buckets are swept in the
// background until Stop is called.
func NewRateLimiter(name string, limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		name:    name,
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	go rl.sweepEvery(max(window, time.Minute))
	return rl
}

// Stop ends the background sweep.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) sweepEvery(d time.Duration) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

// take spends one request of client's budget. When the budget is used up
// it reports false and how long until the window resets.
func (rl *RateLimiter) take(client string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[client]
	if !ok || !now.Before(b.resetAt) {
		b = &bucket{resetAt: now.Add(rl.window)}
		rl.buckets[client] = b
	}
	if b.count >= rl.limit {
		return false, b.resetAt.Sub(now)
	}
	b.count++
	return true, 0
}

// sweep drops buckets whose window has ended.
func (rl *RateLimiter) sweep() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for client, b := range rl.buckets {
		if !now.Before(b.resetAt) {
			delete(rl.buckets, client)
		}
	}
}

// Middleware rejects requests over budget with 429 and a Retry-After
// header in whole seconds.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ok, wait := rl.take(ip)
		if !ok {
			slog.Warn("rate limit exceeded", "limiter", rl.name, "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			render.Error(w, http.StatusTooManyRequests, "Too many requests, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the originating client address: the first hop of
// X-Forwarded-For, then X-Real-IP, then the connection's host.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
