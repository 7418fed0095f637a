package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// fakeClock is a settable time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(t *testing.T, name string, limit int, window time.Duration) (*RateLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(name, limit, window)
	rl.now = clock.now
	t.Cleanup(rl.Stop)
	return rl, clock
}

func TestRateLimiterBudgetPerClient(t *testing.T) {
	rl, _ := newTestLimiter(t, "forms", 3, time.Minute)

	for i := range 3 {
		if ok, _ := rl.take("10.0.0.1"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	ok, wait := rl.take("10.0.0.1")
	if ok {
		t.Fatal("4th request should be limited")
	}
	if wait != time.Minute {
		t.Errorf("wait = %v, want 1m", wait)
	}
	if ok, _ := rl.take("10.0.0.2"); !ok {
		t.Error("another client has its own budget")
	}
}

func TestRateLimiterWindowResets(t *testing.T) {
	rl, clock := newTestLimiter(t, "forms", 2, time.Minute)

	rl.take("10.0.0.1")
	clock.advance(40 * time.Second)
	rl.take("10.0.0.1")
	if ok, wait := rl.take("10.0.0.1"); ok || wait != 20*time.Second {
		t.Fatalf("take = %v, %v; want limited for 20s", ok, wait)
	}

	clock.advance(20 * time.Second)
	if ok, _ := rl.take("10.0.0.1"); !ok {
		t.Error("budget should refill once the window ends")
	}
}

// The contact/quote forms and the admin login are limited separately, the
// way the router wires them.
func TestFormAndLoginBudgetsAreSeparate(t *testing.T) {
	forms, _ := newTestLimiter(t, "forms", 2, time.Minute)
	login, _ := newTestLimiter(t, "login", 3, time.Minute)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	routes := http.NewServeMux()
	routes.Handle("POST /api/v1/quote", forms.Middleware(ok))
	routes.Handle("POST /admin/api/login", login.Middleware(ok))

	post := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "203.0.113.7:50000"
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, req)
		return rec
	}

	for i := range 2 {
		if rec := post("/api/v1/quote"); rec.Code != http.StatusOK {
			t.Fatalf("quote %d: status %d", i+1, rec.Code)
		}
	}
	rec := post("/api/v1/quote")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("3rd quote: status %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}

	for i := range 3 {
		if rec := post("/admin/api/login"); rec.Code != http.StatusOK {
			t.Fatalf("login %d after forms exhausted: status %d", i+1, rec.Code)
		}
	}
	if rec := post("/admin/api/login"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("4th login: status %d, want 429", rec.Code)
	}
}

func TestRateLimiterSweep(t *testing.T) {
	rl, clock := newTestLimiter(t, "login", 5, time.Minute)

	rl.take("old")
	clock.advance(50 * time.Second)
	rl.take("fresh")
	clock.advance(15 * time.Second)
	rl.sweep()

	rl.mu.Lock()
	_, oldKept := rl.buckets["old"]
	_, freshKept := rl.buckets["fresh"]
	rl.mu.Unlock()
	if oldKept {
		t.Error("expired bucket should be swept")
	}
	if !freshKept {
		t.Error("bucket inside its window should be kept")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff, xri   string
		remoteAddr string
		want       string
	}{
		{"forwarded chain", "198.51.100.4, 10.0.0.1", "", "10.0.0.1:443", "198.51.100.4"},
		{"real ip", "", " 198.51.100.5 ", "10.0.0.1:443", "198.51.100.5"},
		{"ipv4 remote", "", "", "203.0.113.9:51234", "203.0.113.9"},
		{"ipv6 remote", "", "", "[2001:db8::1]:51234", "2001:db8::1"},
		{"remote without port", "", "", "203.0.113.9", "203.0.113.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
