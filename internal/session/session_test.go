package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// testValkey connects to the Valkey named by VALKEY_HOST/VALKEY_PORT on
// database 15 and skips the test when it is unreachable.
func testValkey(t *testing.T) *redis.Client {
	t.Helper()
	host, port := os.Getenv("VALKEY_HOST"), os.Getenv("VALKEY_PORT")
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}
	t.Cleanup(func() {
		if keys, _ := client.Keys(ctx, keyPrefix+"*").Result(); len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return client
}

// adminRequest returns a request under /admin/api carrying the cookies
// set on rec.
func adminRequest(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/admin/api/session", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", CookieName)
	return nil
}

func TestCookieScopedToAdmin(t *testing.T) {
	tests := []struct {
		name   string
		secure bool
		value  string
		maxAge int
	}{
		{"login", false, "abc", int(DefaultTTL.Seconds())},
		{"login over tls", true, "abc", int(DefaultTTL.Seconds())},
		{"logout", true, "", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := (&Store{secure: tt.secure}).cookie(tt.value, tt.maxAge)
			if c.Path != "/admin" {
				t.Errorf("Path = %q, want /admin so public pages never carry the session", c.Path)
			}
			if !c.HttpOnly || c.SameSite != http.SameSiteLaxMode {
				t.Errorf("HttpOnly/SameSite = %v/%v", c.HttpOnly, c.SameSite)
			}
			if c.Secure != tt.secure || c.MaxAge != tt.maxAge || c.Value != tt.value {
				t.Errorf("cookie = %+v", c)
			}
		})
	}
}

// Without a cookie nothing reaches Valkey, so a nil client is fine.
func TestNoCookie(t *testing.T) {
	s := &Store{}
	ctx := context.Background()
	req := httptest.NewRequest(http.MethodGet, "/admin/api/session", nil)

	if data, err := s.Get(ctx, req); data != nil || err != nil {
		t.Errorf("Get = %v, %v; want nil, nil", data, err)
	}
	if err := s.Update(ctx, req, &Data{TwoFADone: true}); !errors.Is(err, ErrNoSession) {
		t.Errorf("Update err = %v, want ErrNoSession", err)
	}
	rec := httptest.NewRecorder()
	if err := s.Destroy(ctx, rec, req); err != nil {
		t.Errorf("Destroy err = %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("Destroy without a session should not touch cookies")
	}
}

// A password login creates a session pending 2FA; verifying the code
// upgrades the same session in place.
func TestTwoFAPendingSessionUpgrades(t *testing.T) {
	s := NewStore(testValkey(t), false)
	ctx := context.Background()
	userID := uuid.New()

	rec := httptest.NewRecorder()
	id, err := s.Create(ctx, rec, &Data{UserID: userID, Email: "owner@factory.example", DisplayName: "Plant Owner"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(id) != 2*idLength {
		t.Errorf("session id length = %d, want %d hex chars", len(id), 2*idLength)
	}
	if c := sessionCookie(t, rec); c.Value != id || c.Path != "/admin" {
		t.Errorf("cookie = %q at %q", c.Value, c.Path)
	}

	req := adminRequest(rec)
	pending, err := s.Get(ctx, req)
	if err != nil || pending == nil {
		t.Fatalf("Get pending: %v, %v", pending, err)
	}
	if pending.TwoFADone {
		t.Error("a fresh login must wait for its second factor")
	}
	if pending.UserID != userID || pending.Email != "owner@factory.example" || pending.CreatedAt.IsZero() {
		t.Errorf("pending session = %+v", pending)
	}

	pending.TwoFADone = true
	if err := s.Update(ctx, req, pending); err != nil {
		t.Fatalf("Update: %v", err)
	}
	done, err := s.Get(ctx, req)
	if err != nil || done == nil || !done.TwoFADone {
		t.Fatalf("Get after 2FA = %+v, %v", done, err)
	}
	if !done.CreatedAt.Equal(pending.CreatedAt) {
		t.Errorf("CreatedAt changed on upgrade: %v -> %v", pending.CreatedAt, done.CreatedAt)
	}

	ttl, err := s.client.TTL(ctx, keyPrefix+id).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= DefaultTTL-time.Minute || ttl > DefaultTTL {
		t.Errorf("TTL after upgrade = %v, want about %v", ttl, DefaultTTL)
	}
}

func TestExpiredSessionIsLoggedOut(t *testing.T) {
	client := testValkey(t)
	s := NewStore(client, false)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	id, err := s.Create(ctx, rec, &Data{UserID: uuid.New(), Email: "clerk@factory.example"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	client.Del(ctx, keyPrefix+id)

	if data, err := s.Get(ctx, adminRequest(rec)); data != nil || err != nil {
		t.Errorf("Get on expired key = %v, %v; want nil, nil", data, err)
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	client := testValkey(t)
	s := NewStore(client, true)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	id, err := s.Create(ctx, rec, &Data{UserID: uuid.New(), Email: "owner@factory.example", TwoFADone: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !sessionCookie(t, rec).Secure {
		t.Error("cookie should be Secure when the store is")
	}

	out := httptest.NewRecorder()
	if err := s.Destroy(ctx, out, adminRequest(rec)); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if c := sessionCookie(t, out); c.MaxAge >= 0 || c.Path != "/admin" {
		t.Errorf("logout cookie MaxAge/Path = %d/%q", c.MaxAge, c.Path)
	}
	if n, _ := client.Exists(ctx, keyPrefix+id).Result(); n != 0 {
		t.Error("session key should be deleted")
	}
}
