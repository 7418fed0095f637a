// Package session keeps admin logins in Valkey. The browser holds only a
// random identifier cookie; the payload lives under a TTL'd key.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the admin session cookie.
	CookieName = "fs_admin"

	// DefaultTTL bounds an idle admin session.
	DefaultTTL = 12 * time.Hour

	keyPrefix = "admin_session:"
	idLength  = 32
)

// ErrNoSession is returned by Update when the request carries no cookie.
var ErrNoSession = errors.New("session: no session cookie")

// Data is the payload stored per session.
type Data struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	TwoFADone   bool      `json:"two_fa_done"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store manages sessions in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewStore returns a store. secure marks the cookie Secure, which
// production deployments behind TLS need.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{client: client, ttl: DefaultTTL, secure: secure}
}

// Create stores data under a fresh identifier and sets the cookie.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}
	data.CreatedAt = time.Now().UTC()
	if err := s.save(ctx, id, data); err != nil {
		return "", err
	}
	http.SetCookie(w, s.cookie(id, int(s.ttl.Seconds())))
	return id, nil
}

// Get loads the session named by the request cookie. A missing cookie or
// an expired key yields (nil, nil).
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, nil
	}

	payload, err := s.client.Get(ctx, keyPrefix+c.Value).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}
	return &data, nil
}

// Update overwrites the session payload and resets its TTL.
func (s *Store) Update(ctx context.Context, r *http.Request, data *Data) error {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return ErrNoSession
	}
	return s.save(ctx, c.Value, data)
}

// Destroy deletes the session and expires the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	http.SetCookie(w, s.cookie("", -1))
	if err := s.client.Del(ctx, keyPrefix+c.Value).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, id string, data *Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}

func (s *Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/admin",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
