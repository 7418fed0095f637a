package storage

import (
	"regexp"
	"testing"
	"time"
)

func TestNew_DisabledWithoutCredentials(t *testing.T) {
	c, err := New(Options{Endpoint: "http://localhost:9000", Bucket: "media"})
	if err != nil || c != nil {
		t.Fatalf("New = %v, %v; want nil, nil", c, err)
	}
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(Options{Endpoint: "http://localhost:9000", AccessKey: "a", SecretKey: "s"})
	if err == nil {
		t.Fatal("expected error for missing bucket")
	}
}

func TestFileURLAndKeyFromURL(t *testing.T) {
	tests := []struct {
		name      string
		publicURL string
		wantURL   string
	}{
		{"path style", "", "http://localhost:9000/media/products/a.webp"},
		{"cdn", "https://cdn.example.com/", "https://cdn.example.com/products/a.webp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(Options{
				Endpoint:  "http://localhost:9000/",
				Region:    "us-east-1",
				AccessKey: "a",
				SecretKey: "s",
				Bucket:    "media",
				PublicURL: tt.publicURL,
			})
			if err != nil || c == nil {
				t.Fatalf("New: %v", err)
			}
			url := c.FileURL("products/a.webp")
			if url != tt.wantURL {
				t.Errorf("FileURL = %q, want %q", url, tt.wantURL)
			}
			key, ok := c.KeyFromURL(url)
			if !ok || key != "products/a.webp" {
				t.Errorf("KeyFromURL(%q) = %q, %v", url, key, ok)
			}
			if _, ok := c.KeyFromURL("https://elsewhere.example.com/x.jpg"); ok {
				t.Error("KeyFromURL accepted a foreign URL")
			}
		})
	}
}

func TestNewKey(t *testing.T) {
	now := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	re := regexp.MustCompile(`^products/2026/03/[0-9a-f-]{36}\.webp$`)
	if key := NewKey("/products/", ".webp", now); !re.MatchString(key) {
		t.Errorf("NewKey = %q", key)
	}
	if key := NewKey("", ".png", now); key[:6] != "media/" {
		t.Errorf("NewKey default folder = %q", key)
	}
}
