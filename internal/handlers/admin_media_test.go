package handlers

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeBucket records uploads in memory.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut bool
}

func newFakeBucket() *fakeBucket { return &fakeBucket{objects: map[string][]byte{}} }

const fakeBase = "https://cdn.example.com/media"

func (b *fakeBucket) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	if b.failPut {
		return errors.New("bucket unreachable")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = data
	return nil
}

func (b *fakeBucket) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *fakeBucket) FileURL(key string) string { return fakeBase + "/" + key }

func (b *fakeBucket) KeyFromURL(raw string) (string, bool) {
	if !strings.HasPrefix(raw, fakeBase+"/") {
		return "", false
	}
	return strings.TrimPrefix(raw, fakeBase+"/"), true
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func uploadRequest(t *testing.T, filename string, data []byte, folder string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if folder != "" {
		mw.WriteField("folder", folder)
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(data)
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/admin/api/media", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newMedia(bucket MediaStorage) *Media {
	m := NewMedia(bucket, 1<<20)
	m.now = func() time.Time { return time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC) }
	return m
}

func TestMediaUploadWithThumbnail(t *testing.T) {
	bucket := newFakeBucket()
	m := newMedia(bucket)

	rec := httptest.NewRecorder()
	m.Upload(rec, uploadRequest(t, "door.png", pngBytes(t, 800, 200), "products"))
	wantStatus(t, rec, http.StatusCreated)

	got := decode[uploadResponse](t, rec)
	if !strings.HasPrefix(got.URL, fakeBase+"/products/2026/10/") || !strings.HasSuffix(got.URL, ".png") {
		t.Errorf("url = %q", got.URL)
	}
	if !strings.HasSuffix(got.ThumbURL, "_thumb.jpg") {
		t.Errorf("thumb_url = %q", got.ThumbURL)
	}
	if got.Width != 800 || got.Height != 200 || got.ContentType != "image/png" {
		t.Errorf("response = %+v", got)
	}
	if len(bucket.objects) != 2 {
		t.Errorf("objects stored = %d, want original and thumbnail", len(bucket.objects))
	}
}

func TestMediaUploadSmallImageHasNoThumbnail(t *testing.T) {
	bucket := newFakeBucket()
	rec := httptest.NewRecorder()
	newMedia(bucket).Upload(rec, uploadRequest(t, "logo.png", pngBytes(t, 120, 40), ""))
	wantStatus(t, rec, http.StatusCreated)
	got := decode[uploadResponse](t, rec)
	if got.ThumbURL != "" || !strings.Contains(got.URL, "/media/2026/10/") {
		t.Errorf("response = %+v", got)
	}
}

func TestMediaUploadRejects(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		folder   string
		want     int
	}{
		{"pdf", "brochure.pdf", []byte("%PDF-1.4 fake"), "", http.StatusUnprocessableEntity},
		{"text", "notes.png", []byte("just some text"), "", http.StatusUnprocessableEntity},
		{"unknown folder", "door.png", nil, "../etc", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			if data == nil {
				data = pngBytes(t, 10, 10)
			}
			rec := httptest.NewRecorder()
			newMedia(newFakeBucket()).Upload(rec, uploadRequest(t, tt.filename, data, tt.folder))
			wantStatus(t, rec, tt.want)
		})
	}
}

func TestMediaUploadWithoutStorage(t *testing.T) {
	rec := httptest.NewRecorder()
	NewMedia(nil, 1<<20).Upload(rec, uploadRequest(t, "door.png", pngBytes(t, 10, 10), ""))
	wantStatus(t, rec, http.StatusServiceUnavailable)
}

func TestMediaUploadStorageFailure(t *testing.T) {
	bucket := newFakeBucket()
	bucket.failPut = true
	rec := httptest.NewRecorder()
	newMedia(bucket).Upload(rec, uploadRequest(t, "door.png", pngBytes(t, 10, 10), ""))
	wantStatus(t, rec, http.StatusInternalServerError)
}

func TestMediaDelete(t *testing.T) {
	bucket := newFakeBucket()
	bucket.objects["products/2026/10/a.png"] = []byte("x")
	m := newMedia(bucket)

	rec := call(t, m.Delete, http.MethodDelete, "/?url=https://elsewhere.example.org/a.png", nil)
	wantStatus(t, rec, http.StatusUnprocessableEntity)

	rec = call(t, m.Delete, http.MethodDelete, "/?url="+fakeBase+"/products/2026/10/a.png", nil)
	wantStatus(t, rec, http.StatusNoContent)
	if len(bucket.objects) != 0 {
		t.Error("object not deleted")
	}
}
