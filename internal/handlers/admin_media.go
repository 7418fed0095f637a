// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"factorysite/internal/apperr"
	"factorysite/internal/imaging"
	"factorysite/internal/render"
	"factorysite/internal/storage"
)

// MediaStorage is the object store uploads land in. *storage.Client
// satisfies it.
type MediaStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	FileURL(key string) string
	KeyFromURL(rawURL string) (string, bool)
}

// uploadFolders are the key prefixes an upload may be filed under.
var uploadFolders = map[string]bool{
	"media":      true,
	"services":   true,
	"products":   true,
	"stories":    true,
	"hero":       true,
	"partners":   true,
	"categories": true,
}

// Media handles image uploads for the admin forms. The returned URL is
// what the client stores in image_url, gallery_images and similar fields.
type Media struct {
	storage   MediaStorage
	maxUpload int64
	now       func() time.Time
}

// NewMedia creates the media handler group. storage may be nil when no
// bucket is configured; uploads then answer 503.
func NewMedia(storage MediaStorage, maxUpload int64) *Media {
	return &Media{storage: storage, maxUpload: maxUpload, now: time.Now}
}

type uploadResponse struct {
	URL         string `json:"url"`
	ThumbURL    string `json:"thumb_url,omitempty"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Size        string `json:"size"`
}

// Upload accepts a multipart "file" part and an optional "folder" field.
// Raster images wider than imaging.ThumbWidth also get a JPEG thumbnail.
func (m *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if m.storage == nil {
		render.Error(w, http.StatusServiceUnavailable, "Object storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, m.maxUpload+1024)
	if err := r.ParseMultipartForm(m.maxUpload); err != nil {
		render.Errorf(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is %s", humanize.Bytes(uint64(m.maxUpload)))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		render.Failure(w, r, "upload file", apperr.Invalid("file", "no file provided"))
		return
	}
	defer file.Close()

	folder := strings.TrimSpace(r.FormValue("folder"))
	if folder == "" {
		folder = "media"
	}
	if !uploadFolders[folder] {
		render.Failure(w, r, "upload file", apperr.Invalid("folder", "unknown folder %q", folder))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		render.Failure(w, r, "read upload", err)
		return
	}

	info, err := imaging.Probe(data, header.Filename, m.maxUpload)
	if err != nil {
		var tooLarge *imaging.TooLargeError
		if errors.As(err, &tooLarge) {
			render.Error(w, http.StatusRequestEntityTooLarge, tooLarge.Error())
			return
		}
		if errors.Is(err, imaging.ErrUnsupported) {
			render.Failure(w, r, "upload file", apperr.Invalid("file", "file type is not allowed"))
			return
		}
		render.Failure(w, r, "upload file", apperr.Invalid("file", "file is not a readable image"))
		return
	}

	key := storage.NewKey(folder, info.Ext, m.now())
	if err := m.storage.Upload(r.Context(), key, info.ContentType, bytes.NewReader(data), info.Size); err != nil {
		render.Failure(w, r, "upload file", err)
		return
	}

	resp := uploadResponse{
		URL:         m.storage.FileURL(key),
		ContentType: info.ContentType,
		Width:       info.Width,
		Height:      info.Height,
		Size:        humanize.Bytes(uint64(info.Size)),
	}

	thumb, err := imaging.Thumbnail(data, info, imaging.ThumbWidth)
	switch {
	case err != nil:
		slog.Warn("thumbnail generation failed", "key", key, "error", err)
	case thumb != nil:
		thumbKey := strings.TrimSuffix(key, info.Ext) + "_thumb.jpg"
		if err := m.storage.Upload(r.Context(), thumbKey, "image/jpeg", bytes.NewReader(thumb), int64(len(thumb))); err != nil {
			slog.Warn("thumbnail upload failed", "key", thumbKey, "error", err)
		} else {
			resp.ThumbURL = m.storage.FileURL(thumbKey)
		}
	}

	slog.Info("media uploaded", "key", key, "type", info.ContentType, "size", resp.Size)
	render.Created(w, resp)
}

// Delete removes the object behind ?url=. URLs outside the bucket are
// rejected so a record pointing at an external image is never touched.
func (m *Media) Delete(w http.ResponseWriter, r *http.Request) {
	if m.storage == nil {
		render.Error(w, http.StatusServiceUnavailable, "Object storage is not configured")
		return
	}
	key, ok := m.storage.KeyFromURL(r.URL.Query().Get("url"))
	if !ok {
		render.Failure(w, r, "delete file", apperr.Invalid("url", "not an uploaded file"))
		return
	}
	if err := m.storage.Delete(r.Context(), key); err != nil {
		render.Failure(w, r, "delete file", err)
		return
	}
	slog.Info("media deleted", "key", key)
	render.NoContent(w)
}
