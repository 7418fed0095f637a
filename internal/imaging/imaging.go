// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging inspects uploaded images before they go to object storage.
// It sniffs the content type, probes dimensions without a full decode,
// enforces size limits and produces JPEG thumbnails for the admin panel.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// MaxPixels caps decoded dimensions. 10000x10000 decodes to ~400 MB RGBA.
	MaxPixels = 100_000_000

	// ThumbWidth is the maximum thumbnail width in pixels.
	ThumbWidth = 400

	thumbQuality = 80
)

// ErrUnsupported is returned for content the site does not accept as an image.
var ErrUnsupported = errors.New("unsupported image type")

// allowedTypes maps accepted MIME types to the extension used for storage keys.
var allowedTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// thumbable types can be decoded and scaled. GIF keeps its animation and
// SVG is vector, so neither gets a thumbnail.
var thumbable = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Info describes a probed upload.
type Info struct {
	ContentType string
	Ext         string
	Width       int
	Height      int
	Size        int64
}

// TooLargeError reports an upload over the configured byte limit.
type TooLargeError struct {
	Size, Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file is %s, maximum is %s",
		humanize.Bytes(uint64(e.Size)), humanize.Bytes(uint64(e.Limit)))
}

// Probe validates data as an uploadable image. filename is only consulted
// to recognise SVG, which http.DetectContentType reports as XML or text.
// Raster images are checked against MaxPixels via image.DecodeConfig.
func Probe(data []byte, filename string, limit int64) (*Info, error) {
	size := int64(len(data))
	if limit > 0 && size > limit {
		return nil, &TooLargeError{Size: size, Limit: limit}
	}
	if size == 0 {
		return nil, fmt.Errorf("imaging: empty file")
	}

	ct := DetectType(data, filename)
	ext, ok := allowedTypes[ct]
	if !ok {
		return nil, fmt.Errorf("imaging: %q: %w", ct, ErrUnsupported)
	}
	info := &Info{ContentType: ct, Ext: ext, Size: size}
	if ct == "image/svg+xml" {
		return info, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode config: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("imaging: %dx%d exceeds %s pixels",
			cfg.Width, cfg.Height, humanize.Comma(MaxPixels))
	}
	info.Width, info.Height = cfg.Width, cfg.Height
	return info, nil
}

// DetectType sniffs the first 512 bytes of data.
func DetectType(data []byte, filename string) string {
	ct := http.DetectContentType(data)
	if strings.HasSuffix(strings.ToLower(filename), ".svg") &&
		(strings.Contains(ct, "xml") || strings.Contains(ct, "text/plain")) {
		return "image/svg+xml"
	}
	return ct
}

// Thumbnail scales a probed image down to maxWidth and encodes it as JPEG.
// It returns nil when the image is not thumbable or already narrow enough.
func Thumbnail(data []byte, info *Info, maxWidth int) ([]byte, error) {
	if !thumbable[info.ContentType] || info.Width <= maxWidth {
		return nil, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	bounds := img.Bounds()
	height := int(float64(bounds.Dy()) * float64(maxWidth) / float64(bounds.Dx()))
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("imaging: encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
