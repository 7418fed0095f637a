// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package admin

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"factorysite/internal/apperr"
	"factorysite/internal/models"
	"factorysite/internal/slug"
)

// Validation limits for admin input.
const (
	maxTitleLen       = 300
	maxSlugLen        = 200
	maxDescriptionLen = 5_000
	maxContentLen     = 100_000
	maxExcerptLen     = 1_000
	maxURLLen         = 2_000
	maxFeatures       = 30
	maxSpecifications = 50
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// requireEnglish checks a required bilingual field.
func requireEnglish(field string, t models.Text, max int) error {
	if !t.HasEnglish() {
		return apperr.Invalid(field, "English value is required")
	}
	return maxText(field, t, max)
}

func maxText(field string, t models.Text, max int) error {
	if utf8.RuneCountInString(t.EN) > max || utf8.RuneCountInString(t.HE) > max {
		return apperr.Invalid(field, "is too long (max %d characters)", max)
	}
	return nil
}

// resolveSlug returns the explicit slug, or one generated from the English
// title when the explicit one is blank.
func resolveSlug(explicit string, title models.Text) (string, error) {
	s := strings.TrimSpace(explicit)
	if s == "" {
		s = slug.Generate(title.EN)
	}
	if s == "" {
		return "", apperr.Invalid("slug", "slug is required")
	}
	if utf8.RuneCountInString(s) > maxSlugLen {
		return "", apperr.Invalid("slug", "is too long (max %d characters)", maxSlugLen)
	}
	if !slug.Valid(s) {
		return "", apperr.Invalid("slug", "%q may only contain lowercase letters, digits and single hyphens", s)
	}
	return s, nil
}

// checkURL accepts an empty value, a site-relative path or an absolute
// http(s) URL.
func checkURL(field, raw string) error {
	if raw == "" {
		return nil
	}
	if len(raw) > maxURLLen {
		return apperr.Invalid(field, "is too long (max %d characters)", maxURLLen)
	}
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperr.Invalid(field, "must be an http(s) URL or a path")
	}
	return nil
}

func checkURLs(fields map[string]string) error {
	for field, raw := range fields {
		if err := checkURL(field, raw); err != nil {
			return err
		}
	}
	return nil
}

func checkColor(field, c string) error {
	if c != "" && !hexColor.MatchString(c) {
		return apperr.Invalid(field, "must be a hex color such as #1a2b3c")
	}
	return nil
}
