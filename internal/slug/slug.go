// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug builds URL-friendly identifiers from English titles and
// derives free variants for duplicated records.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// disallowed matches anything that isn't a letter, digit, space or hyphen.
	disallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	// separators collapses runs of whitespace and hyphens into one hyphen.
	separators = regexp.MustCompile(`[\s-]+`)
	valid      = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Generate creates a slug from s. Accents are folded to their base letter
// and anything outside [a-z0-9] is dropped.
// Example: "Café Doors & Drawers" → "cafe-doors-drawers"
func Generate(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	result := strings.ToLower(strings.TrimSpace(folded))
	result = disallowed.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Valid reports whether s is already a well-formed slug.
func Valid(s string) bool {
	return valid.MatchString(s)
}

// Copy returns the first of base-copy, base-copy-2, base-copy-3, ... for
// which taken reports false.
func Copy(base string, taken func(string) bool) string {
	candidate := base + "-copy"
	for n := 2; taken(candidate); n++ {
		candidate = fmt.Sprintf("%s-copy-%d", base, n)
	}
	return candidate
}
