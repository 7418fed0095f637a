// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n resolves bilingual (English/Hebrew) content for display.
// The active language is never global: callers carry a Lang value from the
// request and pass it to every read.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported display language code.
type Lang string

const (
	English Lang = "en"
	Hebrew  Lang = "he"
)

// Default is the fallback language for every lookup.
const Default = English

// Supported lists the languages the site serves, fallback first.
var Supported = []Lang{English, Hebrew}

// matcher orders tags the same way as Supported so that index 0 is the
// fallback when nothing in Accept-Language matches.
var matcher = language.NewMatcher([]language.Tag{language.English, language.Hebrew})

// Parse validates a language code. Unknown codes report false.
func Parse(s string) (Lang, bool) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, true
	case Hebrew, "iw":
		return Hebrew, true
	}
	return "", false
}

// Dir returns the text direction for the language ("rtl" or "ltr").
func (l Lang) Dir() string {
	if l == Hebrew {
		return "rtl"
	}
	return "ltr"
}

// Negotiate picks the language for a request. An explicit choice (query
// parameter or persisted cookie) wins, then the Accept-Language header,
// then fallback.
func Negotiate(explicit, cookie, acceptLanguage string, fallback Lang) Lang {
	for _, candidate := range []string{explicit, cookie} {
		if l, ok := Parse(candidate); ok {
			return l
		}
	}
	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return Supported[idx]
			}
		}
	}
	if _, ok := Parse(string(fallback)); ok {
		return fallback
	}
	return Default
}

// Fields is any record exposing its per-language columns by name,
// e.g. Field("title_he").
type Fields interface {
	Field(name string) string
}

// Map adapts a plain column map (a decoded JSON row or a settings blob).
type Map map[string]string

// Field implements Fields.
func (m Map) Field(name string) string { return m[name] }

// Resolve returns base_<lang> from the record, falling back to base_en and
// then to the empty string. Absence is data, not failure.
func Resolve(record Fields, base string, lang Lang) string {
	if record == nil {
		return ""
	}
	if lang != English {
		if v := strings.TrimSpace(record.Field(base + "_" + string(lang))); v != "" {
			return record.Field(base + "_" + string(lang))
		}
	}
	return record.Field(base + "_" + string(English))
}

// Pick chooses between an English and Hebrew value with the same fallback
// rule as Resolve.
func Pick(en, he string, lang Lang) string {
	if lang == Hebrew && strings.TrimSpace(he) != "" {
		return he
	}
	return en
}
