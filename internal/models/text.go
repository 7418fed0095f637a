// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"

	"factorysite/internal/i18n"
)

// Text is a bilingual field. English is the canonical value; Hebrew is
// optional and falls back to English at display time.
type Text struct {
	EN string `json:"en"`
	HE string `json:"he"`
}

// T is shorthand for building a Text in fixtures and tests.
func T(en, he string) Text {
	return Text{EN: en, HE: he}
}

// In returns the value for lang with English fallback.
func (t Text) In(lang i18n.Lang) string {
	return i18n.Pick(t.EN, t.HE, lang)
}

// HasEnglish reports whether the canonical English value is present.
func (t Text) HasEnglish() bool {
	return strings.TrimSpace(t.EN) != ""
}

// Trimmed returns the Text with surrounding whitespace removed.
func (t Text) Trimmed() Text {
	return Text{EN: strings.TrimSpace(t.EN), HE: strings.TrimSpace(t.HE)}
}

// TextList is a pair of parallel ordered lists (features_en / features_he).
type TextList struct {
	EN []string `json:"en"`
	HE []string `json:"he"`
}

// In returns the list for lang. Hebrew items that are blank fall back to the
// English item at the same position; a Hebrew list shorter than the English
// one is padded from English.
func (l TextList) In(lang i18n.Lang) []string {
	out := make([]string, len(l.EN))
	for i, en := range l.EN {
		he := ""
		if i < len(l.HE) {
			he = l.HE[i]
		}
		out[i] = i18n.Pick(en, he, lang)
	}
	return out
}

// Clone returns a deep copy.
func (l TextList) Clone() TextList {
	return TextList{EN: cloneStrings(l.EN), HE: cloneStrings(l.HE)}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// textFields exposes named Text values as *_en / *_he columns for
// i18n.Resolve.
func textFields(name string, fields map[string]Text) string {
	i := strings.LastIndexByte(name, '_')
	if i < 0 {
		return ""
	}
	t, ok := fields[name[:i]]
	if !ok {
		return ""
	}
	switch i18n.Lang(name[i+1:]) {
	case i18n.English:
		return t.EN
	case i18n.Hebrew:
		return t.HE
	}
	return ""
}
