package domain

import (
	"maps"
	"strings"
)

// LocalizedString maps locale codes ("en", "vi", ...) to text.
type LocalizedString map[string]string

// Get returns the trimmed value stored for locale, if any.
func (l LocalizedString) Get(locale string) string {
	if l == nil {
		return ""
	}
	return strings.TrimSpace(l[locale])
}

// IsEmpty reports whether no locale carries non-blank text.
func (l LocalizedString) IsEmpty() bool {
	for _, value := range l {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// Compact returns a copy without blank entries. Keys are lowercased and trimmed.
func (l LocalizedString) Compact() LocalizedString {
	if len(l) == 0 {
		return nil
	}
	out := make(LocalizedString, len(l))
	for locale, value := range l {
		locale = strings.ToLower(strings.TrimSpace(locale))
		if locale == "" || strings.TrimSpace(value) == "" {
			continue
		}
		out[locale] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Clone returns a shallow copy; nil stays nil.
func (l LocalizedString) Clone() LocalizedString {
	if l == nil {
		return nil
	}
	return maps.Clone(l)
}

// Equal reports whether both bundles hold the same non-blank entries.
func (l LocalizedString) Equal(other LocalizedString) bool {
	left, right := l.Compact(), other.Compact()
	if len(left) != len(right) {
		return false
	}
	for locale, value := range left {
		if right[locale] != value {
			return false
		}
	}
	return true
}

// Document is the plain record shape handed to the locale resolver and
// returned to callers. Storage adapters convert their models into documents.
type Document map[string]any

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}
