package locale

import (
	"strings"

	"github.com/goliatone/go-catalog/internal/domain"
)

// Preference is the locale a caller asked for. Explicit is false when neither
// a query value nor a header was supplied; Locale then holds the default.
type Preference struct {
	Locale   string
	Explicit bool
}

// ResolvePreference picks the caller preference. A query value wins over the
// Accept-Language header.
func (r *Resolver) ResolvePreference(query, header string) Preference {
	if query = strings.TrimSpace(query); query != "" {
		return Preference{Locale: r.DetectLocale(query), Explicit: true}
	}
	if header = strings.TrimSpace(header); header != "" {
		return Preference{Locale: r.DetectLocale(header), Explicit: true}
	}
	return Preference{Locale: r.defaultLocale}
}

// Render attaches meta fields and, when the preference was explicit,
// collapses the listed bundles to plain strings. Without a preference the
// bundles are returned intact so clients can pick a locale themselves.
func (r *Resolver) Render(doc domain.Document, pref Preference, opts Options) domain.Document {
	out := r.AttachMetaFields(doc, pref.Locale)
	if !pref.Explicit {
		return out
	}
	return r.LocalizeDoc(out, pref.Locale, opts)
}

// RenderList applies Render element-wise, keeping order.
func (r *Resolver) RenderList(docs []domain.Document, pref Preference, opts Options) []domain.Document {
	out := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, r.Render(doc, pref, opts))
	}
	return out
}
