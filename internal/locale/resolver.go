package locale

import (
	"net/http"
	"slices"
	"strings"

	"github.com/goliatone/go-catalog/internal/domain"
	"golang.org/x/text/language"
)

// VaryHeader is advertised on every response rendered through the resolver so
// intermediary caches keep per-locale variants apart.
const VaryHeader = "Accept-Language"

const (
	fieldMetaTitle       = "metaTitle"
	fieldMetaDescription = "metaDescription"
)

var (
	metaTitleSources       = []string{"seoTitle", "name", "title"}
	metaDescriptionSources = []string{"seoDescription", "shortDescription", "description"}
)

// Config carries the process-wide locale defaults.
type Config struct {
	DefaultLocale     string
	Supported         []string
	PrimaryFallback   string
	SecondaryFallback string
}

// DefaultConfig mirrors the storefront defaults: Vietnamese first, English fallback.
func DefaultConfig() Config {
	return Config{
		DefaultLocale:     "vi",
		Supported:         []string{"vi", "en"},
		PrimaryFallback:   "en",
		SecondaryFallback: "vi",
	}
}

// Options declares which top-level document fields hold localized bundles.
type Options struct {
	Fields []string
}

// Resolver renders localized bundles. It holds no mutable state and is safe
// for concurrent use.
type Resolver struct {
	defaultLocale     string
	supported         []string
	primaryFallback   string
	secondaryFallback string
}

// New builds a resolver. Blank values fall back to DefaultConfig.
func New(cfg Config) *Resolver {
	defaults := DefaultConfig()
	r := &Resolver{
		defaultLocale:     normalizeCode(cfg.DefaultLocale),
		primaryFallback:   normalizeCode(cfg.PrimaryFallback),
		secondaryFallback: normalizeCode(cfg.SecondaryFallback),
	}
	if r.defaultLocale == "" {
		r.defaultLocale = defaults.DefaultLocale
	}
	if r.primaryFallback == "" {
		r.primaryFallback = defaults.PrimaryFallback
	}
	if r.secondaryFallback == "" {
		r.secondaryFallback = defaults.SecondaryFallback
	}
	for _, code := range cfg.Supported {
		if code = normalizeCode(code); code != "" && !slices.Contains(r.supported, code) {
			r.supported = append(r.supported, code)
		}
	}
	if !slices.Contains(r.supported, r.defaultLocale) {
		r.supported = append(r.supported, r.defaultLocale)
	}
	return r
}

// DefaultLocale returns the process default locale.
func (r *Resolver) DefaultLocale() string {
	return r.defaultLocale
}

// Supported returns a copy of the supported locale set.
func (r *Resolver) Supported() []string {
	return slices.Clone(r.supported)
}

// IsSupported reports whether code (any case) is in the supported set.
func (r *Resolver) IsSupported(code string) bool {
	return slices.Contains(r.supported, normalizeCode(code))
}

// DetectLocale maps a preference header or query value onto a supported
// locale. It never fails: empty or unmatched input yields the default.
func (r *Resolver) DetectLocale(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return r.defaultLocale
	}
	for _, candidate := range preferenceSegments(header) {
		if r.IsSupported(candidate) {
			return candidate
		}
	}
	return r.defaultLocale
}

// BuildPriorityChain returns the ordered lookup sequence: preferred, primary
// fallback, default, secondary fallback. Blank entries are skipped and the
// first occurrence of each code wins.
func (r *Resolver) BuildPriorityChain(preferred string) []string {
	raw := []string{preferred, r.primaryFallback, r.defaultLocale, r.secondaryFallback}
	chain := make([]string, 0, len(raw))
	for _, code := range raw {
		code = normalizeCode(code)
		if code == "" || slices.Contains(chain, code) {
			continue
		}
		chain = append(chain, code)
	}
	return chain
}

// PickLocalizedValue resolves a bundle against chain. Plain strings are
// returned unchanged. The boolean is false when nothing resolves.
func PickLocalizedValue(value any, chain []string) (string, bool) {
	switch typed := value.(type) {
	case nil:
		return "", false
	case string:
		return typed, true
	case domain.LocalizedString:
		return pickFrom(chain, func(code string) (string, bool) {
			v, ok := typed[code]
			return v, ok
		})
	case map[string]string:
		return pickFrom(chain, func(code string) (string, bool) {
			v, ok := typed[code]
			return v, ok
		})
	case map[string]any:
		return pickFrom(chain, func(code string) (string, bool) {
			v, ok := typed[code].(string)
			return v, ok
		})
	default:
		return "", false
	}
}

func pickFrom(chain []string, lookup func(string) (string, bool)) (string, bool) {
	for _, code := range chain {
		if value, ok := lookup(code); ok && strings.TrimSpace(value) != "" {
			return value, true
		}
	}
	return "", false
}

// LocalizeDoc returns a copy of doc where every field listed in opts holds
// the resolved string. Fields that resolve to nothing are dropped; fields
// not listed are left untouched. Nested values are not visited.
func (r *Resolver) LocalizeDoc(doc domain.Document, locale string, opts Options) domain.Document {
	if doc == nil {
		return nil
	}
	out := doc.Clone()
	chain := r.BuildPriorityChain(locale)
	for _, field := range opts.Fields {
		value, ok := out[field]
		if !ok {
			continue
		}
		if resolved, found := PickLocalizedValue(value, chain); found {
			out[field] = resolved
		} else {
			delete(out, field)
		}
	}
	return out
}

// LocalizeList applies LocalizeDoc element-wise, keeping order.
func (r *Resolver) LocalizeList(docs []domain.Document, locale string, opts Options) []domain.Document {
	out := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, r.LocalizeDoc(doc, locale, opts))
	}
	return out
}

// AttachMetaFields derives plain metaTitle and metaDescription strings while
// leaving the localized bundles in place.
func (r *Resolver) AttachMetaFields(doc domain.Document, locale string) domain.Document {
	if doc == nil {
		return nil
	}
	out := doc.Clone()
	chain := r.BuildPriorityChain(locale)
	if title, ok := firstResolved(out, metaTitleSources, chain); ok {
		out[fieldMetaTitle] = title
	} else {
		delete(out, fieldMetaTitle)
	}
	if description, ok := firstResolved(out, metaDescriptionSources, chain); ok {
		out[fieldMetaDescription] = description
	} else {
		delete(out, fieldMetaDescription)
	}
	return out
}

func firstResolved(doc domain.Document, fields, chain []string) (string, bool) {
	for _, field := range fields {
		value, ok := PickLocalizedValue(doc[field], chain)
		if ok && strings.TrimSpace(value) != "" {
			return value, true
		}
	}
	return "", false
}

// MarkVaries appends the Vary header unless it is already advertised.
func MarkVaries(header http.Header) {
	if header == nil {
		return
	}
	for _, existing := range header.Values("Vary") {
		for part := range strings.SplitSeq(existing, ",") {
			if strings.EqualFold(strings.TrimSpace(part), VaryHeader) {
				return
			}
		}
	}
	header.Add("Vary", VaryHeader)
}

// preferenceSegments lists base language codes in preference order. It uses
// the x/text parser first and degrades to a plain comma split when the input
// is not a well-formed Accept-Language value.
func preferenceSegments(header string) []string {
	if tags, _, err := language.ParseAcceptLanguage(header); err == nil && len(tags) > 0 {
		out := make([]string, 0, len(tags))
		for _, tag := range tags {
			base, _ := tag.Base()
			if code := normalizeCode(base.String()); code != "" && code != "und" {
				out = append(out, code)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	out := []string{}
	for part := range strings.SplitSeq(header, ",") {
		if idx := strings.IndexByte(part, ';'); idx >= 0 {
			part = part[:idx]
		}
		if idx := strings.IndexAny(part, "-_"); idx >= 0 {
			part = part[:idx]
		}
		if code := normalizeCode(part); code != "" {
			out = append(out, code)
		}
	}
	return out
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
