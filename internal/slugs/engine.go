package slugs

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// firstSuffix is the number appended to the first colliding candidate.
const firstSuffix = 2

// SlugChecker reports whether a slug is already held by a record other than exclude.
type SlugChecker interface {
	SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
}

// NameChecker reports whether another record in category matches name in any
// of the supplied locales.
type NameChecker interface {
	NameConflictExists(ctx context.Context, category string, name domain.LocalizedString, exclude uuid.UUID) (bool, error)
}

// SlugCheckerFunc adapts a function to SlugChecker.
type SlugCheckerFunc func(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)

func (f SlugCheckerFunc) SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	return f(ctx, slug, exclude)
}

// DefaultFallbackToken is the slug base used when no name or explicit slug
// normalizes to anything.
const DefaultFallbackToken = "product"

// Config carries the locales consulted when deriving a slug from a name and
// the token used when nothing usable remains.
type Config struct {
	NameLocales   []string
	FallbackToken string
}

// DefaultConfig derives from English, then the default locale, then Vietnamese.
func DefaultConfig(defaultLocale string) Config {
	return Config{
		NameLocales:   []string{"en", defaultLocale, "vi"},
		FallbackToken: DefaultFallbackToken,
	}
}

// Subject is the identity-relevant slice of an entity being written.
type Subject struct {
	ID   uuid.UUID
	Slug string
	Name domain.LocalizedString
}

// Snapshot is the identity state already persisted for an entity.
type Snapshot struct {
	Slug string
	Name domain.LocalizedString
}

// Engine derives unique slugs and guards the (category, name) invariant. It
// performs no I/O besides calling the injected checkers.
type Engine struct {
	nameLocales []string
	fallback    string
}

// New builds an engine from cfg.
func New(cfg Config) *Engine {
	e := &Engine{fallback: Normalize(cfg.FallbackToken)}
	if e.fallback == "" {
		e.fallback = DefaultFallbackToken
	}
	seen := map[string]bool{}
	for _, code := range cfg.NameLocales {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		e.nameLocales = append(e.nameLocales, code)
	}
	return e
}

// FallbackToken returns the token used when no base text normalizes to a slug.
func (e *Engine) FallbackToken() string {
	return e.fallback
}

// Normalize folds text into a URL-safe slug: decomposes, drops combining
// marks, lowercases and collapses every run of characters outside [a-z0-9]
// into a single hyphen. All-symbol input yields "".
func Normalize(text string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), text)
	if err != nil {
		folded = text
	}
	folded = strings.TrimSpace(strings.ToLower(folded))

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// NameBase returns the name text a slug would be derived from, or "".
func (e *Engine) NameBase(name domain.LocalizedString) string {
	for _, code := range e.nameLocales {
		if value := name.Get(code); value != "" {
			return value
		}
	}
	return ""
}

// DeriveBase picks the raw text a slug is built from: explicit slug, then the
// configured name locales, then the fallback token.
func (e *Engine) DeriveBase(subject Subject) string {
	if explicit := strings.TrimSpace(subject.Slug); explicit != "" {
		return explicit
	}
	if base := e.NameBase(subject.Name); base != "" {
		return base
	}
	return e.fallback
}

// Candidate returns the normalized base for subject, never empty.
func (e *Engine) Candidate(subject Subject) string {
	if candidate := Normalize(e.DeriveBase(subject)); candidate != "" {
		return candidate
	}
	return e.fallback
}

// AssignUniqueSlug probes base, base-2, base-3, ... in order and returns the
// first candidate the checker reports free. Checker errors are returned as-is.
func (e *Engine) AssignUniqueSlug(ctx context.Context, subject Subject, checker SlugChecker) (string, error) {
	base := e.Candidate(subject)
	candidate := base
	for n := firstSuffix; ; n++ {
		taken, err := checker.SlugExists(ctx, candidate, subject.ID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}

// NeedsSlug reports whether a write must (re)compute the slug. New entities
// always do; existing ones only when the explicit slug input changed, or when
// no explicit slug was given and the name the slug derives from changed.
func (e *Engine) NeedsSlug(previous *Snapshot, next Subject) bool {
	if previous == nil || strings.TrimSpace(previous.Slug) == "" {
		return true
	}
	if explicit := strings.TrimSpace(next.Slug); explicit != "" {
		return Normalize(explicit) != previous.Slug
	}
	return e.NameBase(next.Name) != e.NameBase(previous.Name)
}

// EnforceNameUniqueness rejects the write with a DUPLICATE_NAME conflict when
// another record in category shares the name in at least one supplied locale.
// Missing category or name means there is nothing to enforce.
func (e *Engine) EnforceNameUniqueness(ctx context.Context, category string, name domain.LocalizedString, exclude uuid.UUID, checker NameChecker) error {
	category = strings.TrimSpace(category)
	probe := trimmedNames(name)
	if category == "" || len(probe) == 0 {
		return nil
	}
	conflict, err := checker.NameConflictExists(ctx, category, probe, exclude)
	if err != nil {
		return err
	}
	if conflict {
		return domain.NewDuplicateName(category, probe)
	}
	return nil
}

func trimmedNames(name domain.LocalizedString) domain.LocalizedString {
	out := domain.LocalizedString{}
	for code, value := range name {
		code = strings.ToLower(strings.TrimSpace(code))
		if value = strings.TrimSpace(value); code != "" && value != "" {
			out[code] = value
		}
	}
	return out
}
