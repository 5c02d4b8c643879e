package locale

import (
	"net/http"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/goliatone/go-catalog/internal/domain"
)

func newTestResolver() *Resolver {
	return New(DefaultConfig())
}

func TestDetectLocale(t *testing.T) {
	r := newTestResolver()

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{name: "empty header yields default", header: "", want: "vi"},
		{name: "whitespace only yields default", header: "   ", want: "vi"},
		{name: "exact match", header: "en", want: "en"},
		{name: "mixed case and whitespace", header: "  EN ", want: "en"},
		{name: "region subtag", header: "en-US,en;q=0.9", want: "en"},
		{name: "unsupported falls through to next segment", header: "fr-FR, vi;q=0.8", want: "vi"},
		{name: "unsupported only yields default", header: "de,fr", want: "vi"},
		{name: "malformed header yields default", header: ";;;,,", want: "vi"},
		{name: "query style value", header: "Vi", want: "vi"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.DetectLocale(tc.header); got != tc.want {
				t.Fatalf("DetectLocale(%q) = %q, want %q", tc.header, got, tc.want)
			}
		})
	}
}

func TestDetectLocaleHonoursConfiguredDefault(t *testing.T) {
	r := New(Config{DefaultLocale: "EN", Supported: []string{"vi"}})
	if got := r.DetectLocale("ja"); got != "en" {
		t.Fatalf("expected configured default, got %q", got)
	}
	if !r.IsSupported("en") {
		t.Fatalf("default locale must always be supported")
	}
}

func TestBuildPriorityChain(t *testing.T) {
	r := newTestResolver()

	cases := []struct {
		name      string
		preferred string
		want      []string
	}{
		{name: "requested first", preferred: "en", want: []string{"en", "vi"}},
		{name: "unknown requested kept", preferred: "fr", want: []string{"fr", "en", "vi"}},
		{name: "absent preference", preferred: "", want: []string{"en", "vi"}},
		{name: "whitespace preference", preferred: "  ", want: []string{"en", "vi"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.BuildPriorityChain(tc.preferred)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("BuildPriorityChain(%q) = %v, want %v", tc.preferred, got, tc.want)
			}
		})
	}
}

func TestBuildPriorityChainDeduplicatesInOrder(t *testing.T) {
	// requested fr, primary en, default en, secondary vi => fr,en,en,vi
	r := New(Config{DefaultLocale: "en", Supported: []string{"en", "vi"}})
	got := r.BuildPriorityChain("fr")
	want := []string{"fr", "en", "vi"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBuildPriorityChainNeverHasDuplicatesOrBlanks(t *testing.T) {
	inputs := []string{"", " ", "en", "vi", "EN", "fr", "\t"}
	defaults := []string{"", "en", "vi", "ja"}
	for _, def := range defaults {
		r := New(Config{DefaultLocale: def})
		for _, in := range inputs {
			chain := r.BuildPriorityChain(in)
			seen := map[string]bool{}
			for _, code := range chain {
				if strings.TrimSpace(code) == "" {
					t.Fatalf("chain %v contains blank entry", chain)
				}
				if seen[code] {
					t.Fatalf("chain %v contains duplicate %q", chain, code)
				}
				seen[code] = true
			}
		}
	}
}

func TestPickLocalizedValue(t *testing.T) {
	chain := []string{"en", "vi"}

	t.Run("plain string returned unchanged", func(t *testing.T) {
		got, ok := PickLocalizedValue("already resolved", chain)
		if !ok || got != "already resolved" {
			t.Fatalf("unexpected result %q %v", got, ok)
		}
	})

	t.Run("falls through to vi", func(t *testing.T) {
		got, ok := PickLocalizedValue(domain.LocalizedString{"vi": "Cà phê"}, chain)
		if !ok || got != "Cà phê" {
			t.Fatalf("expected vi fallback, got %q %v", got, ok)
		}
	})

	t.Run("skips blank values", func(t *testing.T) {
		got, ok := PickLocalizedValue(map[string]string{"en": "   ", "vi": "Trà"}, chain)
		if !ok || got != "Trà" {
			t.Fatalf("expected blank en to be skipped, got %q", got)
		}
	})

	t.Run("returns verbatim value", func(t *testing.T) {
		got, _ := PickLocalizedValue(map[string]any{"en": "  Latte  "}, chain)
		if got != "  Latte  " {
			t.Fatalf("expected untrimmed value, got %q", got)
		}
	})

	t.Run("decoded json bundle", func(t *testing.T) {
		got, ok := PickLocalizedValue(map[string]any{"en": 12, "vi": "Bạc xỉu"}, chain)
		if !ok || got != "Bạc xỉu" {
			t.Fatalf("expected non-string entries to be ignored, got %q", got)
		}
	})

	t.Run("absent", func(t *testing.T) {
		for _, value := range []any{nil, domain.LocalizedString{}, map[string]string{"fr": "Café"}, 42} {
			if got, ok := PickLocalizedValue(value, chain); ok {
				t.Fatalf("expected absent for %#v, got %q", value, got)
			}
		}
	})
}

func TestPickLocalizedValueReturnsValueFromChain(t *testing.T) {
	bundles := []domain.LocalizedString{
		{"en": "Tea", "vi": "Trà"},
		{"vi": "Trà"},
		{"fr": "Thé"},
		{"en": " ", "fr": "Thé"},
		{},
	}
	chains := [][]string{{"en", "vi"}, {"vi"}, {"fr", "en"}, {}}

	for _, bundle := range bundles {
		for _, chain := range chains {
			got, ok := PickLocalizedValue(bundle, chain)
			hasCandidate := slices.ContainsFunc(chain, func(code string) bool {
				return strings.TrimSpace(bundle[code]) != ""
			})
			if ok != hasCandidate {
				t.Fatalf("bundle %v chain %v: ok=%v, candidate=%v", bundle, chain, ok, hasCandidate)
			}
			if !ok {
				continue
			}
			if !slices.ContainsFunc(chain, func(code string) bool { return bundle[code] == got }) {
				t.Fatalf("bundle %v chain %v: %q not present at a chain key", bundle, chain, got)
			}
		}
	}
}

func TestLocalizeDoc(t *testing.T) {
	r := newTestResolver()
	doc := domain.Document{
		"slug":        "ca-phe-sua",
		"name":        domain.LocalizedString{"en": "Milk coffee", "vi": "Cà phê sữa"},
		"description": domain.LocalizedString{"fr": "Café au lait"},
		"images":      []string{"a.png"},
		"seoTitle":    domain.LocalizedString{"vi": "SEO"},
	}

	got := r.LocalizeDoc(doc, "vi", Options{Fields: []string{"name", "description", "missing"}})

	if got["name"] != "Cà phê sữa" {
		t.Fatalf("expected vi name, got %#v", got["name"])
	}
	if _, ok := got["description"]; ok {
		t.Fatalf("expected unresolvable description to be dropped, got %#v", got["description"])
	}
	if _, ok := got["missing"]; ok {
		t.Fatalf("absent fields must not be created")
	}
	if _, ok := got["seoTitle"].(domain.LocalizedString); !ok {
		t.Fatalf("unlisted fields must pass through unchanged")
	}
	if _, ok := doc["name"].(domain.LocalizedString); !ok {
		t.Fatalf("input document must not be mutated")
	}
}

func TestLocalizeList(t *testing.T) {
	r := newTestResolver()
	if got := r.LocalizeList(nil, "en", Options{Fields: []string{"name"}}); len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}

	docs := []domain.Document{
		{"name": domain.LocalizedString{"en": "First"}},
		{"name": domain.LocalizedString{"vi": "Thứ hai"}},
		{"name": "Third"},
	}
	got := r.LocalizeList(docs, "en", Options{Fields: []string{"name"}})
	want := []string{"First", "Thứ hai", "Third"}
	for i, doc := range got {
		if doc["name"] != want[i] {
			t.Fatalf("index %d: expected %q, got %#v", i, want[i], doc["name"])
		}
	}
}

func TestAttachMetaFields(t *testing.T) {
	r := newTestResolver()

	t.Run("prefers seo bundles", func(t *testing.T) {
		doc := domain.Document{
			"name":           domain.LocalizedString{"en": "Latte"},
			"seoTitle":       domain.LocalizedString{"en": "Best Latte"},
			"description":    domain.LocalizedString{"en": "Long"},
			"seoDescription": domain.LocalizedString{"en": "Short SEO"},
		}
		got := r.AttachMetaFields(doc, "en")
		if got["metaTitle"] != "Best Latte" || got["metaDescription"] != "Short SEO" {
			t.Fatalf("unexpected meta fields: %#v %#v", got["metaTitle"], got["metaDescription"])
		}
		if _, ok := got["name"].(domain.LocalizedString); !ok {
			t.Fatalf("bundles must be kept intact")
		}
	})

	t.Run("falls back through sources", func(t *testing.T) {
		doc := domain.Document{
			"title":            domain.LocalizedString{"vi": "Trang chủ"},
			"seoTitle":         domain.LocalizedString{"en": " "},
			"shortDescription": domain.LocalizedString{"vi": "Ngắn"},
			"description":      domain.LocalizedString{"en": "Long"},
		}
		got := r.AttachMetaFields(doc, "vi")
		if got["metaTitle"] != "Trang chủ" {
			t.Fatalf("expected title fallback, got %#v", got["metaTitle"])
		}
		if got["metaDescription"] != "Ngắn" {
			t.Fatalf("expected short description, got %#v", got["metaDescription"])
		}
	})

	t.Run("absent when nothing resolves", func(t *testing.T) {
		got := r.AttachMetaFields(domain.Document{"name": domain.LocalizedString{"fr": "Thé"}}, "")
		if _, ok := got["metaTitle"]; ok {
			t.Fatalf("expected no metaTitle, got %#v", got["metaTitle"])
		}
		if _, ok := got["metaDescription"]; ok {
			t.Fatalf("expected no metaDescription")
		}
	})
}

func TestEmptyPreferenceStillAttachesMetaWithDefaultChain(t *testing.T) {
	r := newTestResolver()
	preference := ""
	doc := domain.Document{"name": domain.LocalizedString{"vi": "Cà phê"}}

	detected := r.DetectLocale(preference)
	if detected != r.DefaultLocale() {
		t.Fatalf("expected default locale, got %q", detected)
	}

	// no preference: bundles stay unresolved, meta still derived
	got := r.AttachMetaFields(doc, detected)
	if _, ok := got["name"].(domain.LocalizedString); !ok {
		t.Fatalf("expected name bundle untouched")
	}
	if got["metaTitle"] != "Cà phê" {
		t.Fatalf("expected metaTitle from default chain, got %#v", got["metaTitle"])
	}
}

func TestMarkVaries(t *testing.T) {
	header := http.Header{}
	MarkVaries(header)
	MarkVaries(header)
	if values := header.Values("Vary"); len(values) != 1 || values[0] != VaryHeader {
		t.Fatalf("expected single Vary header, got %v", values)
	}

	header = http.Header{"Vary": []string{"Origin, accept-language"}}
	MarkVaries(header)
	if values := header.Values("Vary"); len(values) != 1 {
		t.Fatalf("expected existing Vary to be kept, got %v", values)
	}
}
