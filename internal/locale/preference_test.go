package locale

import (
	"testing"

	"github.com/goliatone/go-catalog/internal/domain"
)

func TestResolvePreference(t *testing.T) {
	r := newTestResolver()

	cases := []struct {
		name   string
		query  string
		header string
		want   Preference
	}{
		{name: "query wins", query: "en", header: "vi", want: Preference{Locale: "en", Explicit: true}},
		{name: "header used without query", header: "en-GB,en;q=0.8", want: Preference{Locale: "en", Explicit: true}},
		{name: "unsupported header falls back", header: "ja", want: Preference{Locale: "vi", Explicit: true}},
		{name: "nothing supplied", want: Preference{Locale: "vi"}},
		{name: "blank values", query: " ", header: "  ", want: Preference{Locale: "vi"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.ResolvePreference(tc.query, tc.header); got != tc.want {
				t.Fatalf("ResolvePreference = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	r := newTestResolver()
	opts := Options{Fields: []string{"name", "description"}}
	doc := domain.Document{
		"slug":        "latte",
		"name":        domain.LocalizedString{"en": "Latte", "vi": "Cà phê sữa"},
		"description": domain.LocalizedString{"vi": "Đậm đà"},
	}

	explicit := r.Render(doc, Preference{Locale: "en", Explicit: true}, opts)
	if explicit["name"] != "Latte" || explicit["description"] != "Đậm đà" {
		t.Fatalf("expected localized fields, got %#v", explicit)
	}
	if explicit["metaTitle"] != "Latte" || explicit["metaDescription"] != "Đậm đà" {
		t.Fatalf("expected meta fields, got %#v %#v", explicit["metaTitle"], explicit["metaDescription"])
	}

	implicit := r.Render(doc, Preference{Locale: "vi"}, opts)
	if _, ok := implicit["name"].(domain.LocalizedString); !ok {
		t.Fatalf("expected bundles to be kept without a preference, got %#v", implicit["name"])
	}
	if implicit["metaTitle"] != "Cà phê sữa" {
		t.Fatalf("expected metaTitle from the default chain, got %#v", implicit["metaTitle"])
	}

	list := r.RenderList([]domain.Document{doc, doc}, Preference{Locale: "vi", Explicit: true}, opts)
	if len(list) != 2 || list[1]["name"] != "Cà phê sữa" {
		t.Fatalf("unexpected list render: %#v", list)
	}
}
