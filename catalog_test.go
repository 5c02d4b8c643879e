package catalog_test

import (
	"context"
	"errors"
	"testing"

	catalog "github.com/goliatone/go-catalog"
	"github.com/goliatone/go-catalog/internal/locale"
	"github.com/goliatone/go-catalog/internal/products"
	"github.com/goliatone/go-catalog/internal/slugs"
)

func TestModuleLifecycle(t *testing.T) {
	module, err := catalog.New(catalog.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })

	price := 55000.0
	ctx := context.Background()
	created, err := module.Products().Create(ctx, products.CreateProductRequest{ProductInput: products.ProductInput{
		Category: "coffee",
		Price:    &price,
		Name:     catalog.LocalizedString{"en": "Caramel Macchiato"},
	}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Slug != "caramel-macchiato" {
		t.Fatalf("expected caramel-macchiato, got %q", created.Slug)
	}

	doc := module.Locales().LocalizeDoc(created.Document(), "vi", locale.Options{Fields: products.LocalizedFields})
	if doc["name"] != "Caramel Macchiato" {
		t.Fatalf("expected english fallback for vi, got %v", doc["name"])
	}
	if got := module.Slugs().DeriveBase(slugs.Subject{Name: catalog.LocalizedString{"en": "Latte"}}); got != "Latte" {
		t.Fatalf("expected derived base Latte, got %q", got)
	}
	if module.API() == nil {
		t.Fatal("expected api")
	}
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	cfg, err := catalog.LoadConfig(map[string]string{
		"CATALOG_DEFAULT_LOCALE":    "en",
		"CATALOG_LOCALES":           "en,vi",
		"CATALOG_SLUG_NAME_LOCALES": "vi,en",
	})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DefaultLocale != "en" || len(cfg.Slugs.NameLocales) != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	_, err = catalog.LoadConfig(map[string]string{"CATALOG_STORAGE_PROVIDER": "postgres"})
	if !errors.Is(err, catalog.ErrStorageDSNRequired) {
		t.Fatalf("expected dsn required error, got %v", err)
	}
}
