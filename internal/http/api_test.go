package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-catalog/internal/homecontent"
	"github.com/goliatone/go-catalog/internal/products"
	"github.com/goliatone/go-catalog/internal/slugs"
)

func setupAPI(t *testing.T) *http.ServeMux {
	t.Helper()

	productSvc := products.NewService(products.NewMemoryRepository(), slugs.New(slugs.DefaultConfig("vi")))
	homeSvc := homecontent.NewService(homecontent.NewMemoryRepository())

	api := NewAPI(
		WithProductService(productSvc),
		WithHomeService(homeSvc),
	)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register api: %v", err)
	}
	return mux
}

func doRequest(t *testing.T, mux http.Handler, method, path string, body any, headers map[string]string, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("%s %s: expected status %d got %d (%s)", method, path, wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func latteBody() map[string]any {
	return map[string]any{
		"category": "coffee",
		"price":    45000,
		"status":   "published",
		"name":     map[string]string{"en": "Latte", "vi": "Cà phê sữa"},
	}
}

func TestProductCreateKeepsBundlesWithoutPreference(t *testing.T) {
	mux := setupAPI(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/products", latteBody(), nil, http.StatusCreated)
	if vary := rec.Header().Get("Vary"); !strings.Contains(vary, "Accept-Language") {
		t.Fatalf("expected Vary: Accept-Language, got %q", vary)
	}
	if lang := rec.Header().Get("Content-Language"); lang != "" {
		t.Fatalf("expected no Content-Language without preference, got %q", lang)
	}

	var created map[string]any
	decodeBody(t, rec, &created)
	if created["slug"] != "latte" {
		t.Fatalf("expected slug latte, got %v", created["slug"])
	}
	name, ok := created["name"].(map[string]any)
	if !ok || name["vi"] != "Cà phê sữa" || name["en"] != "Latte" {
		t.Fatalf("expected name bundle intact, got %#v", created["name"])
	}
	if created["metaTitle"] != "Cà phê sữa" {
		t.Fatalf("expected metaTitle from default chain, got %v", created["metaTitle"])
	}
}

func TestProductGetLocalizesForPreference(t *testing.T) {
	mux := setupAPI(t)
	doRequest(t, mux, http.MethodPost, "/api/products", latteBody(), nil, http.StatusCreated)

	rec := doRequest(t, mux, http.MethodGet, "/api/products/latte", nil, map[string]string{"Accept-Language": "en-US,en;q=0.9"}, http.StatusOK)
	var doc map[string]any
	decodeBody(t, rec, &doc)
	if doc["name"] != "Latte" {
		t.Fatalf("expected english name, got %v", doc["name"])
	}
	if lang := rec.Header().Get("Content-Language"); lang != "en" {
		t.Fatalf("expected Content-Language en, got %q", lang)
	}

	rec = doRequest(t, mux, http.MethodGet, "/api/products/latte?lang=vi", nil, map[string]string{"Accept-Language": "en"}, http.StatusOK)
	doc = map[string]any{}
	decodeBody(t, rec, &doc)
	if doc["name"] != "Cà phê sữa" {
		t.Fatalf("expected query to win over header, got %v", doc["name"])
	}
	if doc["metaTitle"] != "Cà phê sữa" {
		t.Fatalf("expected vietnamese metaTitle, got %v", doc["metaTitle"])
	}

	rec = doRequest(t, mux, http.MethodGet, "/api/products/latte", nil, map[string]string{"Accept-Language": "fr"}, http.StatusOK)
	doc = map[string]any{}
	decodeBody(t, rec, &doc)
	if doc["name"] != "Cà phê sữa" {
		t.Fatalf("expected unsupported locale to fall back to default, got %v", doc["name"])
	}
}

func TestProductErrorsMapToCodes(t *testing.T) {
	mux := setupAPI(t)
	doRequest(t, mux, http.MethodPost, "/api/products", latteBody(), nil, http.StatusCreated)

	var failure errorResponse

	dup := map[string]any{
		"category": "coffee",
		"price":    1,
		"name":     map[string]string{"en": "  Latte  "},
	}
	rec := doRequest(t, mux, http.MethodPost, "/api/products", dup, nil, http.StatusConflict)
	decodeBody(t, rec, &failure)
	if failure.Error != "DUPLICATE_NAME" {
		t.Fatalf("expected DUPLICATE_NAME, got %+v", failure)
	}

	invalid := map[string]any{"name": map[string]string{"en": "Mocha"}}
	rec = doRequest(t, mux, http.MethodPost, "/api/products", invalid, nil, http.StatusBadRequest)
	failure = errorResponse{}
	decodeBody(t, rec, &failure)
	if failure.Error != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %+v", failure)
	}

	rec = doRequest(t, mux, http.MethodGet, "/api/products/missing", nil, nil, http.StatusNotFound)
	failure = errorResponse{}
	decodeBody(t, rec, &failure)
	if failure.Error != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %+v", failure)
	}

	doRequest(t, mux, http.MethodPut, "/api/products/not-a-uuid", latteBody(), nil, http.StatusBadRequest)
	doRequest(t, mux, http.MethodPost, "/api/products", nil, nil, http.StatusBadRequest)
}

func TestProductLifecycle(t *testing.T) {
	mux := setupAPI(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/products", latteBody(), nil, http.StatusCreated)
	var created map[string]any
	decodeBody(t, rec, &created)
	id, _ := created["id"].(string)

	draft := map[string]any{
		"category": "tea",
		"price":    30000,
		"name":     map[string]string{"vi": "Trà sen vàng"},
	}
	doRequest(t, mux, http.MethodPost, "/api/products", draft, nil, http.StatusCreated)

	var listed []map[string]any
	decodeBody(t, doRequest(t, mux, http.MethodGet, "/api/products", nil, nil, http.StatusOK), &listed)
	if len(listed) != 1 || listed[0]["slug"] != "latte" {
		t.Fatalf("expected only the published product, got %#v", listed)
	}

	listed = nil
	decodeBody(t, doRequest(t, mux, http.MethodGet, "/api/products?include_drafts=true&lang=en", nil, nil, http.StatusOK), &listed)
	if len(listed) != 2 {
		t.Fatalf("expected drafts to be included, got %d", len(listed))
	}
	if listed[1]["name"] != "Trà sen vàng" {
		t.Fatalf("expected fallback to vietnamese name, got %v", listed[1]["name"])
	}

	doRequest(t, mux, http.MethodGet, "/api/products/tra-sen-vang", nil, nil, http.StatusNotFound)
	doRequest(t, mux, http.MethodGet, "/api/products/tra-sen-vang?include_drafts=1", nil, nil, http.StatusOK)

	update := latteBody()
	update["name"] = map[string]string{"en": "Iced Latte", "vi": "Cà phê sữa đá"}
	var updated map[string]any
	decodeBody(t, doRequest(t, mux, http.MethodPut, "/api/products/"+id, update, nil, http.StatusOK), &updated)
	if updated["slug"] != "iced-latte" {
		t.Fatalf("expected slug to follow rename, got %v", updated["slug"])
	}

	doRequest(t, mux, http.MethodDelete, "/api/products/"+id, nil, nil, http.StatusNoContent)
	doRequest(t, mux, http.MethodDelete, "/api/products/"+id, nil, nil, http.StatusNotFound)
}

type failingProducts struct {
	products.Service
}

func (failingProducts) List(context.Context, products.ListOptions) ([]*products.Product, error) {
	return nil, errors.New("connection refused")
}

func TestStorageFailureIsOpaque(t *testing.T) {
	api := NewAPI(WithProductService(failingProducts{}))
	handler, err := api.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	rec := doRequest(t, handler, http.MethodGet, "/api/products", nil, nil, http.StatusInternalServerError)
	var failure errorResponse
	decodeBody(t, rec, &failure)
	if failure.Error != "STORAGE_ERROR" {
		t.Fatalf("expected STORAGE_ERROR, got %+v", failure)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("storage detail leaked: %s", rec.Body.String())
	}

	doRequest(t, handler, http.MethodGet, "/api/home", nil, nil, http.StatusServiceUnavailable)
}

func TestHomeContentRoutes(t *testing.T) {
	mux := setupAPI(t)

	doRequest(t, mux, http.MethodGet, "/api/home", nil, nil, http.StatusNotFound)
	doRequest(t, mux, http.MethodPut, "/api/home", map[string]any{}, nil, http.StatusBadRequest)

	body := map[string]any{
		"heroTitle": map[string]string{"vi": "Chào mừng", "en": "Welcome"},
		"aboutBody": map[string]string{"vi": "Quán cà phê nhỏ"},
	}
	doRequest(t, mux, http.MethodPut, "/api/home", body, nil, http.StatusOK)

	var doc map[string]any
	rec := doRequest(t, mux, http.MethodGet, "/api/home?lang=en", nil, nil, http.StatusOK)
	decodeBody(t, rec, &doc)
	if doc["heroTitle"] != "Welcome" {
		t.Fatalf("expected english hero title, got %v", doc["heroTitle"])
	}
	if doc["aboutBody"] != "Quán cà phê nhỏ" {
		t.Fatalf("expected about body fallback, got %v", doc["aboutBody"])
	}
	if doc["key"] != "home" {
		t.Fatalf("expected default key, got %v", doc["key"])
	}

	doRequest(t, mux, http.MethodGet, "/api/home?key=landing", nil, nil, http.StatusNotFound)
}
