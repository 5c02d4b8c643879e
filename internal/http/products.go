package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/locale"
	"github.com/goliatone/go-catalog/internal/products"
)

type productPayload struct {
	Slug             string                 `json:"slug,omitempty"`
	Category         string                 `json:"category,omitempty"`
	Price            *float64               `json:"price"`
	Status           string                 `json:"status,omitempty"`
	Featured         bool                   `json:"featured,omitempty"`
	Name             domain.LocalizedString `json:"name"`
	Description      domain.LocalizedString `json:"description,omitempty"`
	ShortDescription domain.LocalizedString `json:"shortDescription,omitempty"`
	SeoTitle         domain.LocalizedString `json:"seoTitle,omitempty"`
	SeoDescription   domain.LocalizedString `json:"seoDescription,omitempty"`
}

func (p productPayload) input() products.ProductInput {
	return products.ProductInput{
		Slug:             p.Slug,
		Category:         p.Category,
		Price:            p.Price,
		Status:           p.Status,
		Featured:         p.Featured,
		Name:             p.Name,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		SeoTitle:         p.SeoTitle,
		SeoDescription:   p.SeoDescription,
	}
}

var productFields = locale.Options{Fields: products.LocalizedFields}

func (api *API) registerProductRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "products")
	mux.HandleFunc("GET "+root, api.handleProductList)
	mux.HandleFunc("POST "+root, api.handleProductCreate)
	mux.HandleFunc("GET "+root+"/{slug}", api.handleProductGet)
	mux.HandleFunc("PUT "+root+"/{id}", api.handleProductUpdate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleProductDelete)
}

func (api *API) handleProductList(w http.ResponseWriter, r *http.Request) {
	if api.products == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	query := r.URL.Query()
	list, err := api.products.List(r.Context(), products.ListOptions{
		Category:      query.Get("category"),
		PublishedOnly: !parseBoolQuery(query.Get("include_drafts"), false),
	})
	if err != nil {
		api.fail(w, r, err)
		return
	}
	pref := api.preference(r)
	api.writeLocalized(w, http.StatusOK, pref, api.resolver.RenderList(products.Documents(list), pref, productFields))
}

func (api *API) handleProductGet(w http.ResponseWriter, r *http.Request) {
	if api.products == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	slug := r.PathValue("slug")
	record, err := api.products.GetBySlug(r.Context(), slug)
	if err == nil && !record.Status.IsPublic() && !parseBoolQuery(r.URL.Query().Get("include_drafts"), false) {
		err = domain.NewNotFound("product", slug)
	}
	if err != nil {
		api.fail(w, r, err)
		return
	}
	pref := api.preference(r)
	api.writeLocalized(w, http.StatusOK, pref, api.resolver.Render(record.Document(), pref, productFields))
}

func (api *API) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	if api.products == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload productPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, err.Error())
		return
	}
	created, err := api.products.Create(r.Context(), products.CreateProductRequest{ProductInput: payload.input()})
	if err != nil {
		api.fail(w, r, err)
		return
	}
	pref := api.preference(r)
	api.writeLocalized(w, http.StatusCreated, pref, api.resolver.Render(created.Document(), pref, productFields))
}

func (api *API) handleProductUpdate(w http.ResponseWriter, r *http.Request) {
	if api.products == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid id")
		return
	}
	var payload productPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, err.Error())
		return
	}
	updated, err := api.products.Update(r.Context(), products.UpdateProductRequest{ID: id, ProductInput: payload.input()})
	if err != nil {
		api.fail(w, r, err)
		return
	}
	pref := api.preference(r)
	api.writeLocalized(w, http.StatusOK, pref, api.resolver.Render(updated.Document(), pref, productFields))
}

func (api *API) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	if api.products == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid id")
		return
	}
	if err := api.products.Delete(r.Context(), id); err != nil {
		api.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
