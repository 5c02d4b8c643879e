package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/homecontent"
	"github.com/goliatone/go-catalog/internal/locale"
)

type homePayload struct {
	HeroTitle      domain.LocalizedString `json:"heroTitle"`
	HeroSubtitle   domain.LocalizedString `json:"heroSubtitle,omitempty"`
	AboutTitle     domain.LocalizedString `json:"aboutTitle,omitempty"`
	AboutBody      domain.LocalizedString `json:"aboutBody,omitempty"`
	SeoTitle       domain.LocalizedString `json:"seoTitle,omitempty"`
	SeoDescription domain.LocalizedString `json:"seoDescription,omitempty"`
}

var homeFields = locale.Options{Fields: homecontent.LocalizedFields}

func (api *API) registerHomeRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "home")
	mux.HandleFunc("GET "+root, api.handleHomeGet)
	mux.HandleFunc("PUT "+root, api.handleHomeUpsert)
}

func (api *API) handleHomeGet(w http.ResponseWriter, r *http.Request) {
	if api.home == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	record, err := api.home.Get(r.Context(), r.URL.Query().Get("key"))
	if err != nil {
		api.fail(w, r, err)
		return
	}
	pref := api.preference(r)
	api.writeLocalized(w, http.StatusOK, pref, api.resolver.Render(record.Document(), pref, homeFields))
}

func (api *API) handleHomeUpsert(w http.ResponseWriter, r *http.Request) {
	if api.home == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload homePayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, err.Error())
		return
	}
	saved, err := api.home.Upsert(r.Context(), homecontent.UpsertRequest{
		Key:            r.URL.Query().Get("key"),
		HeroTitle:      payload.HeroTitle,
		HeroSubtitle:   payload.HeroSubtitle,
		AboutTitle:     payload.AboutTitle,
		AboutBody:      payload.AboutBody,
		SeoTitle:       payload.SeoTitle,
		SeoDescription: payload.SeoDescription,
	})
	if err != nil {
		api.fail(w, r, err)
		return
	}
	pref := api.preference(r)
	api.writeLocalized(w, http.StatusOK, pref, api.resolver.Render(saved.Document(), pref, homeFields))
}
