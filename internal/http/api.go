package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-catalog/internal/homecontent"
	"github.com/goliatone/go-catalog/internal/locale"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/internal/products"
	"github.com/goliatone/go-catalog/pkg/interfaces"
)

// API registers catalog endpoints.
type API struct {
	basePath string
	products products.Service
	home     homecontent.Service
	resolver *locale.Resolver
	logger   interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API. Without a resolver the locale defaults apply.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath: "/api",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	if api.resolver == nil {
		api.resolver = locale.New(locale.DefaultConfig())
	}
	return api
}

// WithBasePath overrides the base path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithProductService wires the product service.
func WithProductService(service products.Service) Option {
	return func(api *API) {
		api.products = service
	}
}

// WithHomeService wires the home content service.
func WithHomeService(service homecontent.Service) Option {
	return func(api *API) {
		api.home = service
	}
}

// WithResolver sets the locale resolver used to render responses.
func WithResolver(resolver *locale.Resolver) Option {
	return func(api *API) {
		if resolver != nil {
			api.resolver = resolver
		}
	}
}

// WithLogger injects the adapter logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the endpoints to mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}

	base := joinPath(api.basePath, "")
	api.registerProductRoutes(mux, base)
	api.registerHomeRoutes(mux, base)
	return nil
}

// Handler returns a mux with every route registered.
func (api *API) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}

func (api *API) preference(r *http.Request) locale.Preference {
	return api.resolver.ResolvePreference(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
}

// writeLocalized renders payload for the request preference and writes it
// with the locale headers set.
func (api *API) writeLocalized(w http.ResponseWriter, status int, pref locale.Preference, payload any) {
	locale.MarkVaries(w.Header())
	if pref.Explicit {
		w.Header().Set("Content-Language", pref.Locale)
	}
	writeJSON(w, status, payload)
}

func (api *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, payload := mapError(err)
	if status >= http.StatusInternalServerError {
		logging.WithRequestContext(api.logger, r.Method, r.URL.Path, "").
			Error("http.request.failed", "error", err, "status", status)
	}
	writeJSON(w, status, payload)
}
