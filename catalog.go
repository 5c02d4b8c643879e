package catalog

import (
	"github.com/goliatone/go-catalog/internal/di"
	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/homecontent"
	httpapi "github.com/goliatone/go-catalog/internal/http"
	"github.com/goliatone/go-catalog/internal/locale"
	"github.com/goliatone/go-catalog/internal/products"
	"github.com/goliatone/go-catalog/internal/slugs"
)

// ProductService exports the product service contract.
type ProductService = products.Service

// HomeService exports the home content service contract.
type HomeService = homecontent.Service

// Product exports the product record.
type Product = products.Product

// HomeContent exports the home content record.
type HomeContent = homecontent.HomeContent

// LocalizedString exports the locale-keyed text bundle.
type LocalizedString = domain.LocalizedString

// Document exports the plain record shape rendered by the resolver.
type Document = domain.Document

// API exports the HTTP adapter.
type API = httpapi.API

// Module is the top level catalog runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a catalog module from cfg and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Products returns the configured product service.
func (m *Module) Products() ProductService {
	return m.container.ProductService()
}

// Home returns the configured home content service.
func (m *Module) Home() HomeService {
	return m.container.HomeService()
}

// Locales returns the locale resolver.
func (m *Module) Locales() *locale.Resolver {
	return m.container.Resolver()
}

// Slugs returns the slug identity engine.
func (m *Module) Slugs() *slugs.Engine {
	return m.container.SlugEngine()
}

// API returns the HTTP adapter bound to the module services.
func (m *Module) API(opts ...httpapi.Option) *API {
	return m.container.API(opts...)
}

// Close releases resources opened by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
