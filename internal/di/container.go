package di

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-catalog/internal/homecontent"
	httpapi "github.com/goliatone/go-catalog/internal/http"
	"github.com/goliatone/go-catalog/internal/locale"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/internal/logging/console"
	"github.com/goliatone/go-catalog/internal/logging/gologger"
	"github.com/goliatone/go-catalog/internal/products"
	"github.com/goliatone/go-catalog/internal/runtimeconfig"
	"github.com/goliatone/go-catalog/internal/slugs"
	"github.com/goliatone/go-catalog/internal/storage"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires the catalog modules from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	resolver *locale.Resolver
	engine   *slugs.Engine

	productRepo products.Repository
	homeRepo    homecontent.Repository

	productSvc products.Service
	homeSvc    homecontent.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider derived from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies an open database. The container registers its models
// but does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache used by bun repositories.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithProductRepository overrides the product repository.
func WithProductRepository(repo products.Repository) Option {
	return func(c *Container) {
		c.productRepo = repo
	}
}

// WithHomeRepository overrides the home content repository.
func WithHomeRepository(repo homecontent.Repository) Option {
	return func(c *Container) {
		c.homeRepo = repo
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureCache(); err != nil {
		return nil, err
	}
	if err := c.configureRepositories(context.Background()); err != nil {
		return nil, errors.Join(err, c.Close())
	}

	c.resolver = locale.New(locale.Config{
		DefaultLocale:     cfg.DefaultLocale,
		Supported:         cfg.Locales,
		PrimaryFallback:   cfg.PrimaryFallback,
		SecondaryFallback: cfg.SecondaryFallback,
	})
	c.engine = slugs.New(slugs.Config{
		NameLocales:   cfg.NameLocales(),
		FallbackToken: cfg.Slugs.FallbackToken,
	})

	c.productSvc = products.NewService(c.productRepo, c.engine,
		products.WithLogger(logging.ProductsLogger(c.loggerProvider)),
	)
	c.homeSvc = homecontent.NewService(c.homeRepo,
		homecontent.WithLogger(logging.HomeLogger(c.loggerProvider)),
	)

	logging.ModuleLogger(c.loggerProvider, "").Info("container.configured",
		"storage", c.storageProvider(),
		"database", c.bunDB != nil,
		"cache", c.cacheService != nil,
		"default_locale", cfg.DefaultLocale,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("configure logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{Writer: os.Stderr}
		if level, ok := console.ParseLevel(logCfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureCache() error {
	if !c.Config.Cache.Enabled || c.cacheService != nil {
		if c.cacheService != nil && c.keySerializer == nil {
			c.keySerializer = repocache.NewDefaultKeySerializer()
		}
		return nil
	}

	cfg := repocache.DefaultConfig()
	if c.Config.Cache.TTL > 0 {
		cfg.TTL = c.Config.Cache.TTL
	}
	service, err := repocache.NewCacheService(cfg)
	if err != nil {
		return fmt.Errorf("configure cache: %w", err)
	}
	c.cacheService = service
	c.keySerializer = repocache.NewDefaultKeySerializer()
	return nil
}

func (c *Container) configureRepositories(ctx context.Context) error {
	if c.bunDB == nil && c.storageProvider() != storage.ProviderMemory {
		db, err := storage.Open(c.Config.Storage.Provider, c.Config.Storage.DSN)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}

	if c.bunDB != nil {
		if err := products.RegisterModels(ctx, c.bunDB); err != nil {
			return fmt.Errorf("register product models: %w", err)
		}
		if err := homecontent.RegisterModels(ctx, c.bunDB); err != nil {
			return fmt.Errorf("register home content models: %w", err)
		}
	}

	if c.productRepo == nil {
		if c.bunDB != nil {
			c.productRepo = products.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		} else {
			c.productRepo = products.NewMemoryRepository()
		}
	}
	if c.homeRepo == nil {
		if c.bunDB != nil {
			c.homeRepo = homecontent.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		} else {
			c.homeRepo = homecontent.NewMemoryRepository()
		}
	}
	return nil
}

func (c *Container) storageProvider() string {
	return strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider))
}

// Close releases the database opened by the container.
func (c *Container) Close() error {
	if c == nil || c.bunDB == nil || !c.ownsDB {
		return nil
	}
	c.ownsDB = false
	return c.bunDB.Close()
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BunDB exposes the database, nil for memory storage.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// Resolver returns the locale resolver.
func (c *Container) Resolver() *locale.Resolver {
	return c.resolver
}

// SlugEngine returns the slug identity engine.
func (c *Container) SlugEngine() *slugs.Engine {
	return c.engine
}

// ProductService returns the product service.
func (c *Container) ProductService() products.Service {
	return c.productSvc
}

// HomeService returns the home content service.
func (c *Container) HomeService() homecontent.Service {
	return c.homeSvc
}

// API builds the HTTP adapter bound to the container services.
func (c *Container) API(opts ...httpapi.Option) *httpapi.API {
	base := []httpapi.Option{
		httpapi.WithProductService(c.productSvc),
		httpapi.WithHomeService(c.homeSvc),
		httpapi.WithResolver(c.resolver),
		httpapi.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	}
	return httpapi.NewAPI(append(base, opts...)...)
}
