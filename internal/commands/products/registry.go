package productscmd

import (
	"errors"

	"github.com/goliatone/go-catalog/internal/commands"
	"github.com/goliatone/go-catalog/internal/products"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	"github.com/goliatone/go-command/dispatcher"
)

// CommandRegistry is the minimal registration contract used when wiring handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Subscription releases a dispatcher subscription.
type Subscription interface {
	Unsubscribe()
}

// HandlerSet groups the product command handlers.
type HandlerSet struct {
	Create *CreateProductHandler
	Update *UpdateProductHandler
	Delete *DeleteProductHandler
}

// Option customises handler construction.
type Option func(*options)

type options struct {
	hook       ResultHook
	createOpts []commands.HandlerOption[CreateProductCommand]
	updateOpts []commands.HandlerOption[UpdateProductCommand]
	deleteOpts []commands.HandlerOption[DeleteProductCommand]
}

// WithResultHook observes products written by create and update commands.
func WithResultHook(hook ResultHook) Option {
	return func(cfg *options) {
		cfg.hook = hook
	}
}

// WithCreateHandlerOptions forwards options to the create handler.
func WithCreateHandlerOptions(opts ...commands.HandlerOption[CreateProductCommand]) Option {
	return func(cfg *options) {
		cfg.createOpts = append(cfg.createOpts, opts...)
	}
}

// WithUpdateHandlerOptions forwards options to the update handler.
func WithUpdateHandlerOptions(opts ...commands.HandlerOption[UpdateProductCommand]) Option {
	return func(cfg *options) {
		cfg.updateOpts = append(cfg.updateOpts, opts...)
	}
}

// WithDeleteHandlerOptions forwards options to the delete handler.
func WithDeleteHandlerOptions(opts ...commands.HandlerOption[DeleteProductCommand]) Option {
	return func(cfg *options) {
		cfg.deleteOpts = append(cfg.deleteOpts, opts...)
	}
}

// RegisterProductCommands builds the product handlers and records them with
// reg when it is not nil.
func RegisterProductCommands(reg CommandRegistry, service products.Service, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("product command registration: service is nil")
	}
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "products")
	set := &HandlerSet{
		Create: NewCreateProductHandler(service, logger, cfg.hook, cfg.createOpts...),
		Update: NewUpdateProductHandler(service, logger, cfg.hook, cfg.updateOpts...),
		Delete: NewDeleteProductHandler(service, logger, cfg.deleteOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.Create, set.Update, set.Delete} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// Subscribe attaches every handler in the set to the go-command dispatcher.
func (s *HandlerSet) Subscribe() []Subscription {
	if s == nil {
		return nil
	}
	return []Subscription{
		dispatcher.SubscribeCommand[CreateProductCommand](s.Create),
		dispatcher.SubscribeCommand[UpdateProductCommand](s.Update),
		dispatcher.SubscribeCommand[DeleteProductCommand](s.Delete),
	}
}
