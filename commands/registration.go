package commands

import (
	"errors"
	"fmt"

	internalcommands "github.com/goliatone/go-catalog/internal/commands"
	homecmd "github.com/goliatone/go-catalog/internal/commands/home"
	productscmd "github.com/goliatone/go-catalog/internal/commands/products"
	"github.com/goliatone/go-catalog/internal/di"
	"github.com/goliatone/go-catalog/internal/products"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	"github.com/goliatone/go-command/dispatcher"
)

type (
	CreateProductCommand = productscmd.CreateProductCommand
	UpdateProductCommand = productscmd.UpdateProductCommand
	DeleteProductCommand = productscmd.DeleteProductCommand
	ProductFields        = productscmd.ProductFields
	UpsertHomeCommand    = homecmd.UpsertHomeCommand
)

// CommandRegistry records command handlers so hosts can expose them via CLI.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures how handlers are registered.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	LoggerProvider interfaces.LoggerProvider
	// ProductWritten observes products saved by create and update commands.
	ProductWritten func(*products.Product)
}

// RegistrationResult captures the constructed handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// Unsubscribe releases every dispatcher subscription.
func (r *RegistrationResult) Unsubscribe() {
	if r == nil {
		return
	}
	for _, sub := range r.Subscriptions {
		sub.Unsubscribe()
	}
	r.Subscriptions = nil
}

// RegisterContainerCommands builds the catalog command handlers for container
// and optionally registers them with registry and dispatcher integrations.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error
	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}
		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	if service := container.ProductService(); service != nil {
		set, err := productscmd.RegisterProductCommands(nil, service, provider, productscmd.WithResultHook(opts.ProductWritten))
		if err != nil {
			errs = errors.Join(errs, err)
		} else {
			register(set.Create)
			register(set.Update)
			register(set.Delete)
		}
	}

	if service := container.HomeService(); service != nil {
		handler, err := homecmd.RegisterHomeCommands(nil, service, provider)
		if err != nil {
			errs = errors.Join(errs, err)
		} else {
			register(handler)
		}
	}

	if len(result.Handlers) == 0 {
		return result, errors.Join(errs, errors.New("no command handlers registered; ensure services are configured"))
	}
	return result, errs
}

// GoCommandDispatcher subscribes catalog handlers to the process-wide
// go-command dispatcher.
type GoCommandDispatcher struct{}

// RegisterCommand satisfies CommandDispatcher.
func (GoCommandDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	switch h := handler.(type) {
	case *productscmd.CreateProductHandler:
		return dispatcher.SubscribeCommand[productscmd.CreateProductCommand](h), nil
	case *productscmd.UpdateProductHandler:
		return dispatcher.SubscribeCommand[productscmd.UpdateProductCommand](h), nil
	case *productscmd.DeleteProductHandler:
		return dispatcher.SubscribeCommand[productscmd.DeleteProductCommand](h), nil
	case *homecmd.UpsertHomeHandler:
		return dispatcher.SubscribeCommand[homecmd.UpsertHomeCommand](h), nil
	default:
		return nil, fmt.Errorf("commands: unsupported handler %T", handler)
	}
}

// CommandLogger exposes the command logger helper for host integrations.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	return internalcommands.CommandLogger(provider, module)
}
