package productscmd

import (
	"context"

	"github.com/goliatone/go-catalog/internal/commands"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/internal/products"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	createOperation = "products.create"
	updateOperation = "products.update"
	deleteOperation = "products.delete"
)

var (
	_ command.Commander[CreateProductCommand] = (*CreateProductHandler)(nil)
	_ command.Commander[UpdateProductCommand] = (*UpdateProductHandler)(nil)
	_ command.Commander[DeleteProductCommand] = (*DeleteProductHandler)(nil)
)

// ResultHook receives the product written by a successful command.
type ResultHook func(*products.Product)

// CreateProductHandler runs CreateProductCommand through the product service.
type CreateProductHandler struct {
	inner *commands.Handler[CreateProductCommand]
}

// NewCreateProductHandler binds the handler to service. hook may be nil.
func NewCreateProductHandler(service products.Service, logger interfaces.Logger, hook ResultHook, opts ...commands.HandlerOption[CreateProductCommand]) *CreateProductHandler {
	logger = ensureLogger(logger)
	exec := func(ctx context.Context, msg CreateProductCommand) error {
		created, err := service.Create(ctx, products.CreateProductRequest{ProductInput: msg.input()})
		if err != nil {
			return err
		}
		logging.WithFields(logger, map[string]any{
			"product_id": created.ID,
			"slug":       created.Slug,
		}).Info("catalog.command.products.created")
		if hook != nil {
			hook(created)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CreateProductCommand]{
		commands.WithLogger[CreateProductCommand](logger),
		commands.WithOperation[CreateProductCommand](createOperation),
		commands.WithMessageFields(func(msg CreateProductCommand) map[string]any {
			return productFields(msg.ProductFields)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CreateProductCommand](logger)),
	}
	return &CreateProductHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[CreateProductCommand].
func (h *CreateProductHandler) Execute(ctx context.Context, msg CreateProductCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UpdateProductHandler runs UpdateProductCommand through the product service.
type UpdateProductHandler struct {
	inner *commands.Handler[UpdateProductCommand]
}

// NewUpdateProductHandler binds the handler to service. hook may be nil.
func NewUpdateProductHandler(service products.Service, logger interfaces.Logger, hook ResultHook, opts ...commands.HandlerOption[UpdateProductCommand]) *UpdateProductHandler {
	logger = ensureLogger(logger)
	exec := func(ctx context.Context, msg UpdateProductCommand) error {
		updated, err := service.Update(ctx, products.UpdateProductRequest{ID: msg.ID, ProductInput: msg.input()})
		if err != nil {
			return err
		}
		logging.WithFields(logger, map[string]any{
			"product_id": updated.ID,
			"slug":       updated.Slug,
		}).Info("catalog.command.products.updated")
		if hook != nil {
			hook(updated)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[UpdateProductCommand]{
		commands.WithLogger[UpdateProductCommand](logger),
		commands.WithOperation[UpdateProductCommand](updateOperation),
		commands.WithMessageFields(func(msg UpdateProductCommand) map[string]any {
			fields := productFields(msg.ProductFields)
			fields["product_id"] = msg.ID
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[UpdateProductCommand](logger)),
	}
	return &UpdateProductHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[UpdateProductCommand].
func (h *UpdateProductHandler) Execute(ctx context.Context, msg UpdateProductCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteProductHandler runs DeleteProductCommand through the product service.
type DeleteProductHandler struct {
	inner *commands.Handler[DeleteProductCommand]
}

// NewDeleteProductHandler binds the handler to service.
func NewDeleteProductHandler(service products.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteProductCommand]) *DeleteProductHandler {
	logger = ensureLogger(logger)
	exec := func(ctx context.Context, msg DeleteProductCommand) error {
		return service.Delete(ctx, msg.ID)
	}

	handlerOpts := []commands.HandlerOption[DeleteProductCommand]{
		commands.WithLogger[DeleteProductCommand](logger),
		commands.WithOperation[DeleteProductCommand](deleteOperation),
		commands.WithMessageFields(func(msg DeleteProductCommand) map[string]any {
			return map[string]any{"product_id": msg.ID}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeleteProductCommand](logger)),
	}
	return &DeleteProductHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[DeleteProductCommand].
func (h *DeleteProductHandler) Execute(ctx context.Context, msg DeleteProductCommand) error {
	return h.inner.Execute(ctx, msg)
}

func productFields(f ProductFields) map[string]any {
	fields := map[string]any{}
	if f.Category != "" {
		fields["category"] = f.Category
	}
	if f.Slug != "" {
		fields["slug"] = f.Slug
	}
	if f.Status != "" {
		fields["status"] = f.Status
	}
	return fields
}

func ensureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
