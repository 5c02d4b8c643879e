package homecmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-catalog/internal/commands"
	"github.com/goliatone/go-catalog/internal/homecontent"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
)

const upsertOperation = "home.upsert"

var _ command.Commander[UpsertHomeCommand] = (*UpsertHomeHandler)(nil)

// UpsertHomeHandler runs UpsertHomeCommand through the home content service.
type UpsertHomeHandler struct {
	inner *commands.Handler[UpsertHomeCommand]
}

// NewUpsertHomeHandler binds the handler to service.
func NewUpsertHomeHandler(service homecontent.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpsertHomeCommand]) *UpsertHomeHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	exec := func(ctx context.Context, msg UpsertHomeCommand) error {
		saved, err := service.Upsert(ctx, msg.request())
		if err != nil {
			return err
		}
		logging.WithFields(logger, map[string]any{"home_id": saved.ID}).Info("catalog.command.home.saved")
		return nil
	}

	handlerOpts := []commands.HandlerOption[UpsertHomeCommand]{
		commands.WithLogger[UpsertHomeCommand](logger),
		commands.WithOperation[UpsertHomeCommand](upsertOperation),
		commands.WithMessageFields(func(msg UpsertHomeCommand) map[string]any {
			return map[string]any{"key": msg.Key}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[UpsertHomeCommand](logger)),
	}
	return &UpsertHomeHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[UpsertHomeCommand].
func (h *UpsertHomeHandler) Execute(ctx context.Context, msg UpsertHomeCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CommandRegistry is the minimal registration contract used when wiring handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// RegisterHomeCommands builds the home handler and records it with reg when
// reg is not nil.
func RegisterHomeCommands(reg CommandRegistry, service homecontent.Service, provider interfaces.LoggerProvider, opts ...commands.HandlerOption[UpsertHomeCommand]) (*UpsertHomeHandler, error) {
	if service == nil {
		return nil, errors.New("home command registration: service is nil")
	}
	handler := NewUpsertHomeHandler(service, commands.CommandLogger(provider, "home"), opts...)
	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return handler, nil
}

// Subscribe attaches the handler to the go-command dispatcher.
func (h *UpsertHomeHandler) Subscribe() interface{ Unsubscribe() } {
	return dispatcher.SubscribeCommand[UpsertHomeCommand](h)
}
