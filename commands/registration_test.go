package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-catalog/internal/di"
	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/products"
	"github.com/goliatone/go-catalog/internal/runtimeconfig"
	"github.com/goliatone/go-command/dispatcher"
)

func newContainer(t *testing.T) *di.Container {
	t.Helper()
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	return container
}

func TestRegisterContainerCommandsBuildsHandlers(t *testing.T) {
	registry := &recordingRegistry{}
	recorder := &recordingDispatcher{}

	result, err := RegisterContainerCommands(newContainer(t), RegistrationOptions{
		Registry:   registry,
		Dispatcher: recorder,
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) != 4 {
		t.Fatalf("expected four handlers, got %d", len(result.Handlers))
	}
	if len(registry.handlers) != len(result.Handlers) {
		t.Fatalf("expected registry to record all handlers, got %d of %d", len(registry.handlers), len(result.Handlers))
	}
	if len(result.Subscriptions) != 4 {
		t.Fatalf("expected a subscription per handler, got %d", len(result.Subscriptions))
	}

	result.Unsubscribe()
	for _, sub := range recorder.subscriptions {
		if !sub.unsubscribed {
			t.Fatalf("expected subscription for %T to be released", sub.handler)
		}
	}
}

func TestRegisterContainerCommandsWithoutRegistrars(t *testing.T) {
	result, err := RegisterContainerCommands(newContainer(t), RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) == 0 {
		t.Fatal("expected handlers to be built even without registrars")
	}
	if len(result.Subscriptions) != 0 {
		t.Fatalf("expected no dispatcher subscriptions without dispatcher, got %d", len(result.Subscriptions))
	}
}

func TestRegisterContainerCommandsCollectsDispatcherErrors(t *testing.T) {
	boom := errors.New("dispatcher offline")
	result, err := RegisterContainerCommands(newContainer(t), RegistrationOptions{
		Dispatcher: &recordingDispatcher{err: boom},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected dispatcher error, got %v", err)
	}
	if len(result.Handlers) != 4 {
		t.Fatalf("expected handlers to be built despite dispatcher errors, got %d", len(result.Handlers))
	}
}

func TestGoCommandDispatcherRoutesMessages(t *testing.T) {
	container := newContainer(t)
	var written []*products.Product

	result, err := RegisterContainerCommands(container, RegistrationOptions{
		Dispatcher:     GoCommandDispatcher{},
		ProductWritten: func(p *products.Product) { written = append(written, p) },
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	t.Cleanup(result.Unsubscribe)

	ctx := context.Background()
	price := 39000.0
	msg := CreateProductCommand{ProductFields: ProductFields{
		Category: "tea",
		Price:    &price,
		Name:     domain.LocalizedString{"en": "Peach Tea", "vi": "Trà đào"},
	}}
	if err := dispatcher.Dispatch(ctx, msg); err != nil {
		t.Fatalf("dispatch create: %v", err)
	}
	if len(written) != 1 || written[0].Slug != "peach-tea" {
		t.Fatalf("expected peach-tea to be written, got %#v", written)
	}

	home := UpsertHomeCommand{HeroTitle: domain.LocalizedString{"vi": "Chào mừng"}}
	if err := dispatcher.Dispatch(ctx, home); err != nil {
		t.Fatalf("dispatch home: %v", err)
	}
	if _, err := container.HomeService().Get(ctx, "home"); err != nil {
		t.Fatalf("expected home content saved, got %v", err)
	}

	if _, err := (GoCommandDispatcher{}).RegisterCommand("not a handler"); err == nil {
		t.Fatal("expected unsupported handler error")
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

type recordingDispatcher struct {
	subscriptions []*recordingSubscription
	err           error
}

func (d *recordingDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	if d.err != nil {
		return nil, d.err
	}
	sub := &recordingSubscription{handler: handler}
	d.subscriptions = append(d.subscriptions, sub)
	return sub, nil
}

type recordingSubscription struct {
	handler      any
	unsubscribed bool
}

func (s *recordingSubscription) Unsubscribe() {
	s.unsubscribed = true
}
