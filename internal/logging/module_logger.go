package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-catalog/pkg/interfaces"
)

const (
	rootModule     = "catalog"
	productsModule = "catalog.products"
	homeModule     = "catalog.home"
	httpModule     = "catalog.http"
	CommandsModule = "catalog.commands"
)

const (
	fieldRequestMethod = "method"
	fieldRequestPath   = "path"
	fieldLocale        = "locale"
)

// ModuleLogger returns a logger scoped to module and tagged with a "module"
// field. A nil provider yields a no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ProductsLogger returns the logger namespace reserved for product services.
func ProductsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, productsModule)
}

// HomeLogger returns the logger namespace reserved for home content.
func HomeLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, homeModule)
}

// HTTPLogger returns the logger namespace reserved for the HTTP adapter.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, CommandsModule)
}

// WithRequestContext adds request method, path and resolved locale. Empty
// values are skipped.
func WithRequestContext(logger interfaces.Logger, method, path, locale string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(method); trimmed != "" {
		fields[fieldRequestMethod] = trimmed
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldRequestPath] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldLocale] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
