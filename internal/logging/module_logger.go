package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

const (
	rootModule     = "sluggable"
	slugsModule    = "sluggable.slugs"
	observerModule = "sluggable.observer"
	articlesModule = "sluggable.articles"
)

// ModuleLogger returns a logger scoped to module, falling back to NoOp when no
// provider (or no logger) is available. The module name is attached as the
// "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = rootModule
	}

	var logger interfaces.Logger = NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// SlugsLogger is the logger used by the slug service.
func SlugsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, slugsModule)
}

// ObserverLogger is the logger used by the lifecycle observer.
func ObserverLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, observerModule)
}

// ArticlesLogger is the logger used by the articles module.
func ArticlesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, articlesModule)
}

// WithFields attaches fields when the logger implements FieldsLogger.
// Loggers without field support are returned unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(maps.Clone(fields))
	}
	return logger
}

// WithRecord tags entries with the record type and key being slugged.
func WithRecord(logger interfaces.Logger, typeName, key string) interfaces.Logger {
	fields := map[string]any{}
	if typeName = strings.TrimSpace(typeName); typeName != "" {
		fields["record_type"] = typeName
	}
	if key = strings.TrimSpace(key); key != "" {
		fields["record_key"] = key
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
