package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-doctree/pkg/interfaces"
)

const (
	rootModule       = "doctree"
	normalizerModule = "doctree.normalizer"
	codecModule      = "doctree.codec"
	storageModule    = "doctree.storage"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if strings.TrimSpace(module) == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

// NormalizerLogger returns the logger namespace reserved for the normalizer.
func NormalizerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, normalizerModule)
}

// CodecLogger returns the logger namespace reserved for the markdown codec.
func CodecLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, codecModule)
}

// StorageLogger returns the logger namespace reserved for document storage.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// WithFields attaches structured fields when the implementation supports the
// optional FieldsLogger extension. Nil and empty maps are safe to pass.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// NoOp returns a logger that drops every entry. It satisfies the Logger
// contract so components operate safely when logging is disabled.
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
