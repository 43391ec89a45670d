package interfaces

import "context"

// Logger is the leveled logging contract used across the engine. It mirrors
// the surface of github.com/goliatone/go-logger so hosts already using that
// package can plug it in without an adapter.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out named loggers. Implementations may scope children
// per name or return a shared instance for every name.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for attaching persistent structured
// fields. Providers supporting it return a new logger that emits the fields
// on every entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
