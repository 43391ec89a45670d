package doctree

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config controls engine construction: where documents persist and how the
// engine logs.
type Config struct {
	Storage StorageConfig
	Logging LoggingConfig
}

// StorageConfig selects the document store. An empty DSN keeps documents in
// memory; otherwise the DSN is opened as a SQLite database.
type StorageConfig struct {
	DSN string
}

// LoggingConfig configures the go-logger provider. Disabled logging swaps
// in a no-op logger without changing any behavior.
type LoggingConfig struct {
	Enabled   bool
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns a configuration suitable for library embedding:
// in-memory storage and console logging at info level.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Format:  "console",
		},
	}
}

// Validate checks the configuration before the engine is built.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Logging),
	)
}

// Validate checks the logging options against the levels and formats the
// go-logger provider accepts.
func (c LoggingConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level,
			validation.In("", "trace", "debug", "info", "warn", "warning", "error", "fatal")),
		validation.Field(&c.Format,
			validation.In("", "json", "console", "pretty")),
	)
}
