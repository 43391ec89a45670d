// Package codec converts between the document tree and its external
// markdown representation: CommonMark plus the GFM table and task list
// extensions, plus an inline-HTML column layout tag. Deserialization is
// lossy-tolerant rather than strict; malformed constructs degrade to valid
// placeholder nodes or raw text, never to an error or dropped content.
package codec

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/goliatone/go-doctree/internal/logging"
	"github.com/goliatone/go-doctree/pkg/interfaces"
)

// Codec is a stateless markdown converter. A single instance can be shared
// across sessions without locking.
type Codec struct {
	engine goldmark.Markdown
	logger interfaces.Logger
}

// Option customises a Codec.
type Option func(*Codec)

// WithLogger injects a logger; recovered malformed input is reported at
// warn level so imports can be audited.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a Codec with the default goldmark engine (GFM, linkify,
// task lists).
func New(opts ...Option) *Codec {
	c := &Codec{
		engine: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
				extension.TaskList,
			),
		),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ interfaces.Codec = (*Codec)(nil)
