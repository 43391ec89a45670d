// Package bootstrap builds engines and reads markdown documents for the
// doctree command line tools.
package bootstrap

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/frontmatter"

	doctree "github.com/goliatone/go-doctree"
	"github.com/goliatone/go-doctree/document"
)

// Options captures the flags shared by the CLI subcommands.
type Options struct {
	DSN       string
	LogLevel  string
	LogFormat string
	Quiet     bool
}

// BuildEngine constructs an engine from CLI options.
func BuildEngine(opts Options) (*doctree.Engine, error) {
	cfg := doctree.DefaultConfig()
	cfg.Storage.DSN = opts.DSN
	if opts.Quiet {
		cfg.Logging.Enabled = false
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.Logging.Format = opts.LogFormat
	}
	return doctree.New(cfg)
}

// Meta is the front matter subset the tools care about. Unknown keys are
// preserved verbatim in the raw header, never rewritten.
type Meta struct {
	Title string `yaml:"title"`
	Slug  string `yaml:"slug"`
}

// Document is a markdown file split into its raw front matter header and
// body.
type Document struct {
	Path   string
	Meta   Meta
	Header string
	Body   string
}

// ReadDocument loads a markdown file and splits the front matter from the
// body. The header is kept as raw text so formatting never reorders or
// rewrites user metadata.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		// Malformed front matter: treat the whole file as body.
		return &Document{Path: path, Body: string(data)}, nil
	}

	header := string(data[:len(data)-len(body)])
	return &Document{
		Path:   path,
		Meta:   meta,
		Header: header,
		Body:   string(body),
	}, nil
}

// Title resolves a document title: front matter first, then the first
// heading, then the file path.
func Title(doc *Document, tree *document.Node) string {
	if strings.TrimSpace(doc.Meta.Title) != "" {
		return strings.TrimSpace(doc.Meta.Title)
	}

	title := ""
	document.Walk(tree, func(n *document.Node) bool {
		if title != "" {
			return false
		}
		if n.Kind == document.KindHeading {
			title = document.PlainText(n)
			return false
		}
		return true
	})
	if title != "" {
		return title
	}
	return doc.Path
}
