// Command doctree normalizes markdown documents and imports them into a
// document store.
//
//	doctree fmt [-write] FILE...   rewrite files into canonical form
//	doctree check FILE...          report files that are not canonical
//	doctree import -db DSN -dir D  import a directory into a SQLite store
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	doctree "github.com/goliatone/go-doctree"
	"github.com/goliatone/go-doctree/cmd/doctree/internal/bootstrap"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch command := os.Args[1]; command {
	case "fmt":
		err = runFmt(os.Args[2:])
	case "check":
		err = runCheck(os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("doctree v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("doctree: %v", err)
	}
}

func runFmt(args []string) error {
	flags := flag.NewFlagSet("doctree-fmt", flag.ExitOnError)
	write := flags.Bool("write", false, "Rewrite files in place instead of printing to stdout")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return fmt.Errorf("fmt: at least one file is required")
	}

	engine, err := bootstrap.BuildEngine(bootstrap.Options{Quiet: true})
	if err != nil {
		return err
	}
	defer engine.Close()

	for _, path := range flags.Args() {
		doc, err := bootstrap.ReadDocument(path)
		if err != nil {
			return err
		}
		cleaned, err := engine.Clean(doc.Body)
		if err != nil {
			return fmt.Errorf("fmt %s: %w", path, err)
		}
		output := doc.Header + cleaned
		if *write {
			if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			continue
		}
		fmt.Print(output)
	}
	return nil
}

func runCheck(args []string) error {
	flags := flag.NewFlagSet("doctree-check", flag.ExitOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return fmt.Errorf("check: at least one file is required")
	}

	engine, err := bootstrap.BuildEngine(bootstrap.Options{Quiet: true})
	if err != nil {
		return err
	}
	defer engine.Close()

	dirty := 0
	for _, path := range flags.Args() {
		doc, err := bootstrap.ReadDocument(path)
		if err != nil {
			return err
		}
		cleaned, err := engine.Clean(doc.Body)
		if err != nil {
			return fmt.Errorf("check %s: %w", path, err)
		}
		if cleaned != doc.Body {
			fmt.Println(path)
			dirty++
		}
	}
	if dirty > 0 {
		os.Exit(1)
	}
	return nil
}

func runImport(args []string) error {
	flags := flag.NewFlagSet("doctree-import", flag.ExitOnError)
	dir := flags.String("dir", ".", "Directory to import markdown files from")
	dsn := flags.String("db", "doctree.db", "SQLite DSN for the document store")
	pattern := flags.String("pattern", "*.md", "Glob pattern applied to file names")
	logLevel := flags.String("log-level", "info", "Log level (trace|debug|info|warn|error)")
	logFormat := flags.String("log-format", "console", "Log format (json|console|pretty)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	engine, err := bootstrap.BuildEngine(bootstrap.Options{
		DSN:       *dsn,
		LogLevel:  *logLevel,
		LogFormat: *logFormat,
	})
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	imported := 0

	err = filepath.WalkDir(*dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(*pattern, entry.Name()); !ok {
			return nil
		}

		doc, err := bootstrap.ReadDocument(path)
		if err != nil {
			return err
		}
		tree, err := engine.Deserialize(doc.Body)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		record := &doctree.Record{
			Title: bootstrap.Title(doc, tree),
			Slug:  strings.TrimSpace(doc.Meta.Slug),
		}
		if _, err := engine.Save(ctx, record, tree); err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		imported++
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("imported %d documents into %s\n", imported, *dsn)
	return nil
}

func printUsage() {
	fmt.Println(`doctree - document tree consistency engine

Usage:
  doctree fmt [-write] FILE...    Rewrite markdown files into canonical form
  doctree check FILE...           List files that are not in canonical form
  doctree import [flags]          Import a directory into a SQLite store
  doctree version                 Print the version
  doctree help                    Show this help`)
}
