package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/fs"
	"github.com/fwojciec/docindex/goldmark"
	"github.com/fwojciec/docindex/goquery"
	"github.com/fwojciec/docindex/htmltomarkdown"
	docslog "github.com/fwojciec/docindex/slog"
	"github.com/fwojciec/docindex/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the snapshot service.
	DB *sqlite.DB

	// Services for end-to-end testing. When nil, Run wires the
	// filesystem loader and the SQLite snapshot service.
	Loader    docindex.CorpusLoader
	Snapshots docindex.SnapshotService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docindex"),
		kong.Description("Index macOS architecture guides and query their entities."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docindex --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		return err
	}
	if cli.Dir != "" {
		cfg.Corpus.Dir = cli.Dir
	}
	if cli.DB != "" {
		cfg.DB = cli.DB
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	matcher, err := cfg.Matcher()
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	loader := m.Loader
	if loader == nil {
		loader = newLoader(cfg)
	}
	deps.Logger = logger
	deps.Loader = docslog.NewLoggingCorpusLoader(loader, logger)
	deps.Builder = &docindex.Builder{Matcher: matcher, Concurrency: cfg.Concurrency}

	// Only commands that persist or read snapshots touch the database.
	if cmd := strings.Fields(kongCtx.Command())[0]; cmd == "build" || cmd == "snapshots" {
		snapshots := m.Snapshots
		if snapshots == nil {
			if err := m.openDB(cfg.DB); err != nil {
				fmt.Fprintf(stderr, "Hint: Set --db or DOCINDEX_DB to use a different database path\n")
				return err
			}
			defer m.Close()
			snapshots = sqlite.NewSnapshotService(m.DB)
		}
		deps.Snapshots = docslog.NewLoggingSnapshotService(snapshots, logger)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(path string) error {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// newLoader returns a filesystem loader that reads markdown and HTML guides.
func newLoader(cfg *Config) *fs.Loader {
	md := goldmark.NewParser()
	html := goquery.NewParser(htmltomarkdown.NewConverter(), md)

	loader := fs.NewLoader(cfg.Corpus.Dir, map[string]docindex.DocumentParser{
		".md":       md,
		".markdown": md,
		".html":     html,
		".htm":      html,
	})
	loader.Include = cfg.Corpus.Include
	loader.Exclude = cfg.Corpus.Exclude
	return loader
}
