package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mdcopy"
	"github.com/fwojciec/mdcopy/clipboard"
	"github.com/fwojciec/mdcopy/fs"
	mdhttp "github.com/fwojciec/mdcopy/http"
	"github.com/fwojciec/mdcopy/rod"
	mdslog "github.com/fwojciec/mdcopy/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. Nil fields are replaced with the
	// system implementations.
	Clipboard mdcopy.Clipboard
	Fetcher   mdcopy.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
		kong.Name("mdcopy"),
		kong.Description("Copy documentation pages as clean Markdown."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'mdcopy --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	deps.Logger = logger

	exporter, err := newPageExporter(cli, logger)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", mdcopy.ErrorMessage(err))
		return err
	}
	deps.Exporter = exporter

	target, fetch := cli.Copy.URL, true
	switch strings.Fields(kongCtx.Command())[0] {
	case "print":
		target = cli.Print.URL
	case "site":
		target, fetch = cli.Site.URL, !cli.Site.Preview
		deps.Sitemaps = mdslog.NewLoggingSitemapService(mdhttp.NewSitemapService(nil), logger)
	}

	if fetch {
		fetcher, err := m.fetcher(cli, target)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", mdcopy.ErrorMessage(err))
			return err
		}
		defer fetcher.Close()
		deps.Fetcher = mdslog.NewLoggingFetcher(fetcher, logger)
	}

	clip := m.Clipboard
	if clip == nil {
		clip = clipboard.NewClipboard()
	}
	deps.Clipboard = mdslog.NewLoggingClipboard(clip, logger)

	return kongCtx.Run(deps)
}

// fetcher returns the Fetcher for target: the filesystem for local pages,
// headless Chrome with --render and plain HTTP otherwise.
func (m *Main) fetcher(cli *CLI, target string) (mdcopy.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}

	if fs.IsLocal(target) {
		return fs.NewFetcher(), nil
	}

	if cli.Render {
		opts := []rod.Option{rod.WithFetchTimeout(cli.Timeout)}
		if len(cli.WaitFor) > 0 {
			opts = append(opts, rod.WithWaitFor(cli.WaitFor...))
		}
		if cli.Browser != "" {
			opts = append(opts, rod.WithBrowserBin(cli.Browser))
		}
		f, err := rod.NewFetcher(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		return f, nil
	}

	opts := []mdhttp.Option{mdhttp.WithTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		opts = append(opts, mdhttp.WithUserAgent(cli.UserAgent))
	}
	return mdhttp.NewFetcher(opts...), nil
}
