package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/mdcopy"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Fetcher   mdcopy.Fetcher
	Exporter  mdcopy.Exporter
	Clipboard mdcopy.Clipboard
	Sitemaps  mdcopy.SitemapService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Engine    string        `short:"e" enum:"rules,library" default:"rules" env:"MDCOPY_ENGINE" help:"Markdown engine: rules or library"`
	Selector  []string      `short:"s" sep:"none" env:"MDCOPY_SELECTOR" help:"CSS selector of the content root, tried before detection (repeatable)"`
	Fallback  string        `enum:"none,trafilatura,readability" default:"none" env:"MDCOPY_FALLBACK" help:"Extractor for pages without a known content root: none, trafilatura or readability"`
	BaseURL   string        `name:"base-url" env:"MDCOPY_BASE_URL" help:"Resolve relative links against this URL instead of the page URL"`
	Render    bool          `short:"r" env:"MDCOPY_RENDER" help:"Render pages in headless Chrome before exporting"`
	WaitFor   []string      `name:"wait-for" sep:"none" help:"With --render, wait until an element matching this selector exists (repeatable)"`
	Browser   string        `env:"MDCOPY_BROWSER" help:"Chrome or Chromium binary used by --render"`
	Timeout   time.Duration `short:"t" default:"10s" env:"MDCOPY_TIMEOUT" help:"Fetch timeout per page"`
	UserAgent string        `name:"user-agent" env:"MDCOPY_USER_AGENT" help:"User-Agent sent with HTTP requests"`
	Verbose   bool          `short:"v" help:"Log each step to stderr"`

	Copy  CopyCmd  `cmd:"" help:"Copy a page to the clipboard as Markdown"`
	Print PrintCmd `cmd:"" help:"Print a page as Markdown"`
	Site  SiteCmd  `cmd:"" help:"Export every page in a site's sitemap to a directory"`
}

// CopyCmd is the "copy" subcommand.
type CopyCmd struct {
	URL  string        `arg:"" help:"Page URL, file:// URL or path to a saved HTML file"`
	Hold time.Duration `default:"2s" help:"How long to show the copied acknowledgment"`
}

// PrintCmd is the "print" subcommand.
type PrintCmd struct {
	URL    string `arg:"" help:"Page URL, file:// URL or path to a saved HTML file"`
	Output string `short:"o" help:"Write to this file instead of stdout"`
}

// SiteCmd is the "site" subcommand.
type SiteCmd struct {
	URL         string   `arg:"" help:"Site or section URL; only pages below its path are exported"`
	Name        string   `arg:"" optional:"" help:"Name for the output directory"`
	Path        string   `arg:"" optional:"" default:"." help:"Base path for output"`
	Preview     bool     `short:"p" help:"List the pages that would be exported without fetching them"`
	Include     []string `short:"i" sep:"none" help:"Only export URLs matching this regex (repeatable)"`
	Exclude     []string `short:"x" sep:"none" help:"Skip URLs matching this regex (repeatable)"`
	Concurrency int      `short:"c" default:"3" help:"Concurrent fetch limit"`
	Rate        float64  `default:"2" help:"Requests per second per host; 0 disables the limit"`
	DB          string   `name:"db" help:"Save pages to this SQLite database instead of Markdown files"`
}
