// Command webfetchd serves the fetch and search tools over the Model
// Context Protocol, via streamable HTTP (default) or stdio.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webfetch"
	"github.com/fwojciec/webfetch/exa"
	"github.com/fwojciec/webfetch/fetch"
	"github.com/fwojciec/webfetch/goquery"
	"github.com/fwojciec/webfetch/htmltomarkdown"
	webhttp "github.com/fwojciec/webfetch/http"
	webmcp "github.com/fwojciec/webfetch/mcp"
	"github.com/fwojciec/webfetch/rod"
	webslog "github.com/fwojciec/webfetch/slog"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// CLI defines the command-line flags.
type CLI struct {
	Addr        string        `help:"Listen address for the streamable HTTP MCP endpoint." default:":8081"`
	Stdio       bool          `help:"Serve MCP over stdin/stdout instead of HTTP."`
	BrowserOnly bool          `help:"Skip the plain-HTTP attempt and render every page in the browser."`
	BrowserBin  string        `help:"Path to the headless browser executable. Auto-detected when empty." env:"WEBFETCH_BROWSER_BIN"`
	Timeout     time.Duration `help:"Plain-HTTP fetch timeout." default:"10s"`
	Debug       bool          `help:"Enable debug logging."`
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the server with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webfetchd"),
		kong.Description("MCP server exposing URL fetching and web search tools"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level}))

	// The browser launches lazily on the first URL that needs rendering.
	manager := rod.NewManager(rod.WithBin(cli.BrowserBin))
	defer manager.Close()

	var browserFetcher webfetch.Fetcher = rod.NewFetcher(manager, rod.WithLogger(logger))
	if cli.Debug {
		browserFetcher = rod.NewLoggingFetcher(browserFetcher, logger)
	}

	httpFetcher := webhttp.NewFetcher(webhttp.WithTimeout(cli.Timeout))
	extractor := goquery.NewExtractor()
	converter := htmltomarkdown.NewConverter()

	orchestrator := fetch.NewOrchestrator(httpFetcher, browserFetcher, extractor, converter,
		fetch.WithBrowserOnly(cli.BrowserOnly),
		fetch.WithLogger(logger),
	)
	batch := webslog.NewLoggingBatchFetcher(orchestrator, logger)

	// Search degrades to per-call errors when EXA_API_KEY is absent;
	// fetching is unaffected.
	searcher := webslog.NewLoggingSearcher(exa.NewSearcher(os.Getenv("EXA_API_KEY")), logger)

	srv := webmcp.NewServer(batch, searcher)

	if cli.Stdio {
		logger.Info("serving MCP over stdio")
		return srv.ServeStdio()
	}

	logger.Info("serving MCP over HTTP", "addr", cli.Addr)
	return srv.Start(cli.Addr)
}
