// Package cli implements the blocks command-line interface.
//
// The commands render generator parameter documents to CSS, Tailwind, SVG,
// HTML, PNG and PDF, preview animations in the terminal, run the HTTP API
// and manage bookmarks, share tokens and the artifact cache. The CLI is
// built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - generate: Render a parameter document or a kind's defaults
//   - watch: Re-render a document on every save
//   - animate: Live terminal preview of mesh gradients and waves
//   - randomize: Write a random parameter document
//   - markdown: Convert Markdown to a print-ready document or PDF
//   - serve: Run the HTTP API and animation websocket
//   - bookmarks, share, cache: Manage local state
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// routes the pipeline and cache hooks to the logger. Loggers are passed
// through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blocks/pkg/buildinfo"
	"github.com/matzehuels/blocks/pkg/cache"
	"github.com/matzehuels/blocks/pkg/config"
	"github.com/matzehuels/blocks/pkg/observability"
	"github.com/matzehuels/blocks/pkg/pipeline"
	"github.com/matzehuels/blocks/pkg/printer"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "blocks"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath overrides the settings file location (--config).
	configPath string
	// out receives command output. Nil means os.Stdout.
	out io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the pipeline,
// cache and server hooks are routed to the logger as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Install()
	}
}

// SetOutput redirects command output (artifacts, tokens, listings).
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

func (c *CLI) stdout() io.Writer {
	if c.out == nil {
		return os.Stdout
	}
	return c.out
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Blocks generates copy-pasteable CSS building blocks",
		Long:         `Blocks turns small parameter models (shadows, gradients, clip paths, blobs, waves, loaders, code screenshots, markdown documents) into CSS, Tailwind classes, SVG, HTML, PNG and PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "settings file (default: $XDG_CONFIG_HOME/blocks/config.toml)")

	// Register all subcommands
	root.AddCommand(c.listCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.randomizeCommand())
	root.AddCommand(c.markdownCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.bookmarksCommand())
	root.AddCommand(c.shareCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Settings & Runner Factory
// =============================================================================

// settings loads the settings file (or defaults when it does not exist).
func (c *CLI) settings() (config.Settings, error) {
	path := c.configPath
	if path == "" {
		p, err := config.SettingsPath()
		if err != nil {
			c.Logger.Debug("no settings path, using defaults", "err", err)
			return config.DefaultSettings(), nil
		}
		path = p
	}
	return config.LoadSettings(path)
}

// newRunner creates a pipeline runner for CLI use. Artifacts are cached
// under the XDG cache dir and scoped to the running build.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	s, err := c.settings()
	if err != nil {
		return nil, err
	}
	cc, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Short())
	runner := pipeline.NewRunner(cc, keyer, c.Logger)
	runner.Printer = printer.NewRod(
		printer.WithControlURL(s.Printer.ControlURL),
		printer.WithSettle(s.Printer.Settle),
		printer.WithLogger(c.Logger),
	)
	return runner, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// withRunner builds a runner, hands it to fn and closes it afterwards.
func (c *CLI) withRunner(ctx context.Context, noCache bool, fn func(context.Context, *pipeline.Runner) error) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	return fn(withLogger(ctx, c.Logger), runner)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/blocks/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string means every format the generator supports.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
