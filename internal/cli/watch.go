package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blocks/pkg/config"
	"github.com/matzehuels/blocks/pkg/pipeline"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// watchCommand creates the watch command, which re-renders a parameter
// document every time it changes.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		formats string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "watch <document>",
		Short: "Re-render a parameter document whenever it changes",
		Long: `Watch a TOML, YAML or JSON parameter document and re-render it on every save.

Invalid documents are reported and the previous outputs are left in place;
watching continues until interrupted.`,
		Example: `  blocks watch shadow.toml -f css
  blocks watch hero.yaml -f svg,png -o build/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := parseFormats(formats)
			if err := pipeline.ValidateFormats(fs); err != nil {
				return err
			}
			if _, err := config.FormatFromPath(args[0]); err != nil {
				return err
			}
			return c.withRunner(cmd.Context(), noCache, func(ctx context.Context, runner *pipeline.Runner) error {
				return c.runWatch(ctx, runner, args[0], fs, output)
			})
		},
	}

	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s) (comma-separated, default: all supported)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// runWatch renders input once, then again after every change until ctx is
// cancelled.
func (c *CLI) runWatch(ctx context.Context, runner *pipeline.Runner, input string, formats []string, output string) error {
	path, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	rebuild := func() {
		prog := newProgress(c.Logger)
		g, err := config.LoadDocument(path)
		if err != nil {
			printError("%v", err)
			return
		}
		if _, err := c.render(ctx, runner, g, pipeline.Options{Formats: formats}, output); err != nil {
			printError("%v", err)
			return
		}
		prog.done(fmt.Sprintf("Rebuilt %s", input))
	}

	rebuild()
	printInfo("Watching %s (ctrl+c to stop)", input)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			c.Logger.Debug("document changed", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			rebuild()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "err", err)
		}
	}
}
