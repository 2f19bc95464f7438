package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blocks/pkg/config"
	"github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator"
	"github.com/matzehuels/blocks/pkg/generator/registry"
	"github.com/matzehuels/blocks/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	kind    string  // generator kind when no document is given
	formats string  // comma-separated output formats
	output  string  // output file (single format) or base path (multiple)
	time    float64 // animation frame to render
	random  bool    // randomize parameters before rendering
	seed    uint64  // random seed (0 picks one)
	refresh bool    // bypass cache reads
	noCache bool    // disable caching
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [document]",
		Short: "Render a parameter document (or a kind's defaults) to output formats",
		Long: `Render a parameter document to CSS, Tailwind, SVG, HTML, PNG or PDF.

The document is a TOML, YAML or JSON file with a "kind" key and a "params"
table. Without a document, --kind renders that generator's defaults.

With a single text format and no --output the artifact is printed to stdout.
Otherwise files are written using the generator's file name.`,
		Example: `  blocks generate --kind gradient
  blocks generate shadow.toml -f css,tailwind
  blocks generate wave.yaml -f png -o hero.png
  blocks generate --kind blob --random --seed 7 -f svg,html -o out/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runGenerate(cmd.Context(), input, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "", "generator kind (see 'blocks list')")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): css, tailwind, svg, html, png, pdf (comma-separated, default: all supported)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().Float64VarP(&opts.time, "time", "t", 0, "render the animation frame at time t")
	cmd.Flags().BoolVar(&opts.random, "random", false, "randomize parameters before rendering")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for --random (0 picks one)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	_ = cmd.RegisterFlagCompletionFunc("kind", completeKinds)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// runGenerate loads the generator and renders it.
func (c *CLI) runGenerate(ctx context.Context, input string, opts generateOpts) error {
	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	g, err := loadGenerator(input, opts.kind)
	if err != nil {
		return err
	}
	if opts.random {
		if err := randomize(g, opts.seed); err != nil {
			return err
		}
	}

	return c.withRunner(ctx, opts.noCache, func(ctx context.Context, runner *pipeline.Runner) error {
		_, err := c.render(ctx, runner, g, pipeline.Options{
			Formats: formats,
			Time:    opts.time,
			Refresh: opts.refresh,
		}, opts.output)
		return err
	})
}

// render executes one pipeline run and writes its artifacts.
func (c *CLI) render(ctx context.Context, runner *pipeline.Runner, g generator.Generator, opts pipeline.Options, output string) ([]string, error) {
	opts.Generator = g
	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", g.Kind()))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return nil, fmt.Errorf("generate %s: %w", g.Kind(), err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		result: result,
		output: output,
		stdout: c.stdout(),
	})
}

// loadGenerator reads a parameter document, or falls back to the registry
// defaults for kind. A kind given alongside a document must match it.
func loadGenerator(input, kind string) (generator.Generator, error) {
	if input == "" {
		if kind == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "a document or --kind is required")
		}
		return registry.New(kind)
	}
	g, err := config.LoadDocument(input)
	if err != nil {
		return nil, err
	}
	if kind != "" && kind != g.Kind() {
		return nil, errors.New(errors.ErrCodeInvalidKind, "document %s is a %s, not a %s", input, g.Kind(), kind)
	}
	return g, nil
}

// randomize replaces g's parameters with random ones drawn from seed.
func randomize(g generator.Generator, seed uint64) error {
	r, ok := g.(generator.Randomizer)
	if !ok {
		return errors.New(errors.ErrCodeUnsupported, "%s cannot be randomized", g.Kind())
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	r.Randomize(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
	if n, ok := g.(generator.Normalizer); ok {
		n.Normalize()
	}
	return nil
}
