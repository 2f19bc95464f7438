// Package pipeline turns a parameter model into output artifacts.
//
// This package is the single place where a generator meets its output
// formats. The CLI, the watch loop and the HTTP server all go through a
// [Runner], so caching, logging and format dispatch behave the same
// everywhere.
//
// # Architecture
//
// A run has two steps:
//
//  1. Resolve: pick the generator (from Options.Generator or the registry
//     default for Options.Kind), optionally evaluate an animation frame,
//     and hash its parameters.
//  2. Render: for every requested format the generator supports, serve the
//     artifact from the cache or render it (CSS, Tailwind class, SVG, HTML,
//     PNG via a raster surface or SVG rasterization, PDF via a print sink).
//
// Formats the generator does not support are skipped, not errors.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	runner.Printer = printer.NewRod()
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Kind:    "gradient",
//	    Formats: []string{"css", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blocks/pkg/cache"
	"github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator"
	"github.com/matzehuels/blocks/pkg/generator/registry"
)

// =============================================================================
// Default Values
// =============================================================================

// TTLArtifact is how long a rendered artifact stays cached.
const TTLArtifact = 7 * 24 * time.Hour

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	registry.FormatCSS:      true,
	registry.FormatTailwind: true,
	registry.FormatSVG:      true,
	registry.FormatHTML:     true,
	registry.FormatPNG:      true,
	registry.FormatPDF:      true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a single pipeline run.
type Options struct {
	// Kind names the generator. It may be empty when Generator is set.
	Kind string `json:"kind"`
	// Formats to produce. Empty means every format the generator supports.
	Formats []string `json:"formats,omitempty"`
	// Time renders a single animation frame at t. Ignored for generators
	// that are not animated or whose animate toggle is off.
	Time float64 `json:"time,omitempty"`
	// Refresh bypasses cache reads; fresh results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Generator generator.Generator `json:"-"`
	Logger    *log.Logger         `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Generator is the parameter model that was rendered (a frame snapshot
	// when Options.Time was set).
	Generator generator.Generator

	// ParamsHash is the content hash of the parameters.
	ParamsHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Skipped lists requested formats the generator cannot produce.
	Skipped []string

	// Failed holds export failures (png, pdf) keyed by format. The run
	// continues past them.
	Failed map[string]error

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool
}

// Outputs returns the artifacts in canonical format order.
func (r *Result) Outputs() []generator.Output {
	var out []generator.Output
	for _, f := range registry.AllFormats {
		if body, ok := r.Artifacts[f]; ok {
			out = append(out, generator.Output{Kind: r.Stats.Kind, Format: f, Body: body})
		}
	}
	return out
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Kind       string
	RenderTime time.Duration
	Formats    map[string]FormatStats
}

// FormatStats describes one rendered format.
type FormatStats struct {
	Bytes    int
	Duration time.Duration
	CacheHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %v)", format, registry.AllFormats)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults resolves the generator, evaluates the animation
// frame and fills in defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Generator == nil {
		if o.Kind == "" {
			return errors.New(errors.ErrCodeInvalidInput, "kind or generator is required")
		}
		g, err := registry.New(o.Kind)
		if err != nil {
			return err
		}
		o.Generator = g
	}
	if o.Kind == "" {
		o.Kind = o.Generator.Kind()
	}
	if o.Kind != o.Generator.Kind() {
		return errors.New(errors.ErrCodeInvalidInput, "kind %q does not match generator %q", o.Kind, o.Generator.Kind())
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := validate(o.Generator); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = registry.Formats(o.Generator)
	}
	if o.Time != 0 {
		// A still generator renders the same at any time, so the cache key
		// drops it too.
		if a, ok := o.Generator.(generator.Animator); ok && a.Animated() {
			o.Generator = a.Frame(o.Time)
		} else {
			o.Time = 0
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Time: o.Time}
}
