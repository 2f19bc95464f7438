package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blocks/pkg/cache"
	"github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator"
	"github.com/matzehuels/blocks/pkg/generator/registry"
	"github.com/matzehuels/blocks/pkg/observability"
	"github.com/matzehuels/blocks/pkg/printer"
)

// Runner executes pipeline runs with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators; multiple goroutines
// can safely use the same Runner with different options as long as the
// Printer is safe for concurrent use (printer.Rod is).
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// Printer renders pdf output. Nil disables pdf.
	Printer printer.Sink
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute renders every requested format.
//
// Serialization errors (invalid colours, too few stops) abort the run.
// Export failures (EXPORT_FAILED from png or pdf) are logged, recorded in
// Result.Failed and the run continues with the next format.
func (r *Runner) Execute(ctx context.Context, opts Options) (result *Result, err error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	g := opts.Generator

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Kind, opts.Formats)
	start := time.Now()
	defer func() {
		hooks.OnGenerateComplete(ctx, opts.Kind, opts.Formats, time.Since(start), err)
	}()

	paramsHash, err := HashParams(g)
	if err != nil {
		return nil, err
	}

	result = &Result{
		Generator:  g,
		ParamsHash: paramsHash,
		Artifacts:  make(map[string][]byte),
		Failed:     make(map[string]error),
		Stats:      Stats{Kind: opts.Kind, Formats: make(map[string]FormatStats)},
		CacheHit:   true,
	}

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !registry.Supports(g, format) {
			result.Skipped = append(result.Skipped, format)
			opts.Logger.Debug("skipping unsupported format", "kind", opts.Kind, "format", format)
			continue
		}

		formatStart := time.Now()
		data, hit, err := r.renderCached(ctx, g, format, paramsHash, opts)
		if err != nil {
			if errors.Is(err, errors.ErrCodeExportFailed) {
				opts.Logger.Warn("export failed", "kind", opts.Kind, "format", format, "error", err)
				result.Failed[format] = err
				result.CacheHit = false
				continue
			}
			return nil, fmt.Errorf("render %s: %w", format, err)
		}

		result.Artifacts[format] = data
		result.CacheHit = result.CacheHit && hit
		result.Stats.Formats[format] = FormatStats{
			Bytes:    len(data),
			Duration: time.Since(formatStart),
			CacheHit: hit,
		}
	}
	if len(result.Artifacts) == 0 {
		result.CacheHit = false
	}
	result.Stats.RenderTime = time.Since(start)

	opts.Logger.Info("rendered outputs",
		"kind", opts.Kind,
		"formats", len(result.Artifacts),
		"cached", result.CacheHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// renderCached serves format from the cache or renders and stores it.
func (r *Runner) renderCached(ctx context.Context, g generator.Generator, format, paramsHash string, opts Options) ([]byte, bool, error) {
	key, keyType, err := r.cacheKey(g, format, paramsHash, opts)
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyType)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyType)
	}

	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, opts.Kind, format)
	start := time.Now()
	data, err := Render(ctx, g, format, r.Printer)
	hooks.OnExportComplete(ctx, opts.Kind, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, TTLArtifact); err != nil {
		opts.Logger.Debug("cache write failed", "key", key, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyType, len(data))
	}
	return data, false, nil
}

// cacheKey keys pdf output by its printed document, so equal documents
// share one print, and every other format by the parameter hash.
func (r *Runner) cacheKey(g generator.Generator, format, paramsHash string, opts Options) (key, keyType string, err error) {
	if format == registry.FormatPDF {
		if p, ok := g.(generator.Printable); ok {
			_, doc, err := p.PrintDocument()
			if err != nil {
				return "", "", err
			}
			return r.Keyer.PrintKey(cache.Hash([]byte(doc))), "print", nil
		}
	}
	return r.Keyer.ArtifactKey(opts.Kind, paramsHash, opts.ArtifactKeyOpts(format)), "artifact", nil
}

// HashParams returns the content hash of g's parameters.
func HashParams(g generator.Generator) (string, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash %s parameters", g.Kind())
	}
	return cache.Hash(data), nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var err error
	if r.Cache != nil {
		err = r.Cache.Close()
	}
	if c, ok := r.Printer.(interface{ Close() error }); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
