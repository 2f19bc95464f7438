// Package generator defines the capabilities shared by every CSS/SVG generator.
//
// Each generator is a parameter model with methods: the struct that holds the
// user-adjustable knobs also knows how to serialize itself. There is no base
// type; a generator opts into outputs by implementing the small interfaces
// below, and callers (pipeline, server, CLI) discover them with type
// assertions.
//
//	var g generator.Generator = gradient.Default()
//	css, err := g.CSS()
//	if s, ok := g.(generator.SVGer); ok {
//	    svg, err := s.SVG()
//	}
//
// Concrete generators live in subpackages (gradient, shadow, clippath, blob,
// mesh, wave, loader, codeshot). The registry subpackage maps kind names to
// default instances so parameter documents can be decoded by kind.
package generator

import (
	"math/rand/v2"

	"github.com/matzehuels/blocks/pkg/raster"
)

// Generator is the minimal capability: a named parameter model that
// serializes to a block of CSS declarations.
type Generator interface {
	Kind() string
	CSS() (string, error)
}

// SVGer produces standalone SVG markup.
type SVGer interface {
	SVG() (string, error)
}

// SVGRasterizer is an SVGer whose markup can be rasterized at a fixed
// pixel size when the generator has no Drawer of its own.
type SVGRasterizer interface {
	SVGer
	PNGSize() (width, height int)
}

// HTMLer produces an HTML snippet (markup plus any embedded styles).
type HTMLer interface {
	HTML() (string, error)
}

// Printable produces a standalone HTML document meant to be printed to PDF.
type Printable interface {
	PrintDocument() (title, html string, err error)
}

// Tailwinder produces a Tailwind arbitrary-value class.
type Tailwinder interface {
	Tailwind() (string, error)
}

// Drawer renders onto a raster surface of the size it asks for.
type Drawer interface {
	CanvasSize() raster.Size
	Draw(s raster.Surface) error
}

// Randomizer replaces its parameters with random ones.
type Randomizer interface {
	Randomize(rng *rand.Rand)
}

// Normalizer clamps every numeric field into its declared range.
type Normalizer interface {
	Normalize()
}

// Animator evaluates the generator at time t. The returned generator is a
// snapshot; the receiver is left untouched.
//
// Animated reports the document's animate toggle. Renderers that take a
// time only apply Frame when it is on; live previews switch it on with
// SetAnimated.
type Animator interface {
	Frame(t float64) Generator
	// AnimationSpeed is the per-frame clock increment multiplier.
	AnimationSpeed() float64
	Animated() bool
	SetAnimated(on bool)
}

// Validator rejects parameters that no output could be rendered from, such
// as sizes beyond the raster budget. Renderers call it before any output.
type Validator interface {
	Validate() error
}

// Namer supplies the download file name for an output format.
type Namer interface {
	FileName(format string) string
}

// Output is one rendered artifact.
type Output struct {
	Kind   string
	Format string
	Body   []byte
}
