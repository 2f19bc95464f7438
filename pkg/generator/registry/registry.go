// Package registry maps generator kind names to their default parameter
// models and reports which output formats each kind supports.
package registry

import (
	"slices"
	"sort"

	"github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator"
	"github.com/matzehuels/blocks/pkg/generator/blob"
	"github.com/matzehuels/blocks/pkg/generator/clippath"
	"github.com/matzehuels/blocks/pkg/generator/codeshot"
	"github.com/matzehuels/blocks/pkg/generator/gradient"
	"github.com/matzehuels/blocks/pkg/generator/loader"
	"github.com/matzehuels/blocks/pkg/generator/mesh"
	"github.com/matzehuels/blocks/pkg/generator/shadow"
	"github.com/matzehuels/blocks/pkg/generator/wave"
	"github.com/matzehuels/blocks/pkg/markdown"
)

// Output formats.
const (
	FormatCSS      = "css"
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatHTML     = "html"
	FormatPDF      = "pdf"
	FormatTailwind = "tailwind"
)

// AllFormats lists every format in a stable order.
var AllFormats = []string{FormatCSS, FormatTailwind, FormatSVG, FormatHTML, FormatPNG, FormatPDF}

// Factory returns a generator in its default state.
type Factory func() generator.Generator

var factories = map[string]Factory{
	shadow.KindBoxShadow: func() generator.Generator { return shadow.NewBoxShadow() },
	shadow.KindGlass:     func() generator.Generator { return shadow.NewGlass() },
	gradient.Kind:        func() generator.Generator { return gradient.Default() },
	clippath.Kind:        func() generator.Generator { return clippath.Default() },
	blob.Kind:            func() generator.Generator { return blob.Default() },
	mesh.Kind:            func() generator.Generator { return mesh.Default() },
	wave.Kind:            func() generator.Generator { return wave.Default() },
	loader.Kind:          func() generator.Generator { return loader.Default() },
	codeshot.Kind:        func() generator.Generator { return codeshot.Default() },
	markdown.Kind:        func() generator.Generator { return markdown.Default() },
}

// New returns the default generator for kind.
func New(kind string) (generator.Generator, error) {
	f, ok := factories[kind]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidKind, "unknown generator %q (available: %v)", kind, Kinds())
	}
	return f(), nil
}

// Kinds returns the registered kind names, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Formats lists the output formats g supports, in AllFormats order.
func Formats(g generator.Generator) []string {
	formats := []string{FormatCSS}
	if _, ok := g.(generator.Tailwinder); ok {
		formats = append(formats, FormatTailwind)
	}
	if _, ok := g.(generator.SVGer); ok {
		formats = append(formats, FormatSVG)
	}
	if _, ok := g.(generator.HTMLer); ok {
		formats = append(formats, FormatHTML)
	}
	if _, ok := g.(generator.Drawer); ok {
		formats = append(formats, FormatPNG)
	} else if _, ok := g.(generator.SVGRasterizer); ok {
		formats = append(formats, FormatPNG)
	}
	if _, ok := g.(generator.Printable); ok {
		formats = append(formats, FormatPDF)
	}
	return formats
}

// Supports reports whether g can produce format.
func Supports(g generator.Generator, format string) bool {
	return slices.Contains(Formats(g), format)
}

// Animated reports whether g can be animated.
func Animated(g generator.Generator) bool {
	_, ok := g.(generator.Animator)
	return ok
}

// Info describes a registered generator.
type Info struct {
	Kind     string   `json:"kind"`
	Formats  []string `json:"formats"`
	Animated bool     `json:"animated"`
	Random   bool     `json:"random"`
}

// Describe returns Info for every registered kind, sorted by kind.
func Describe() []Info {
	out := make([]Info, 0, len(factories))
	for _, k := range Kinds() {
		g := factories[k]()
		_, random := g.(generator.Randomizer)
		out = append(out, Info{Kind: k, Formats: Formats(g), Animated: Animated(g), Random: random})
	}
	return out
}
