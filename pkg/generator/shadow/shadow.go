// Package shadow implements the box-shadow and glassmorphism generators.
package shadow

import (
	"strings"

	"github.com/matzehuels/blocks/pkg/color"
	"github.com/matzehuels/blocks/pkg/css"
)

// Kind names.
const (
	KindBoxShadow = "box-shadow"
	KindGlass     = "glassmorphism"
)

// Shadow is one box-shadow layer.
type Shadow struct {
	OffsetX float64 `toml:"offset_x" yaml:"offset_x" json:"offset_x" msgpack:"x"`
	OffsetY float64 `toml:"offset_y" yaml:"offset_y" json:"offset_y" msgpack:"y"`
	Blur    float64 `toml:"blur" yaml:"blur" json:"blur" msgpack:"b"`
	Spread  float64 `toml:"spread" yaml:"spread" json:"spread" msgpack:"s"`
	Color   string  `toml:"color" yaml:"color" json:"color" msgpack:"c"`
	Opacity float64 `toml:"opacity" yaml:"opacity" json:"opacity" msgpack:"o"`
	Inset   bool    `toml:"inset" yaml:"inset" json:"inset" msgpack:"i"`
}

// Normalize clamps the layer into the slider ranges.
func (s *Shadow) Normalize() {
	s.OffsetX = css.Clamp(s.OffsetX, -100, 100)
	s.OffsetY = css.Clamp(s.OffsetY, -100, 100)
	s.Blur = css.Clamp(s.Blur, 0, 200)
	s.Spread = css.Clamp(s.Spread, -100, 100)
	s.Opacity = css.Clamp(s.Opacity, 0, 1)
}

// Value renders the layer: "[inset ]Xpx Ypx Bpx Spx rgba(...)".
func (s Shadow) Value() (string, error) {
	rgba, err := color.HexToRgba(s.Color, s.Opacity)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if s.Inset {
		b.WriteString("inset ")
	}
	for _, v := range []float64{s.OffsetX, s.OffsetY, s.Blur, s.Spread} {
		b.WriteString(css.Num(v))
		b.WriteString("px ")
	}
	b.WriteString(rgba)
	return b.String(), nil
}

// BoxShadow is the box-shadow generator. Layers are painted front to back in
// the order given.
type BoxShadow struct {
	Layers []Shadow `toml:"layers" yaml:"layers" json:"layers" msgpack:"l"`
}

// DefaultShadow is the soft drop shadow the generator opens with.
func DefaultShadow() Shadow {
	return Shadow{OffsetY: 4, Blur: 16, Color: "#000000", Opacity: 0.1}
}

// NewBoxShadow returns a generator with a single default layer.
func NewBoxShadow() *BoxShadow {
	return &BoxShadow{Layers: []Shadow{DefaultShadow()}}
}

func (g *BoxShadow) Kind() string { return KindBoxShadow }

func (g *BoxShadow) Normalize() {
	for i := range g.Layers {
		g.Layers[i].Normalize()
	}
}

// Value joins all layers into a box-shadow value.
func (g *BoxShadow) Value() (string, error) {
	if len(g.Layers) == 0 {
		return "none", nil
	}
	parts := make([]string, 0, len(g.Layers))
	for _, l := range g.Layers {
		v, err := l.Value()
		if err != nil {
			return "", err
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, ", "), nil
}

// CSS renders "box-shadow: ...;".
func (g *BoxShadow) CSS() (string, error) {
	v, err := g.Value()
	if err != nil {
		return "", err
	}
	var b css.Block
	b.Add("box-shadow", v)
	return b.String(), nil
}

// AddLayer appends a copy of the default layer.
func (g *BoxShadow) AddLayer() {
	g.Layers = append(g.Layers, DefaultShadow())
}

// RemoveLayer deletes layer i. The last remaining layer cannot be removed.
func (g *BoxShadow) RemoveLayer(i int) bool {
	if len(g.Layers) <= 1 || i < 0 || i >= len(g.Layers) {
		return false
	}
	g.Layers = append(g.Layers[:i], g.Layers[i+1:]...)
	return true
}
