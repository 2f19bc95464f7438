// Package blob implements the fancy border-radius generator.
//
// A blob is driven by four handles, one per edge of the box. Each handle
// sets where the two adjacent corner curves meet along that edge, so the
// corner on the other end of the edge always receives the complementary
// value. The eight border-radius components are therefore derived:
//
//	border-radius: T% (100-T)% (100-B)% B% / L% R% (100-R)% (100-L)%
//
// Opposite corners cannot be set independently.
package blob

import (
	"math/rand/v2"
	"strings"

	"github.com/matzehuels/blocks/pkg/color"
	"github.com/matzehuels/blocks/pkg/css"
)

// Kind is the registry name of this generator.
const Kind = "blob"

const (
	gradientAngle   = 135
	hueOffset       = 40
	gradientSat     = 0.75
	gradientLight   = 0.6
	previewSizePx   = 300
	previewSelector = ".blob"
)

// Blob is the generator's parameter model. Handles are percentages.
type Blob struct {
	Top    float64 `toml:"top" yaml:"top" json:"top" msgpack:"t"`
	Right  float64 `toml:"right" yaml:"right" json:"right" msgpack:"r"`
	Bottom float64 `toml:"bottom" yaml:"bottom" json:"bottom" msgpack:"b"`
	Left   float64 `toml:"left" yaml:"left" json:"left" msgpack:"l"`

	From string `toml:"from" yaml:"from" json:"from" msgpack:"f"`
	To   string `toml:"to" yaml:"to" json:"to" msgpack:"o"`
}

// Default returns the generator's opening shape.
func Default() *Blob {
	return &Blob{Top: 30, Right: 60, Bottom: 70, Left: 40, From: "#8b5cf6", To: "#ec4899"}
}

func (b *Blob) Kind() string { return Kind }

func (b *Blob) Normalize() {
	b.Top = css.Clamp(b.Top, 0, 100)
	b.Right = css.Clamp(b.Right, 0, 100)
	b.Bottom = css.Clamp(b.Bottom, 0, 100)
	b.Left = css.Clamp(b.Left, 0, 100)
}

// Corners returns the eight border-radius components: four horizontal radii
// followed by four vertical radii, each in CSS corner order (top-left,
// top-right, bottom-right, bottom-left).
func (b *Blob) Corners() (h, v [4]float64) {
	t, r := css.Clamp(b.Top, 0, 100), css.Clamp(b.Right, 0, 100)
	bt, l := css.Clamp(b.Bottom, 0, 100), css.Clamp(b.Left, 0, 100)
	h = [4]float64{t, 100 - t, 100 - bt, bt}
	v = [4]float64{l, r, 100 - r, 100 - l}
	return h, v
}

// Value renders the border-radius shorthand.
func (b *Blob) Value() string {
	h, v := b.Corners()
	return join(h) + " / " + join(v)
}

func join(vals [4]float64) string {
	parts := make([]string, len(vals))
	for i, x := range vals {
		parts[i] = css.Num(x) + "%"
	}
	return strings.Join(parts, " ")
}

// Background renders the gradient fill.
func (b *Blob) Background() (string, error) {
	if err := color.Validate(b.From); err != nil {
		return "", err
	}
	if err := color.Validate(b.To); err != nil {
		return "", err
	}
	return "linear-gradient(" + css.Num(gradientAngle) + "deg, " + b.From + ", " + b.To + ")", nil
}

// Declarations builds the ordered declaration block.
func (b *Blob) Declarations() (css.Block, error) {
	bg, err := b.Background()
	if err != nil {
		return nil, err
	}
	var blk css.Block
	blk.Add("border-radius", b.Value())
	blk.Add("background", bg)
	return blk, nil
}

// CSS renders the border-radius and background declarations.
func (b *Blob) CSS() (string, error) {
	blk, err := b.Declarations()
	if err != nil {
		return "", err
	}
	return blk.String(), nil
}

// HTML renders a self-contained preview element.
func (b *Blob) HTML() (string, error) {
	blk, err := b.Declarations()
	if err != nil {
		return "", err
	}
	blk.Add("width", css.Num(previewSizePx)+"px")
	blk.Add("height", css.Num(previewSizePx)+"px")
	return "<style>\n" + blk.Rule(previewSelector) + "\n</style>\n<div class=\"blob\"></div>", nil
}

// Tailwind renders the shape as a rounded-[...] class.
func (b *Blob) Tailwind() (string, error) {
	return "rounded-[" + strings.ReplaceAll(b.Value(), " ", "_") + "]", nil
}

// Randomize picks whole-number handles in [0,100] and a two-colour gradient
// whose second hue sits 40° after the first.
func (b *Blob) Randomize(rng *rand.Rand) {
	b.Top = float64(rng.IntN(101))
	b.Right = float64(rng.IntN(101))
	b.Bottom = float64(rng.IntN(101))
	b.Left = float64(rng.IntN(101))

	hue := float64(rng.IntN(360))
	b.From = color.FromHSL(hue, gradientSat, gradientLight)
	b.To = color.FromHSL(hue+hueOffset, gradientSat, gradientLight)
}

// FileName returns the download name for format.
func (b *Blob) FileName(format string) string { return "blob." + format }
