package shadow

import (
	"github.com/matzehuels/blocks/pkg/color"
	"github.com/matzehuels/blocks/pkg/css"
)

// Glass is the glassmorphism generator: a translucent background, a backdrop
// blur and a faint border. Gradient switches the background from a solid
// fill to a two-stop linear gradient; it is a toggle, not inferred from the
// number of colours set.
type Glass struct {
	Color        string  `toml:"color" yaml:"color" json:"color" msgpack:"c"`
	Transparency float64 `toml:"transparency" yaml:"transparency" json:"transparency" msgpack:"t"`
	Blur         float64 `toml:"blur" yaml:"blur" json:"blur" msgpack:"b"`
	Radius       float64 `toml:"radius" yaml:"radius" json:"radius" msgpack:"r"`
	Outline      float64 `toml:"outline" yaml:"outline" json:"outline" msgpack:"o"`
	Gradient     bool    `toml:"gradient" yaml:"gradient" json:"gradient" msgpack:"g"`
	SecondColor  string  `toml:"second_color" yaml:"second_color" json:"second_color" msgpack:"c2"`
	Angle        float64 `toml:"angle" yaml:"angle" json:"angle" msgpack:"a"`
	Shadow       bool    `toml:"shadow" yaml:"shadow" json:"shadow" msgpack:"s"`
}

// NewGlass returns the generator's opening state.
func NewGlass() *Glass {
	return &Glass{
		Color:        "#ffffff",
		Transparency: 0.25,
		Blur:         10,
		Radius:       16,
		Outline:      0.18,
		SecondColor:  "#8b5cf6",
		Angle:        135,
		Shadow:       true,
	}
}

func (g *Glass) Kind() string { return KindGlass }

func (g *Glass) Normalize() {
	g.Transparency = css.Clamp(g.Transparency, 0, 1)
	g.Blur = css.Clamp(g.Blur, 0, 40)
	g.Radius = css.Clamp(g.Radius, 0, 100)
	g.Outline = css.Clamp(g.Outline, 0, 1)
	g.Angle = css.Clamp(g.Angle, 0, 360)
}

// Declarations builds the ordered declaration block.
func (g *Glass) Declarations() (css.Block, error) {
	bg, err := color.HexToRgba(g.Color, g.Transparency)
	if err != nil {
		return nil, err
	}
	if g.Gradient {
		second, err := color.HexToRgba(g.SecondColor, g.Transparency)
		if err != nil {
			return nil, err
		}
		bg = "linear-gradient(" + css.Num(g.Angle) + "deg, " + bg + ", " + second + ")"
	}
	border := "rgba(255, 255, 255, " + color.FormatAlpha(g.Outline) + ")"
	blur := "blur(" + css.Num(g.Blur) + "px)"

	var b css.Block
	b.Add("background", bg)
	b.Add("backdrop-filter", blur)
	b.Add("-webkit-backdrop-filter", blur)
	b.Add("border-radius", css.Num(g.Radius)+"px")
	b.Add("border", "1px solid "+border)
	if g.Shadow {
		b.Add("box-shadow", "0 8px 32px 0 rgba(31, 38, 135, 0.37)")
	}
	return b, nil
}

func (g *Glass) CSS() (string, error) {
	b, err := g.Declarations()
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
