// Package wave implements the layered SVG wave generator.
package wave

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/blocks/pkg/color"
	"github.com/matzehuels/blocks/pkg/css"
	"github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator"
)

// Kind is the registry name of this generator.
const Kind = "svg-wave"

// Path modes.
const (
	ModeSmooth = "smooth"
	ModeStep   = "step"
	ModeSharp  = "sharp"
)

// Limits for the adjustable parameters.
const (
	MaxLayers     = 5
	MinComplexity = 2
	MaxComplexity = 20
)

// Point is a vertex in the 100×100 viewBox.
type Point struct {
	X, Y float64
}

// Wave is the generator's parameter model.
type Wave struct {
	Layers     int     `toml:"layers" yaml:"layers" json:"layers" msgpack:"l"`
	Complexity int     `toml:"complexity" yaml:"complexity" json:"complexity" msgpack:"c"`
	Height     float64 `toml:"height" yaml:"height" json:"height" msgpack:"h"`
	Seed       float64 `toml:"seed" yaml:"seed" json:"seed" msgpack:"s"`
	Mode       string  `toml:"mode" yaml:"mode" json:"mode" msgpack:"m"`
	Flipped    bool    `toml:"flipped" yaml:"flipped" json:"flipped" msgpack:"f"`
	Color      string  `toml:"color" yaml:"color" json:"color" msgpack:"co"`
	Gradient   bool    `toml:"gradient" yaml:"gradient" json:"gradient" msgpack:"g"`
	GradientTo string  `toml:"gradient_to" yaml:"gradient_to" json:"gradient_to" msgpack:"gt"`
	Animate    bool    `toml:"animate" yaml:"animate" json:"animate" msgpack:"a"`
	Speed      float64 `toml:"speed" yaml:"speed" json:"speed" msgpack:"sp"`

	t float64
}

// Default returns the emerald wave the generator opens with.
func Default() *Wave {
	return &Wave{
		Layers:     3,
		Complexity: 8,
		Height:     50,
		Seed:       1,
		Mode:       ModeSmooth,
		Color:      "#10b981",
		GradientTo: "#064e3b",
		Speed:      20,
	}
}

func (w *Wave) Kind() string { return Kind }

func (w *Wave) Normalize() {
	w.Layers = max(1, min(w.Layers, MaxLayers))
	w.Complexity = max(MinComplexity, min(w.Complexity, MaxComplexity))
	w.Height = css.Clamp(w.Height, 0, 100)
	switch w.Mode {
	case ModeSmooth, ModeStep, ModeSharp:
	default:
		w.Mode = ModeSmooth
	}
	w.Speed = css.Clamp(w.Speed, 1, 100)
}

func (w *Wave) validate() error {
	if w.Layers < 1 {
		return errors.New(errors.ErrCodeInvalidParams, "wave needs at least one layer")
	}
	if w.Complexity < MinComplexity {
		return errors.New(errors.ErrCodeInvalidParams, "wave complexity must be at least %d, got %d", MinComplexity, w.Complexity)
	}
	if err := color.Validate(w.Color); err != nil {
		return err
	}
	if w.Gradient {
		return color.Validate(w.GradientTo)
	}
	return nil
}

// GeneratePoints samples complexity evenly spaced points across the
// viewBox for one layer. Each y is a sine around the midline whose
// amplitude scales with height and shrinks by a tenth per layer, plus a
// small two-term ripple; results are clamped to [0,100]. t shifts the phase
// for animation.
func GeneratePoints(complexity int, height, seed float64, layer int, t float64) []Point {
	if complexity < MinComplexity {
		complexity = MinComplexity
	}
	amp := height / 2 * (1 - 0.1*float64(layer))
	points := make([]Point, complexity)
	for i := range points {
		angle := float64(i)*0.8 + seed + float64(layer)*0.6 + t
		noise := math.Sin(angle*2.3+seed)*3 + math.Cos(angle*1.7+float64(layer))*2
		points[i] = Point{
			X: float64(i) / float64(complexity-1) * 100,
			Y: css.Clamp(math.Sin(angle)*amp+50+noise, 0, 100),
		}
	}
	return points
}

// LayerOpacity is the fill opacity of layer i.
func LayerOpacity(i int) float64 {
	return max(0.1, 1-float64(i)*0.15)
}

// Frame returns the wave at animation time t.
func (w *Wave) Frame(t float64) generator.Generator {
	c := *w
	c.t = t
	return &c
}

// AnimationSpeed is the clock speed used while Animate is on.
func (w *Wave) AnimationSpeed() float64 { return w.Speed }

func (w *Wave) Animated() bool { return w.Animate }

func (w *Wave) SetAnimated(on bool) { w.Animate = on }

// Randomize picks a new seed, shape and colour.
func (w *Wave) Randomize(rng *rand.Rand) {
	w.Seed = math.Round(rng.Float64()*1000) / 10
	w.Complexity = 4 + rng.IntN(9)
	w.Height = float64(20 + rng.IntN(61))
	w.Layers = 1 + rng.IntN(MaxLayers)
	w.Color = color.Random(rng)
	w.GradientTo = color.Random(rng)
}

// FileName returns the download name for format.
func (w *Wave) FileName(format string) string {
	return "emerald-wave." + format
}
