package gradient

import (
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/blocks/pkg/color"
	"github.com/matzehuels/blocks/pkg/errors"
)

// Randomize replaces the gradient with 2 or 3 random stops. The first and
// last stops sit at 0% and 100%; a third appears half the time somewhere in
// [10,90]. Linear is chosen 70% of the time, with a random whole-degree angle.
func (g *Gradient) Randomize(rng *rand.Rand) {
	stops := []Stop{
		NewStop(color.Random(rng), 0),
		NewStop(color.Random(rng), 100),
	}
	if rng.Float64() < 0.5 {
		stops = append(stops, NewStop(color.Random(rng), float64(10+rng.IntN(81))))
	}
	g.Stops = stops

	if rng.Float64() < 0.7 {
		g.Type = TypeLinear
		g.Angle = float64(rng.IntN(360))
	} else {
		g.Type = TypeRadial
	}
}

// Preset is a named gradient.
type Preset struct {
	Name     string
	Type     string
	Angle    float64
	Shape    string
	Colors   []string
	Position []float64
}

// Presets is the built-in preset library.
var Presets = []Preset{
	{Name: "sunset", Type: TypeLinear, Angle: 90, Colors: []string{"#ff7e5f", "#feb47b"}, Position: []float64{0, 100}},
	{Name: "ocean", Type: TypeLinear, Angle: 135, Colors: []string{"#2e3192", "#1bffff"}, Position: []float64{0, 100}},
	{Name: "violet", Type: TypeLinear, Angle: 135, Colors: []string{"#8b5cf6", "#3b82f6"}, Position: []float64{0, 100}},
	{Name: "emerald", Type: TypeLinear, Angle: 160, Colors: []string{"#10b981", "#064e3b"}, Position: []float64{0, 100}},
	{Name: "aurora", Type: TypeLinear, Angle: 45, Colors: []string{"#00c9ff", "#92fe9d", "#f0abfc"}, Position: []float64{0, 50, 100}},
	{Name: "peach", Type: TypeRadial, Shape: ShapeCircle, Colors: []string{"#ffecd2", "#fcb69f"}, Position: []float64{0, 100}},
	{Name: "midnight", Type: TypeRadial, Shape: ShapeEllipse, Colors: []string{"#434343", "#000000"}, Position: []float64{0, 100}},
	{Name: "candy", Type: TypeLinear, Angle: 120, Colors: []string{"#f093fb", "#f5576c"}, Position: []float64{0, 100}},
}

// FindPreset looks a preset up by name.
func FindPreset(name string) (Preset, bool) {
	i := slices.IndexFunc(Presets, func(p Preset) bool { return p.Name == name })
	if i < 0 {
		return Preset{}, false
	}
	return Presets[i], true
}

// ApplyPreset replaces the gradient with the named preset.
func (g *Gradient) ApplyPreset(name string) error {
	p, ok := FindPreset(name)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "unknown gradient preset %q", name)
	}
	g.Type = p.Type
	g.Angle = p.Angle
	if p.Shape != "" {
		g.Shape = p.Shape
	}
	g.Stops = g.Stops[:0:0]
	for i, c := range p.Colors {
		g.Stops = append(g.Stops, NewStop(c, p.Position[i]))
	}
	return nil
}
