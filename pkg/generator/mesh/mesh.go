// Package mesh implements the mesh-gradient generator: overlapping radial
// colour blobs over a solid base, softened with a global blur.
package mesh

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/blocks/pkg/color"
	"github.com/matzehuels/blocks/pkg/css"
	"github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator"
)

// Kind is the registry name of this generator.
const Kind = "mesh-gradient"

// MinPoints is the fewest colour points a mesh may have.
const MinPoints = 2

// MaxPoints is the most colour points a mesh may have.
const MaxPoints = 24

// Wobble is how far, in percent, animation moves a point from its rest
// position along each axis.
const Wobble = 10

// Point is one colour blob. X and Y are in percent; Size is the radius, in
// percent, at which the colour has faded to transparent. ID is not part of
// the JSON encoding.
type Point struct {
	ID    string  `toml:"id,omitempty" yaml:"id,omitempty" json:"-" msgpack:"i,omitempty"`
	X     float64 `toml:"x" yaml:"x" json:"x" msgpack:"x"`
	Y     float64 `toml:"y" yaml:"y" json:"y" msgpack:"y"`
	Color string  `toml:"color" yaml:"color" json:"color" msgpack:"c"`
	Size  float64 `toml:"size" yaml:"size" json:"size" msgpack:"s"`
}

// Mesh is the generator's parameter model.
type Mesh struct {
	Points     []Point `toml:"points" yaml:"points" json:"points" msgpack:"p"`
	Background string  `toml:"background" yaml:"background" json:"background" msgpack:"bg"`
	Blur       float64 `toml:"blur" yaml:"blur" json:"blur" msgpack:"b"`
	Animate    bool    `toml:"animate" yaml:"animate" json:"animate" msgpack:"a"`
	Speed      float64 `toml:"speed" yaml:"speed" json:"speed" msgpack:"sp"`
}

var palette = []string{"#10b981", "#6366f1", "#ec4899", "#f59e0b", "#06b6d4", "#8b5cf6"}

// NewPoint returns a point with a fresh id.
func NewPoint(x, y float64, hex string, size float64) Point {
	return Point{ID: uuid.NewString(), X: x, Y: y, Color: hex, Size: size}
}

// Default returns the emerald/indigo mesh the generator opens with.
func Default() *Mesh {
	return &Mesh{
		Points: []Point{
			NewPoint(20, 20, "#10b981", 60),
			NewPoint(80, 80, "#6366f1", 50),
		},
		Background: "#000000",
		Blur:       40,
		Speed:      20,
	}
}

func (m *Mesh) Kind() string { return Kind }

func (m *Mesh) Normalize() {
	if len(m.Points) > MaxPoints {
		m.Points = m.Points[:MaxPoints]
	}
	for i := range m.Points {
		p := &m.Points[i]
		p.X = css.Clamp(p.X, 0, 100)
		p.Y = css.Clamp(p.Y, 0, 100)
		p.Size = css.Clamp(p.Size, 10, 100)
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
	}
	if m.Background == "" {
		m.Background = "#000000"
	}
	m.Blur = css.Clamp(m.Blur, 0, 100)
	m.Speed = css.Clamp(m.Speed, 1, 100)
}

// Validate checks the point count against MinPoints and MaxPoints.
func (m *Mesh) Validate() error {
	switch {
	case len(m.Points) < MinPoints:
		return errors.New(errors.ErrCodeInvalidParams, "mesh needs at least %d points, got %d", MinPoints, len(m.Points))
	case len(m.Points) > MaxPoints:
		return errors.New(errors.ErrCodeInvalidParams, "mesh allows at most %d points, got %d", MaxPoints, len(m.Points))
	}
	return nil
}

// Declarations builds the ordered declaration block.
func (m *Mesh) Declarations() (css.Block, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	bg := m.Background
	if bg == "" {
		bg = "#000000"
	}
	if err := color.Validate(bg); err != nil {
		return nil, err
	}

	layers := make([]string, 0, len(m.Points))
	for _, p := range m.Points {
		if err := color.Validate(p.Color); err != nil {
			return nil, err
		}
		x, y := css.Clamp(p.X, 0, 100), css.Clamp(p.Y, 0, 100)
		layers = append(layers, "radial-gradient(at "+css.Round(x, 2)+"% "+css.Round(y, 2)+"%, "+
			p.Color+" 0px, transparent "+css.Num(p.Size)+"%)")
	}

	var b css.Block
	b.Add("background-color", bg)
	b.Add("background-image", strings.Join(layers, ", "))
	b.Add("filter", "blur("+css.Num(m.Blur)+"px)")
	return b, nil
}

// CSS renders the mesh as background and filter declarations.
func (m *Mesh) CSS() (string, error) {
	b, err := m.Declarations()
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// HTML renders a full-bleed preview element.
func (m *Mesh) HTML() (string, error) {
	b, err := m.Declarations()
	if err != nil {
		return "", err
	}
	b.Add("position", "absolute")
	b.Add("inset", "0")
	return "<style>\n" + b.Rule(".mesh-gradient") + "\n</style>\n<div class=\"mesh-gradient\"></div>", nil
}

// Frame returns the mesh as it appears at animation time t: point i is
// displaced by (sin(t+i), cos(0.8t+i)) scaled by Wobble. Positions are
// clamped when serialized, not here, so the motion stays smooth.
func (m *Mesh) Frame(t float64) generator.Generator {
	out := m.Clone()
	for i := range out.Points {
		fi := float64(i)
		out.Points[i].X += math.Sin(t+fi) * Wobble
		out.Points[i].Y += math.Cos(0.8*t+fi) * Wobble
	}
	return out
}

// AnimationSpeed is the clock speed used while Animate is on.
func (m *Mesh) AnimationSpeed() float64 { return m.Speed }

func (m *Mesh) Animated() bool { return m.Animate }

func (m *Mesh) SetAnimated(on bool) { m.Animate = on }

// AddPoint appends a point at the centre using the next palette colour and
// returns its id. It is refused with "" once MaxPoints points exist.
func (m *Mesh) AddPoint() string {
	if len(m.Points) >= MaxPoints {
		return ""
	}
	p := NewPoint(50, 50, palette[len(m.Points)%len(palette)], 50)
	m.Points = append(m.Points, p)
	return p.ID
}

// RemovePoint deletes the point with the given id. It is refused when only
// MinPoints points remain.
func (m *Mesh) RemovePoint(id string) bool {
	if len(m.Points) <= MinPoints {
		return false
	}
	i := slices.IndexFunc(m.Points, func(p Point) bool { return p.ID == id })
	if i < 0 {
		return false
	}
	m.Points = slices.Delete(m.Points, i, i+1)
	return true
}

// Randomize scatters 3 to 5 points with random colours and sizes.
func (m *Mesh) Randomize(rng *rand.Rand) {
	n := 3 + rng.IntN(3)
	m.Points = m.Points[:0:0]
	for range n {
		m.Points = append(m.Points, NewPoint(
			float64(rng.IntN(101)),
			float64(rng.IntN(101)),
			color.Random(rng),
			float64(30+rng.IntN(51)),
		))
	}
	m.Blur = float64(20 + rng.IntN(61))
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	c := *m
	c.Points = slices.Clone(m.Points)
	return &c
}

// FileName returns the download name for format.
func (m *Mesh) FileName(format string) string { return "mesh-gradient." + format }
