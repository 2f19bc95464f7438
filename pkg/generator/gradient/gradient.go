package gradient

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/blocks/pkg/color"
	"github.com/matzehuels/blocks/pkg/css"
	"github.com/matzehuels/blocks/pkg/errors"
)

// Kind is the registry name of this generator.
const Kind = "gradient"

// Gradient types.
const (
	TypeLinear = "linear"
	TypeRadial = "radial"
)

// Radial shapes.
const (
	ShapeCircle  = "circle"
	ShapeEllipse = "ellipse"
)

// MinStops is the smallest number of stops a gradient may have.
const MinStops = 2

// Stop is a colour stop. ID is opaque and only keeps list identity stable
// across edits; it is left out of JSON so content hashes ignore it.
type Stop struct {
	ID       string  `toml:"id,omitempty" yaml:"id,omitempty" json:"-" msgpack:"i,omitempty"`
	Color    string  `toml:"color" yaml:"color" json:"color" msgpack:"c"`
	Position float64 `toml:"position" yaml:"position" json:"position" msgpack:"p"`
}

// Gradient is the generator's parameter model.
type Gradient struct {
	Type  string  `toml:"type" yaml:"type" json:"type" msgpack:"t"`
	Angle float64 `toml:"angle" yaml:"angle" json:"angle" msgpack:"a"`
	Shape string  `toml:"shape" yaml:"shape" json:"shape" msgpack:"s"`
	Stops []Stop  `toml:"stops" yaml:"stops" json:"stops" msgpack:"st"`
}

// NewStop returns a stop with a fresh id.
func NewStop(hex string, position float64) Stop {
	return Stop{ID: uuid.NewString(), Color: hex, Position: position}
}

// Default returns the violet-to-blue gradient the generator opens with.
func Default() *Gradient {
	return &Gradient{
		Type:  TypeLinear,
		Angle: 135,
		Shape: ShapeCircle,
		Stops: []Stop{NewStop("#8b5cf6", 0), NewStop("#3b82f6", 100)},
	}
}

func (g *Gradient) Kind() string { return Kind }

// Normalize wraps the angle into [0,360), clamps positions, fills in
// missing ids and defaults unknown enums.
func (g *Gradient) Normalize() {
	if g.Type != TypeRadial {
		g.Type = TypeLinear
	}
	if g.Shape != ShapeEllipse {
		g.Shape = ShapeCircle
	}
	g.Angle = wrapAngle(g.Angle)
	for i := range g.Stops {
		g.Stops[i].Position = css.Clamp(g.Stops[i].Position, 0, 100)
		if g.Stops[i].ID == "" {
			g.Stops[i].ID = uuid.NewString()
		}
	}
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// Sorted returns the stops ordered by ascending position. Equal positions
// keep their relative order.
func (g *Gradient) Sorted() []Stop {
	stops := slices.Clone(g.Stops)
	slices.SortStableFunc(stops, func(a, b Stop) int {
		return cmp.Compare(a.Position, b.Position)
	})
	return stops
}

func (g *Gradient) validate() error {
	if len(g.Stops) < MinStops {
		return errors.New(errors.ErrCodeInvalidParams, "gradient needs at least %d stops, got %d", MinStops, len(g.Stops))
	}
	for _, s := range g.Stops {
		if err := color.Validate(s.Color); err != nil {
			return err
		}
	}
	return nil
}

// StopList renders the sorted "{color} {position}%" list.
func (g *Gradient) StopList() (string, error) {
	if err := g.validate(); err != nil {
		return "", err
	}
	parts := make([]string, 0, len(g.Stops))
	for _, s := range g.Sorted() {
		parts = append(parts, s.Color+" "+css.Num(s.Position)+"%")
	}
	return strings.Join(parts, ", "), nil
}

// Value renders the gradient function, e.g. "linear-gradient(135deg, ...)".
func (g *Gradient) Value() (string, error) {
	stops, err := g.StopList()
	if err != nil {
		return "", err
	}
	if g.Type == TypeRadial {
		shape := g.Shape
		if shape != ShapeEllipse {
			shape = ShapeCircle
		}
		return "radial-gradient(" + shape + ", " + stops + ")", nil
	}
	return "linear-gradient(" + css.Num(wrapAngle(g.Angle)) + "deg, " + stops + ")", nil
}

// CSS renders "background: <gradient>;".
func (g *Gradient) CSS() (string, error) {
	v, err := g.Value()
	if err != nil {
		return "", err
	}
	var b css.Block
	b.Add("background", v)
	return b.String(), nil
}

// TailwindValue applies the arbitrary-value escaping to the gradient function.
func TailwindValue(value string) string {
	value = strings.ReplaceAll(value, ", ", ",")
	return strings.ReplaceAll(value, " ", "_")
}

// Tailwind renders the gradient as a "bg-[...]" class.
func (g *Gradient) Tailwind() (string, error) {
	v, err := g.Value()
	if err != nil {
		return "", err
	}
	return "bg-[" + TailwindValue(v) + "]", nil
}

// AddStop inserts a stop and returns its id. The stop lands halfway between
// the two stops that are furthest apart, taking the colour of the earlier one.
func (g *Gradient) AddStop() string {
	sorted := g.Sorted()
	pos, hex := 50.0, "#ffffff"
	if len(sorted) > 0 {
		hex = sorted[0].Color
	}
	gap := -1.0
	for i := 1; i < len(sorted); i++ {
		if d := sorted[i].Position - sorted[i-1].Position; d > gap {
			gap = d
			pos = sorted[i-1].Position + d/2
			hex = sorted[i-1].Color
		}
	}
	s := NewStop(hex, math.Round(pos))
	g.Stops = append(g.Stops, s)
	return s.ID
}

// RemoveStop deletes the stop with the given id. It is a no-op returning
// false when the gradient is already at MinStops or the id is unknown.
func (g *Gradient) RemoveStop(id string) bool {
	if len(g.Stops) <= MinStops {
		return false
	}
	i := g.index(id)
	if i < 0 {
		return false
	}
	g.Stops = slices.Delete(g.Stops, i, i+1)
	return true
}

// UpdateStop changes a stop's colour and position. Position is clamped to
// [0,100]. An invalid colour is rejected and leaves the stop untouched.
func (g *Gradient) UpdateStop(id, hex string, position float64) error {
	i := g.index(id)
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "stop %q not found", id)
	}
	if err := color.Validate(hex); err != nil {
		return err
	}
	g.Stops[i].Color = hex
	g.Stops[i].Position = css.Clamp(position, 0, 100)
	return nil
}

func (g *Gradient) index(id string) int {
	return slices.IndexFunc(g.Stops, func(s Stop) bool { return s.ID == id })
}

// Clone returns a deep copy.
func (g *Gradient) Clone() *Gradient {
	c := *g
	c.Stops = slices.Clone(g.Stops)
	return &c
}

// FileName returns the download name for format.
func (g *Gradient) FileName(format string) string {
	if format == "png" {
		return "gradient-genius.png"
	}
	return "gradient." + format
}
