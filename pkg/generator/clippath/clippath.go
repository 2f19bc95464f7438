// Package clippath implements the clip-path generator: polygon, circle,
// ellipse and inset shapes serialized to a CSS clip-path value.
package clippath

import (
	"slices"
	"strings"

	"github.com/matzehuels/blocks/pkg/css"
	"github.com/matzehuels/blocks/pkg/errors"
)

// Kind is the registry name of this generator.
const Kind = "clip-path"

// Shape modes.
const (
	ModePolygon = "polygon"
	ModeCircle  = "circle"
	ModeEllipse = "ellipse"
	ModeInset   = "inset"
)

// MinPoints is the smallest polygon the generator allows.
const MinPoints = 3

// Point is a polygon vertex in percent of the element box.
type Point struct {
	X float64 `toml:"x" yaml:"x" json:"x" msgpack:"x"`
	Y float64 `toml:"y" yaml:"y" json:"y" msgpack:"y"`
}

// Circle parameters, all in percent.
type Circle struct {
	Radius float64 `toml:"radius" yaml:"radius" json:"radius" msgpack:"r"`
	X      float64 `toml:"x" yaml:"x" json:"x" msgpack:"x"`
	Y      float64 `toml:"y" yaml:"y" json:"y" msgpack:"y"`
}

// Ellipse parameters, all in percent.
type Ellipse struct {
	RX float64 `toml:"rx" yaml:"rx" json:"rx" msgpack:"rx"`
	RY float64 `toml:"ry" yaml:"ry" json:"ry" msgpack:"ry"`
	X  float64 `toml:"x" yaml:"x" json:"x" msgpack:"x"`
	Y  float64 `toml:"y" yaml:"y" json:"y" msgpack:"y"`
}

// Inset parameters. Edges are percent, Round is pixels.
type Inset struct {
	Top    float64 `toml:"top" yaml:"top" json:"top" msgpack:"t"`
	Right  float64 `toml:"right" yaml:"right" json:"right" msgpack:"r"`
	Bottom float64 `toml:"bottom" yaml:"bottom" json:"bottom" msgpack:"b"`
	Left   float64 `toml:"left" yaml:"left" json:"left" msgpack:"l"`
	Round  float64 `toml:"round" yaml:"round" json:"round" msgpack:"rd"`
}

// ClipPath holds the parameters of all four modes; only the active one is
// serialized. Switching modes keeps the others' values.
type ClipPath struct {
	Mode    string  `toml:"mode" yaml:"mode" json:"mode" msgpack:"m"`
	Points  []Point `toml:"points" yaml:"points" json:"points" msgpack:"p"`
	Circle  Circle  `toml:"circle" yaml:"circle" json:"circle" msgpack:"c"`
	Ellipse Ellipse `toml:"ellipse" yaml:"ellipse" json:"ellipse" msgpack:"e"`
	Inset   Inset   `toml:"inset" yaml:"inset" json:"inset" msgpack:"i"`
}

// Default returns a triangle polygon with sensible values for the other modes.
func Default() *ClipPath {
	return &ClipPath{
		Mode:    ModePolygon,
		Points:  []Point{{50, 0}, {100, 100}, {0, 100}},
		Circle:  Circle{Radius: 50, X: 50, Y: 50},
		Ellipse: Ellipse{RX: 50, RY: 35, X: 50, Y: 50},
		Inset:   Inset{Top: 10, Right: 10, Bottom: 10, Left: 10, Round: 16},
	}
}

func (c *ClipPath) Kind() string { return Kind }

func (c *ClipPath) Normalize() {
	switch c.Mode {
	case ModePolygon, ModeCircle, ModeEllipse, ModeInset:
	default:
		c.Mode = ModePolygon
	}
	for i := range c.Points {
		c.Points[i] = clampPoint(c.Points[i])
	}
	c.Circle.Radius = pct(c.Circle.Radius)
	c.Circle.X, c.Circle.Y = pct(c.Circle.X), pct(c.Circle.Y)
	c.Ellipse.RX, c.Ellipse.RY = pct(c.Ellipse.RX), pct(c.Ellipse.RY)
	c.Ellipse.X, c.Ellipse.Y = pct(c.Ellipse.X), pct(c.Ellipse.Y)
	c.Inset.Top, c.Inset.Right = pct(c.Inset.Top), pct(c.Inset.Right)
	c.Inset.Bottom, c.Inset.Left = pct(c.Inset.Bottom), pct(c.Inset.Left)
	c.Inset.Round = css.Clamp(c.Inset.Round, 0, 100)
}

func pct(v float64) float64 { return css.Clamp(v, 0, 100) }

func clampPoint(p Point) Point { return Point{X: pct(p.X), Y: pct(p.Y)} }

// Value renders the clip-path function for the active mode.
func (c *ClipPath) Value() (string, error) {
	switch c.Mode {
	case ModePolygon, "":
		if len(c.Points) < MinPoints {
			return "", errors.New(errors.ErrCodeInvalidParams, "polygon needs at least %d points, got %d", MinPoints, len(c.Points))
		}
		return polygon(c.Points), nil
	case ModeCircle:
		return "circle(" + css.Num(c.Circle.Radius) + "% at " + css.Num(c.Circle.X) + "% " + css.Num(c.Circle.Y) + "%)", nil
	case ModeEllipse:
		e := c.Ellipse
		return "ellipse(" + css.Num(e.RX) + "% " + css.Num(e.RY) + "% at " + css.Num(e.X) + "% " + css.Num(e.Y) + "%)", nil
	case ModeInset:
		in := c.Inset
		return "inset(" + css.Num(in.Top) + "% " + css.Num(in.Right) + "% " + css.Num(in.Bottom) + "% " +
			css.Num(in.Left) + "% round " + css.Num(in.Round) + "px)", nil
	}
	return "", errors.New(errors.ErrCodeInvalidParams, "unknown clip-path mode %q", c.Mode)
}

func polygon(points []Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = css.Fixed(p.X, 1) + "% " + css.Fixed(p.Y, 1) + "%"
	}
	return "polygon(" + strings.Join(parts, ", ") + ")"
}

// CSS renders "clip-path: ...;".
func (c *ClipPath) CSS() (string, error) {
	v, err := c.Value()
	if err != nil {
		return "", err
	}
	var b css.Block
	b.Add("clip-path", v)
	return b.String(), nil
}

// Tailwind renders the value as a "[clip-path:...]" arbitrary property.
func (c *ClipPath) Tailwind() (string, error) {
	v, err := c.Value()
	if err != nil {
		return "", err
	}
	v = strings.ReplaceAll(v, ", ", ",")
	return "[clip-path:" + strings.ReplaceAll(v, " ", "_") + "]", nil
}

// MovePoint moves vertex i, clamping both coordinates to [0,100].
func (c *ClipPath) MovePoint(i int, x, y float64) bool {
	if i < 0 || i >= len(c.Points) {
		return false
	}
	c.Points[i] = clampPoint(Point{X: x, Y: y})
	return true
}

// AddPoint inserts the midpoint between vertex i and its successor (wrapping
// to the first vertex) and returns the new vertex's index.
func (c *ClipPath) AddPoint(i int) int {
	if len(c.Points) == 0 {
		c.Points = append(c.Points, Point{X: 50, Y: 50})
		return 0
	}
	i = max(0, min(i, len(c.Points)-1))
	a, b := c.Points[i], c.Points[(i+1)%len(c.Points)]
	mid := Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	c.Points = slices.Insert(c.Points, i+1, mid)
	return i + 1
}

// RemovePoint deletes vertex i. It is refused, leaving the polygon
// unchanged, when only MinPoints vertices remain.
func (c *ClipPath) RemovePoint(i int) bool {
	if len(c.Points) <= MinPoints || i < 0 || i >= len(c.Points) {
		return false
	}
	c.Points = slices.Delete(c.Points, i, i+1)
	return true
}

// FileName returns the download name for format.
func (c *ClipPath) FileName(format string) string {
	return "clip-path-" + c.Mode + "." + format
}
