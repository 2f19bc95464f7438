package clippath

import (
	"regexp"
	"slices"
	"strconv"

	"github.com/matzehuels/blocks/pkg/errors"
)

// Preset is a named polygon in clip-path notation.
type Preset struct {
	Name    string
	Polygon string
}

// Presets is the built-in shape library.
var Presets = []Preset{
	{"triangle", "polygon(50% 0%, 100% 100%, 0% 100%)"},
	{"trapezoid", "polygon(20% 0%, 80% 0%, 100% 100%, 0% 100%)"},
	{"parallelogram", "polygon(25% 0%, 100% 0%, 75% 100%, 0% 100%)"},
	{"rhombus", "polygon(50% 0%, 100% 50%, 50% 100%, 0% 50%)"},
	{"pentagon", "polygon(50% 0%, 100% 38%, 82% 100%, 18% 100%, 0% 38%)"},
	{"hexagon", "polygon(25% 0%, 75% 0%, 100% 50%, 75% 100%, 25% 100%, 0% 50%)"},
	{"heptagon", "polygon(50% 0%, 90% 20%, 100% 60%, 75% 100%, 25% 100%, 0% 60%, 10% 20%)"},
	{"octagon", "polygon(30% 0%, 70% 0%, 100% 30%, 100% 70%, 70% 100%, 30% 100%, 0% 70%, 0% 30%)"},
	{"star", "polygon(50% 0%, 61% 35%, 98% 35%, 68% 57%, 79% 91%, 50% 70%, 21% 91%, 32% 57%, 2% 35%, 39% 35%)"},
	{"cross", "polygon(10% 25%, 35% 25%, 35% 0%, 65% 0%, 65% 25%, 90% 25%, 90% 50%, 65% 50%, 65% 100%, 35% 100%, 35% 50%, 10% 50%)"},
	{"arrow", "polygon(0% 20%, 60% 20%, 60% 0%, 100% 50%, 60% 100%, 60% 80%, 0% 80%)"},
	{"chevron", "polygon(75% 0%, 100% 50%, 75% 100%, 0% 100%, 25% 50%, 0% 0%)"},
	{"message", "polygon(0% 0%, 100% 0%, 100% 75%, 75% 75%, 75% 100%, 50% 75%, 0% 75%)"},
	{"frame", "polygon(0% 0%, 0% 100%, 25% 100%, 25% 25%, 75% 25%, 75% 75%, 25% 75%, 25% 100%, 100% 100%, 100% 0%)"},
}

var percentPattern = regexp.MustCompile(`(-?\d+(?:\.\d+)?)%`)

// ParsePolygon extracts vertices from a polygon() string by taking
// consecutive percentage tokens in pairs. Anything else in the string,
// including its formatting, is ignored; a trailing unpaired token is dropped.
func ParsePolygon(s string) ([]Point, error) {
	matches := percentPattern.FindAllStringSubmatch(s, -1)
	points := make([]Point, 0, len(matches)/2)
	for i := 0; i+1 < len(matches); i += 2 {
		x, err := strconv.ParseFloat(matches[i][1], 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidParams, err, "parse %q", matches[i][0])
		}
		y, err := strconv.ParseFloat(matches[i+1][1], 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidParams, err, "parse %q", matches[i+1][0])
		}
		points = append(points, Point{X: x, Y: y})
	}
	if len(points) < MinPoints {
		return nil, errors.New(errors.ErrCodeInvalidParams, "polygon %q has %d points, need %d", s, len(points), MinPoints)
	}
	return points, nil
}

// FindPreset looks a preset up by name.
func FindPreset(name string) (Preset, bool) {
	i := slices.IndexFunc(Presets, func(p Preset) bool { return p.Name == name })
	if i < 0 {
		return Preset{}, false
	}
	return Presets[i], true
}

// ApplyPreset switches to polygon mode with the named preset's vertices.
func (c *ClipPath) ApplyPreset(name string) error {
	p, ok := FindPreset(name)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "unknown clip-path preset %q", name)
	}
	points, err := ParsePolygon(p.Polygon)
	if err != nil {
		return err
	}
	c.Mode = ModePolygon
	c.Points = points
	return nil
}
