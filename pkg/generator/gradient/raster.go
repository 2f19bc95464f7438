package gradient

import (
	"math"

	"github.com/matzehuels/blocks/pkg/color"
	"github.com/matzehuels/blocks/pkg/raster"
)

// Raster export dimensions.
const (
	CanvasWidth  = 1920
	CanvasHeight = 1080

	radialInnerRadius = 100
)

// CanvasSize returns the fixed export size.
func (g *Gradient) CanvasSize() raster.Size {
	return raster.Size{Width: CanvasWidth, Height: CanvasHeight, Scale: 1}
}

// Draw fills s with the gradient. Stops are taken from Sorted, the same
// ordering the CSS builder uses.
func (g *Gradient) Draw(s raster.Surface) error {
	if err := g.validate(); err != nil {
		return err
	}
	sorted := g.Sorted()
	stops := make([]raster.Stop, 0, len(sorted))
	for _, st := range sorted {
		c, err := color.ToRGBA(st.Color, 1)
		if err != nil {
			return err
		}
		stops = append(stops, raster.Stop{Offset: st.Position / 100, Color: c})
	}

	size := s.Size()
	if g.Type == TypeRadial {
		s.FillRadialGradient(size.Width/2, size.Height/2, radialInnerRadius, size.Width, stops)
		return nil
	}
	x0, y0, x1, y1 := LinearLine(g.Angle, size.Width, size.Height)
	s.FillLinearGradient(x0, y0, x1, y1, stops)
	return nil
}

// LinearLine returns the gradient line for a CSS angle over a w×h box: it
// passes through the centre and is long enough that the 0% and 100% points
// touch the corners, as in CSS.
func LinearLine(angle, w, h float64) (x0, y0, x1, y1 float64) {
	rad := wrapAngle(angle) * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	half := (math.Abs(w*dx) + math.Abs(h*dy)) / 2
	cx, cy := w/2, h/2
	return cx - dx*half, cy - dy*half, cx + dx*half, cy + dy*half
}
