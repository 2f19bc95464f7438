package mesh

import (
	"math"

	"github.com/matzehuels/blocks/pkg/color"
	"github.com/matzehuels/blocks/pkg/css"
	"github.com/matzehuels/blocks/pkg/raster"
)

// Raster export dimensions.
const (
	CanvasWidth  = 1200
	CanvasHeight = 800
)

// CanvasSize returns the fixed export size.
func (m *Mesh) CanvasSize() raster.Size {
	return raster.Size{Width: CanvasWidth, Height: CanvasHeight, Scale: 1}
}

// Draw paints the base colour and one radial fade per point. The blur
// filter has no raster equivalent; a fade from full colour at the centre to
// transparent at Size stands in for it.
func (m *Mesh) Draw(s raster.Surface) error {
	if _, err := m.Declarations(); err != nil {
		return err
	}
	size := s.Size()
	bg, err := color.ToRGBA(m.Background, 1)
	if err != nil {
		return err
	}
	s.FillRect(0, 0, size.Width, size.Height, bg)

	// CSS resolves a percentage radius against the box diagonal over sqrt 2.
	ref := math.Hypot(size.Width, size.Height) / math.Sqrt2
	for _, p := range m.Points {
		solid, err := color.ToRGBA(p.Color, 1)
		if err != nil {
			return err
		}
		fade := solid
		fade.A = 0
		cx := css.Clamp(p.X, 0, 100) / 100 * size.Width
		cy := css.Clamp(p.Y, 0, 100) / 100 * size.Height
		s.FillRadialGradient(cx, cy, 0, p.Size/100*ref, []raster.Stop{
			{Offset: 0, Color: solid},
			{Offset: 1, Color: fade},
		})
	}
	return nil
}
