package raster

import (
	"image/color"
	"io"
)

// Stop is a gradient colour stop; Offset is in [0,1].
type Stop struct {
	Offset float64
	Color  color.Color
}

// Size describes the logical dimensions and pixel density of a surface.
type Size struct {
	Width, Height float64
	Scale         float64
}

// Surface is an offscreen 2D drawing target.
type Surface interface {
	Size() Size
	FillRect(x, y, w, h float64, c color.Color)
	FillRoundedRect(x, y, w, h, r float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	FillLinearGradient(x0, y0, x1, y1 float64, stops []Stop)
	FillRadialGradient(cx, cy, r0, r1 float64, stops []Stop)
	// SetFontSize selects the monospace face used by DrawText.
	SetFontSize(px float64) error
	// DrawText draws s with its baseline-left corner at (x, y).
	DrawText(s string, x, y float64, c color.Color)
	// DrawTextCentered draws s centred on (x, y).
	DrawTextCentered(s string, x, y float64, c color.Color)
	EncodePNG(w io.Writer) error
}
