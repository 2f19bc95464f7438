package raster

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/blocks/pkg/errors"
)

// Canvas is a Surface backed by a gg drawing context.
type Canvas struct {
	dc    *gg.Context
	size  Size
	fonts map[float64]font.Face
}

// MaxPixels bounds the device pixels a canvas may allocate (256 MiB of
// RGBA).
const MaxPixels = 1 << 26

// NewCanvas allocates a w×h logical canvas at the given pixel scale.
// A scale <= 0 is treated as 1. Canvases above MaxPixels are refused.
func NewCanvas(w, h int, scale float64) (*Canvas, error) {
	if scale <= 0 {
		scale = 1
	}
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeExportFailed, "canvas size %dx%d is empty", w, h)
	}
	fw, fh := float64(w)*scale, float64(h)*scale
	if fw*fh > MaxPixels {
		return nil, errors.New(errors.ErrCodeExportFailed, "canvas %.0fx%.0f exceeds %d pixels", fw, fh, MaxPixels)
	}
	pw, ph := int(fw), int(fh)
	return &Canvas{
		dc:    gg.NewContext(pw, ph),
		size:  Size{Width: float64(w), Height: float64(h), Scale: scale},
		fonts: make(map[float64]font.Face),
	}, nil
}

// Size returns the logical canvas size.
func (c *Canvas) Size() Size { return c.size }

// Image returns the underlying pixel buffer.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

func (c *Canvas) s(v float64) float64 { return v * c.size.Scale }

func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	c.dc.DrawRectangle(c.s(x), c.s(y), c.s(w), c.s(h))
	c.dc.SetColor(col)
	c.dc.Fill()
}

func (c *Canvas) FillRoundedRect(x, y, w, h, r float64, col color.Color) {
	c.dc.DrawRoundedRectangle(c.s(x), c.s(y), c.s(w), c.s(h), c.s(r))
	c.dc.SetColor(col)
	c.dc.Fill()
}

func (c *Canvas) FillCircle(cx, cy, r float64, col color.Color) {
	c.dc.DrawCircle(c.s(cx), c.s(cy), c.s(r))
	c.dc.SetColor(col)
	c.dc.Fill()
}

func (c *Canvas) FillLinearGradient(x0, y0, x1, y1 float64, stops []Stop) {
	g := gg.NewLinearGradient(c.s(x0), c.s(y0), c.s(x1), c.s(y1))
	c.fillGradient(g, stops)
}

func (c *Canvas) FillRadialGradient(cx, cy, r0, r1 float64, stops []Stop) {
	g := gg.NewRadialGradient(c.s(cx), c.s(cy), c.s(r0), c.s(cx), c.s(cy), c.s(r1))
	c.fillGradient(g, stops)
}

func (c *Canvas) fillGradient(g gg.Gradient, stops []Stop) {
	for _, st := range stops {
		g.AddColorStop(st.Offset, st.Color)
	}
	c.dc.SetFillStyle(g)
	c.dc.DrawRectangle(0, 0, float64(c.dc.Width()), float64(c.dc.Height()))
	c.dc.Fill()
}

// SetFontSize loads Go Mono at px logical pixels. Faces are cached per size.
func (c *Canvas) SetFontSize(px float64) error {
	if face, ok := c.fonts[px]; ok {
		c.dc.SetFontFace(face)
		return nil
	}
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "parse monospace font")
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    c.s(px),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "load monospace face")
	}
	c.fonts[px] = face
	c.dc.SetFontFace(face)
	return nil
}

func (c *Canvas) DrawText(s string, x, y float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawString(s, c.s(x), c.s(y))
}

func (c *Canvas) DrawTextCentered(s string, x, y float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(s, c.s(x), c.s(y), 0.5, 0.5)
}

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := c.dc.EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "encode png")
	}
	return nil
}

var _ Surface = (*Canvas)(nil)
