package clippath

import (
	"bytes"

	svg "github.com/ajstarks/svgo/float"
)

const maskID = "blocks-clip"

// SVG renders the active shape as a 100×100 <clipPath> applied to a filled
// rectangle, so the mask can be previewed or reused outside CSS.
func (c *ClipPath) SVG() (string, error) {
	return c.MaskSVG("#8b5cf6")
}

// MaskSVG is SVG with a custom fill colour for the clipped rectangle.
func (c *ClipPath) MaskSVG(fill string) (string, error) {
	if _, err := c.Value(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	doc := svg.New(&buf)
	doc.Decimals = 1
	doc.Startview(100, 100, 0, 0, 100, 100)
	doc.Def()
	doc.ClipPath(`id="` + maskID + `"`)
	c.drawShape(doc)
	doc.ClipEnd()
	doc.DefEnd()
	doc.Rect(0, 0, 100, 100, `clip-path="url(#`+maskID+`)"`, "fill:"+fill)
	doc.End()
	return buf.String(), nil
}

func (c *ClipPath) drawShape(doc *svg.SVG) {
	switch c.Mode {
	case ModeCircle:
		doc.Circle(c.Circle.X, c.Circle.Y, c.Circle.Radius)
	case ModeEllipse:
		doc.Ellipse(c.Ellipse.X, c.Ellipse.Y, c.Ellipse.RX, c.Ellipse.RY)
	case ModeInset:
		in := c.Inset
		w := max(0, 100-in.Left-in.Right)
		h := max(0, 100-in.Top-in.Bottom)
		doc.Roundrect(in.Left, in.Top, w, h, in.Round, in.Round)
	default:
		xs := make([]float64, len(c.Points))
		ys := make([]float64, len(c.Points))
		for i, p := range c.Points {
			xs[i], ys[i] = p.X, p.Y
		}
		doc.Polygon(xs, ys)
	}
}
