package wave

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/matzehuels/blocks/pkg/css"
)

const gradientID = "wave-gradient"

// PNG export size.
const (
	PNGWidth  = 1440
	PNGHeight = 320
)

// Path renders the closed SVG path for a list of points. The outline runs
// left to right, then down (or up, when flipped) to the far corner, across
// to the near corner and closes.
func Path(points []Point, mode string, flipped bool) string {
	if len(points) == 0 {
		return ""
	}
	base := 100.0
	if flipped {
		base = 0
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "M %s %s", n(points[0].X), n(points[0].Y))
	last := points[len(points)-1]
	switch mode {
	case ModeStep:
		for _, p := range points[1:] {
			fmt.Fprintf(&buf, " H %s V %s", n(p.X), n(p.Y))
		}
	case ModeSharp:
		for _, p := range points[1:] {
			fmt.Fprintf(&buf, " L %s %s", n(p.X), n(p.Y))
		}
	default:
		for i := 1; i < len(points)-1; i++ {
			p, next := points[i], points[i+1]
			fmt.Fprintf(&buf, " Q %s %s %s %s", n(p.X), n(p.Y), n((p.X+next.X)/2), n((p.Y+next.Y)/2))
		}
		if len(points) > 1 {
			fmt.Fprintf(&buf, " T %s %s", n(last.X), n(last.Y))
		}
	}
	fmt.Fprintf(&buf, " L 100 %s L 0 %s Z", n(base), n(base))
	return buf.String()
}

func n(v float64) string { return css.Round(v, 2) }

// LayerPaths returns one path per layer, front layer first.
func (w *Wave) LayerPaths() []string {
	paths := make([]string, w.Layers)
	for i := range paths {
		pts := GeneratePoints(w.Complexity, w.Height, w.Seed, i, w.t)
		paths[i] = Path(pts, w.Mode, w.Flipped)
	}
	return paths
}

// SVG renders the complete document. Back layers are emitted first so the
// front layer paints on top.
func (w *Wave) SVG() (string, error) {
	if err := w.validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" preserveAspectRatio="none">` + "\n")

	fill := w.Color
	if w.Gradient {
		fmt.Fprintf(&buf, `  <defs><linearGradient id="%s" x1="0" y1="0" x2="0" y2="1">`, gradientID)
		fmt.Fprintf(&buf, `<stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/>`, w.Color, w.GradientTo)
		buf.WriteString("</linearGradient></defs>\n")
		fill = "url(#" + gradientID + ")"
	}

	paths := w.LayerPaths()
	for i := len(paths) - 1; i >= 0; i-- {
		fmt.Fprintf(&buf, `  <path d="%s" fill="%s" fill-opacity="%s"/>`+"\n", paths[i], fill, css.Round(LayerOpacity(i), 2))
	}
	buf.WriteString("</svg>\n")
	return buf.String(), nil
}

// CSS embeds the SVG as a stretched background image.
func (w *Wave) CSS() (string, error) {
	svg, err := w.SVG()
	if err != nil {
		return "", err
	}
	var b css.Block
	b.Add("background-image", `url("data:image/svg+xml;base64,`+base64.StdEncoding.EncodeToString([]byte(svg))+`")`)
	b.Add("background-size", "100% 100%")
	b.Add("background-repeat", "no-repeat")
	return b.String(), nil
}

// PNGSize is the pixel size used when the SVG is rasterized.
func (w *Wave) PNGSize() (int, int) { return PNGWidth, PNGHeight }
