package codeshot

import (
	"fmt"

	"github.com/matzehuels/blocks/pkg/color"
	"github.com/matzehuels/blocks/pkg/raster"
)

// Raster layout, in logical pixels.
const (
	CanvasWidth    = 800
	CanvasScale    = 2
	titleBarHeight = 40
	lightRadius    = 6
	lineNumChars   = 4
	charWidth      = 0.6 // advance of the monospace face per em
)

var trafficLights = []string{"#ff5f56", "#ffbd2e", "#27c93f"}

// CanvasSize is 800 logical pixels wide at 2× scale; height follows the
// line count, capped at MaxLines. Long lines are not wrapped.
func (c *Codeshot) CanvasSize() raster.Size {
	lines := min(len(c.Lines()), MaxLines)
	h := titleBarHeight + 2*c.Padding + float64(lines)*c.FontSize*lineHeight
	return raster.Size{Width: CanvasWidth, Height: h, Scale: CanvasScale}
}

// Draw paints the window: rounded background, title bar with traffic
// lights and the centred title, then one text row per line with an
// optional right-aligned line number.
func (c *Codeshot) Draw(s raster.Surface) error {
	th := LookupTheme(c.Theme)
	bg, err := color.ToRGBA(th.BG, 1)
	if err != nil {
		return err
	}
	bar, err := color.ToRGBA(th.TitleBar, 1)
	if err != nil {
		return err
	}
	text, err := color.ToRGBA(th.Text, 1)
	if err != nil {
		return err
	}
	num, err := color.ToRGBA(th.LineNum, 1)
	if err != nil {
		return err
	}

	size := s.Size()
	w, h, r := size.Width, size.Height, c.Radius
	s.FillRoundedRect(0, 0, w, h, r, bg)
	s.FillRoundedRect(0, 0, w, titleBarHeight+r, r, bar)
	s.FillRect(0, titleBarHeight, w, r, bg)

	for i, hex := range trafficLights {
		lc, err := color.ToRGBA(hex, 1)
		if err != nil {
			return err
		}
		s.FillCircle(float64(20+20*i), titleBarHeight/2, lightRadius, lc)
	}

	if err := s.SetFontSize(c.FontSize); err != nil {
		return err
	}
	s.DrawTextCentered(c.Title, w/2, titleBarHeight/2, num)

	lh := c.FontSize * lineHeight
	x := c.Padding
	codeX := x
	if c.LineNumbers {
		codeX += lineNumChars * c.FontSize * charWidth
	}
	for i, line := range c.Lines() {
		// baseline sits where the line box's text would in CSS
		y := titleBarHeight + c.Padding + float64(i)*lh + (lh+c.FontSize)/2 - c.FontSize*0.2
		if c.LineNumbers {
			s.DrawText(fmt.Sprintf("%3d", i+1), x, y, num)
		}
		s.DrawText(line, codeX, y, text)
	}
	return nil
}
