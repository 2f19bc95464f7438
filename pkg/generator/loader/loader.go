// Package loader implements the loading-animation generator: spinner,
// dots, pulse and bars built from plain elements and CSS keyframes.
package loader

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/matzehuels/blocks/pkg/color"
	"github.com/matzehuels/blocks/pkg/css"
	"github.com/matzehuels/blocks/pkg/errors"
)

// Kind is the registry name of this generator.
const Kind = "loader"

// Animation styles.
const (
	StyleSpinner = "spinner"
	StyleDots    = "dots"
	StylePulse   = "pulse"
	StyleBars    = "bars"
)

// Styles lists every animation style.
var Styles = []string{StyleSpinner, StyleDots, StylePulse, StyleBars}

// Loader is the generator's parameter model. Size is in pixels and Speed is
// the duration of one animation cycle in seconds.
type Loader struct {
	Style string  `toml:"style" yaml:"style" json:"style" msgpack:"st"`
	Color string  `toml:"color" yaml:"color" json:"color" msgpack:"c"`
	Size  float64 `toml:"size" yaml:"size" json:"size" msgpack:"s"`
	Speed float64 `toml:"speed" yaml:"speed" json:"speed" msgpack:"sp"`
	Count int     `toml:"count" yaml:"count" json:"count" msgpack:"n"`
}

// Default returns a violet spinner.
func Default() *Loader {
	return &Loader{Style: StyleSpinner, Color: "#8b5cf6", Size: 48, Speed: 1, Count: 3}
}

func (l *Loader) Kind() string { return Kind }

func (l *Loader) Normalize() {
	l.Size = css.Clamp(l.Size, 8, 200)
	l.Speed = css.Clamp(l.Speed, 0.1, 10)
	l.Count = max(2, min(l.Count, 8))
}

func (l *Loader) validate() error {
	switch l.Style {
	case StyleSpinner, StyleDots, StylePulse, StyleBars:
	default:
		return errors.New(errors.ErrCodeInvalidParams, "unknown loader style %q", l.Style)
	}
	if l.Size <= 0 || l.Speed <= 0 {
		return errors.New(errors.ErrCodeInvalidParams, "loader size and speed must be positive")
	}
	return color.Validate(l.Color)
}

func (l *Loader) count() int { return max(2, l.Count) }

// CSS renders the loader rules and their @keyframes.
func (l *Loader) CSS() (string, error) {
	if err := l.validate(); err != nil {
		return "", err
	}
	size, dur := css.Num(l.Size)+"px", css.Num(l.Speed)+"s"

	var root, child css.Block
	var keyframes string
	switch l.Style {
	case StyleSpinner:
		faint, err := color.HexToRgba(l.Color, 0.2)
		if err != nil {
			return "", err
		}
		root.Add("width", size)
		root.Add("height", size)
		root.Add("border", css.Num(max(2, l.Size/8))+"px solid "+faint)
		root.Add("border-top-color", l.Color)
		root.Add("border-radius", "50%")
		root.Add("animation", "blocks-spin "+dur+" linear infinite")
		keyframes = "@keyframes blocks-spin {\n  to { transform: rotate(360deg); }\n}"
	case StyleDots:
		dot := css.Num(l.Size/4) + "px"
		root.Add("display", "flex")
		root.Add("gap", dot)
		child.Add("width", dot)
		child.Add("height", dot)
		child.Add("border-radius", "50%")
		child.Add("background", l.Color)
		child.Add("animation", "blocks-bounce "+dur+" ease-in-out infinite both")
		keyframes = "@keyframes blocks-bounce {\n  0%, 80%, 100% { transform: scale(0); }\n  40% { transform: scale(1); }\n}"
	case StylePulse:
		root.Add("width", size)
		root.Add("height", size)
		root.Add("border-radius", "50%")
		root.Add("background", l.Color)
		root.Add("animation", "blocks-pulse "+dur+" ease-in-out infinite")
		keyframes = "@keyframes blocks-pulse {\n  0% { transform: scale(0); opacity: 1; }\n  100% { transform: scale(1); opacity: 0; }\n}"
	case StyleBars:
		root.Add("display", "flex")
		root.Add("align-items", "center")
		root.Add("gap", css.Num(l.Size/12)+"px")
		root.Add("height", size)
		child.Add("width", css.Num(l.Size/8)+"px")
		child.Add("height", "100%")
		child.Add("background", l.Color)
		child.Add("animation", "blocks-stretch "+dur+" ease-in-out infinite")
		keyframes = "@keyframes blocks-stretch {\n  0%, 40%, 100% { transform: scaleY(0.4); }\n  20% { transform: scaleY(1); }\n}"
	}

	rules := []string{root.Rule(".loader")}
	if len(child) > 0 {
		rules = append(rules, child.Rule(".loader > span"))
		// stagger children across one cycle
		step := l.Speed / float64(l.count()) / 2
		for i := 1; i < l.count(); i++ {
			rules = append(rules, fmt.Sprintf(".loader > span:nth-child(%d) { animation-delay: %ss; }", i+1, css.Round(step*float64(i), 3)))
		}
	}
	rules = append(rules, keyframes)
	return strings.Join(rules, "\n\n"), nil
}

// Markup returns the bare element without styles.
func (l *Loader) Markup() string {
	switch l.Style {
	case StyleDots, StyleBars:
		return `<div class="loader">` + strings.Repeat("<span></span>", l.count()) + `</div>`
	}
	return `<div class="loader"></div>`
}

// HTML renders the element together with its <style> block.
func (l *Loader) HTML() (string, error) {
	style, err := l.CSS()
	if err != nil {
		return "", err
	}
	return "<style>\n" + style + "\n</style>\n" + l.Markup(), nil
}

// Randomize picks a style, colour and timing.
func (l *Loader) Randomize(rng *rand.Rand) {
	l.Style = Styles[rng.IntN(len(Styles))]
	l.Color = color.Random(rng)
	l.Size = float64(24 + rng.IntN(57))
	l.Speed = float64(5+rng.IntN(16)) / 10
	l.Count = 3 + rng.IntN(3)
}

// FileName returns the download name for format.
func (l *Loader) FileName(format string) string { return "loader-" + l.Style + "." + format }
