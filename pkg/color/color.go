// Package color converts and validates the hex colours used by every generator.
//
// Only the six digit #RRGGBB form is accepted. Shorthand (#RGB), alpha hex and
// named colours are rejected with [ErrInvalidColorFormat] instead of being
// guessed at, so a malformed value never leaks NaN channels into CSS.
package color

import (
	"fmt"
	stdcolor "image/color"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/blocks/pkg/errors"
)

// ErrInvalidColorFormat matches every error produced for a malformed hex colour.
var ErrInvalidColorFormat = errors.New(errors.ErrCodeInvalidColorFormat, "invalid colour format")

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate reports whether hex is a #RRGGBB colour.
func Validate(hex string) error {
	if !hexPattern.MatchString(hex) {
		return errors.New(errors.ErrCodeInvalidColorFormat, "invalid hex colour %q (want #RRGGBB)", hex)
	}
	return nil
}

// Parse decodes a #RRGGBB colour.
func Parse(hex string) (colorful.Color, error) {
	if err := Validate(hex); err != nil {
		return colorful.Color{}, err
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidColorFormat, err, "decode %q", hex)
	}
	return c, nil
}

// Channels returns the 0-255 red, green and blue channels of hex.
func Channels(hex string) (r, g, b uint8, err error) {
	c, err := Parse(hex)
	if err != nil {
		return 0, 0, 0, err
	}
	r, g, b = c.RGB255()
	return r, g, b, nil
}

// HexToRgba converts a #RRGGBB colour and an alpha in [0,1] into an
// "rgba(r, g, b, a)" CSS value. Alpha is clamped and printed in its
// shortest form, so 0.1 stays "0.1" and 1 becomes "1".
func HexToRgba(hex string, alpha float64) (string, error) {
	r, g, b, err := Channels(hex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, FormatAlpha(alpha)), nil
}

// FormatAlpha clamps a to [0,1] and formats it without trailing zeros.
func FormatAlpha(a float64) string {
	if math.IsNaN(a) {
		a = 1
	}
	a = max(0, min(a, 1))
	return strconv.FormatFloat(a, 'f', -1, 64)
}

// ToRGBA converts hex into an image/color value with the given alpha, for
// drawing onto raster surfaces.
func ToRGBA(hex string, alpha float64) (stdcolor.NRGBA, error) {
	r, g, b, err := Channels(hex)
	if err != nil {
		return stdcolor.NRGBA{}, err
	}
	a := max(0, min(alpha, 1))
	return stdcolor.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(a * 255))}, nil
}

// Random returns a uniformly random #rrggbb colour.
func Random(rng *rand.Rand) string {
	return fmt.Sprintf("#%06x", rng.IntN(0x1000000))
}

// FromHSL builds a hex colour from hue in degrees and saturation/lightness
// in [0,1]. Hue wraps around 360.
func FromHSL(h, s, l float64) string {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsl(h, s, l).Clamped().Hex()
}
