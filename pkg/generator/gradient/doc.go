// Package gradient implements the linear/radial gradient generator.
//
// # Serialization
//
// Stops are sorted by position (stably, so equal positions keep their
// insertion order) and joined as "{color} {position}%":
//
//	linear-gradient(135deg, #8b5cf6 0%, #3b82f6 100%)
//	radial-gradient(circle, #8b5cf6 0%, #3b82f6 100%)
//
// [Gradient.Tailwind] derives a Tailwind arbitrary-value class from the same
// string by collapsing ", " to "," and then replacing the remaining spaces
// with "_". The substitution is blanket: a colour value that itself contains
// whitespace would be escaped along with everything else.
//
// # Raster export
//
// [Gradient.Draw] fills a fixed 1920×1080 surface using the same sorted stop
// list as the CSS builder. Linear gradients follow the CSS angle convention
// (0deg points up, angles run clockwise). Radial gradients always use an
// inner radius of 100 and an outer radius equal to the canvas width,
// independent of the circle/ellipse shape chosen for CSS, so the exported
// PNG does not reproduce the ellipse ratio of the live preview.
package gradient
