// Package raster provides the offscreen drawing surfaces used for PNG export.
//
// Generators never touch an image library directly. They draw onto a
// [Surface], which keeps the serialization core testable without any
// graphics backend. [Canvas] is the production implementation on
// fogleman/gg; [SVGToPNG] rasterizes generated SVG markup with oksvg.
//
// Coordinates passed to a Surface are logical pixels. A Canvas created with
// a scale factor multiplies every coordinate and font size, so a 800×600
// logical canvas at scale 2 encodes a 1600×1200 PNG with crisp text.
package raster
