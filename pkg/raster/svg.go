package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/blocks/pkg/errors"
)

// SVGToPNG rasterizes SVG markup into a w×h PNG. The SVG viewBox is
// stretched to the target, which matches preserveAspectRatio="none".
func SVGToPNG(svg []byte, w, h int) ([]byte, error) {
	img, err := SVGToImage(svg, w, h)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

// SVGToImage rasterizes SVG markup onto a transparent w×h image.
func SVGToImage(svg []byte, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeExportFailed, "raster size %dx%d is empty", w, h)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "parse svg")
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), &image.Uniform{color.Transparent}, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return rgba, nil
}
