package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator"
	"github.com/matzehuels/blocks/pkg/generator/registry"
	"github.com/matzehuels/blocks/pkg/printer"
	"github.com/matzehuels/blocks/pkg/raster"
)

// Render produces one output format of g. sink is only used for pdf and
// may be nil otherwise.
func Render(ctx context.Context, g generator.Generator, format string, sink printer.Sink) ([]byte, error) {
	if err := validate(g); err != nil {
		return nil, err
	}
	switch format {
	case registry.FormatCSS:
		return text(g.CSS())
	case registry.FormatTailwind:
		if t, ok := g.(generator.Tailwinder); ok {
			return text(t.Tailwind())
		}
	case registry.FormatSVG:
		if s, ok := g.(generator.SVGer); ok {
			return text(s.SVG())
		}
	case registry.FormatHTML:
		if h, ok := g.(generator.HTMLer); ok {
			return text(h.HTML())
		}
	case registry.FormatPNG:
		return RenderPNG(g)
	case registry.FormatPDF:
		return RenderPDF(ctx, g, sink)
	default:
		return nil, ValidateFormat(format)
	}
	return nil, unsupported(g, format)
}

// RenderPNG draws g onto a fresh canvas, or rasterizes its SVG when it has
// no drawing of its own.
func RenderPNG(g generator.Generator) ([]byte, error) {
	if d, ok := g.(generator.Drawer); ok {
		size := d.CanvasSize()
		c, err := raster.NewCanvas(int(size.Width), int(size.Height), size.Scale)
		if err != nil {
			return nil, err
		}
		if err := d.Draw(c); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := c.EncodePNG(&buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "encode %s png", g.Kind())
		}
		return buf.Bytes(), nil
	}
	if s, ok := g.(generator.SVGRasterizer); ok {
		svg, err := s.SVG()
		if err != nil {
			return nil, err
		}
		w, h := s.PNGSize()
		return raster.SVGToPNG([]byte(svg), w, h)
	}
	return nil, unsupported(g, registry.FormatPNG)
}

// RenderPDF prints g's document through sink.
func RenderPDF(ctx context.Context, g generator.Generator, sink printer.Sink) ([]byte, error) {
	p, ok := g.(generator.Printable)
	if !ok {
		return nil, unsupported(g, registry.FormatPDF)
	}
	if sink == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "no printer configured for pdf output")
	}
	title, doc, err := p.PrintDocument()
	if err != nil {
		return nil, err
	}
	return sink.Print(ctx, title, doc)
}

func validate(g generator.Generator) error {
	if v, ok := g.(generator.Validator); ok {
		return v.Validate()
	}
	return nil
}

func text(s string, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func unsupported(g generator.Generator, format string) error {
	return errors.New(errors.ErrCodeUnsupported, "%s does not produce %s output", g.Kind(), format)
}
