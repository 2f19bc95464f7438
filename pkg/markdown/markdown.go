// Package markdown converts Markdown to sanitized HTML and wraps it in a
// print-ready standalone document.
//
// Conversion covers headings, emphasis, links, fenced and inline code,
// blockquotes, ordered and unordered lists, horizontal rules, tables and
// paragraphs. The converted HTML is passed through a user-content policy, so
// raw <script> or event-handler attributes in the source never reach the
// printed document.
package markdown

import (
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"

	"github.com/matzehuels/blocks/pkg/css"
	"github.com/matzehuels/blocks/pkg/errors"
)

// Kind is the registry name of the markdown generator.
const Kind = "markdown"

var policy = bluemonday.UGCPolicy()

// Convert renders src as sanitized HTML.
func Convert(src string) string {
	// parsers keep state, so each call gets its own
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	doc := p.Parse([]byte(strings.ReplaceAll(src, "\r\n", "\n")))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return string(policy.SanitizeBytes(markdown.Render(doc, renderer)))
}

// Markdown is the markdown-to-PDF generator's parameter model. Margin is
// the printed page margin in millimetres.
type Markdown struct {
	Title    string  `toml:"title" yaml:"title" json:"title" msgpack:"t"`
	Source   string  `toml:"source" yaml:"source" json:"source" msgpack:"s"`
	Margin   float64 `toml:"margin" yaml:"margin" json:"margin" msgpack:"m"`
	FontSize float64 `toml:"font_size" yaml:"font_size" json:"font_size" msgpack:"fs"`
}

// Default returns a short sample document.
func Default() *Markdown {
	return &Markdown{
		Title:    "Document",
		Source:   "# Title\n\n**bold** and *italic*",
		Margin:   20,
		FontSize: 12,
	}
}

func (m *Markdown) Kind() string { return Kind }

func (m *Markdown) Normalize() {
	m.Margin = css.Clamp(m.Margin, 0, 50)
	m.FontSize = css.Clamp(m.FontSize, 8, 24)
	if strings.TrimSpace(m.Title) == "" {
		m.Title = "Document"
	}
}

// CSS returns the print stylesheet used by the document.
func (m *Markdown) CSS() (string, error) {
	return PrintCSS(m.Margin, m.FontSize), nil
}

// HTML returns the full standalone document.
func (m *Markdown) HTML() (string, error) {
	_, doc, err := m.PrintDocument()
	return doc, err
}

// PrintDocument returns the title and standalone HTML to hand to a printer.
func (m *Markdown) PrintDocument() (string, string, error) {
	if strings.TrimSpace(m.Source) == "" {
		return "", "", errors.New(errors.ErrCodeInvalidInput, "markdown source is empty")
	}
	return m.Title, Document(m.Title, Convert(m.Source), PrintCSS(m.Margin, m.FontSize)), nil
}

// FileName returns the download name for format.
func (m *Markdown) FileName(format string) string {
	title := strings.TrimSpace(m.Title)
	if title == "" {
		title = "document"
	}
	return title + "." + format
}
