// Package codeshot implements the code screenshot generator: a themed editor
// window around a code snippet, exported as CSS, highlighted HTML or PNG.
//
// Language only affects HTML highlighting. The CSS snippet covers the
// window box and the PNG draws plain text in the theme's text colour.
package codeshot

import (
	"bytes"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/matzehuels/blocks/pkg/css"
	"github.com/matzehuels/blocks/pkg/errors"
)

// Kind is the registry name of this generator.
const Kind = "code-screenshot"

const (
	fontStack  = `"JetBrains Mono", "Fira Code", Menlo, monospace`
	lineHeight = 1.6
	tabWidth   = 4
	shadowCSS  = "0 20px 68px rgba(0, 0, 0, 0.55)"
)

// MaxLines is the longest snippet the generator accepts.
const MaxLines = 250

// Codeshot is the generator's parameter model.
type Codeshot struct {
	Code        string  `toml:"code" yaml:"code" json:"code" msgpack:"c"`
	Language    string  `toml:"language" yaml:"language" json:"language" msgpack:"l"`
	Title       string  `toml:"title" yaml:"title" json:"title" msgpack:"t"`
	Theme       string  `toml:"theme" yaml:"theme" json:"theme" msgpack:"th"`
	LineNumbers bool    `toml:"line_numbers" yaml:"line_numbers" json:"line_numbers" msgpack:"n"`
	Padding     float64 `toml:"padding" yaml:"padding" json:"padding" msgpack:"p"`
	FontSize    float64 `toml:"font_size" yaml:"font_size" json:"font_size" msgpack:"fs"`
	Radius      float64 `toml:"radius" yaml:"radius" json:"radius" msgpack:"r"`
	Shadow      bool    `toml:"shadow" yaml:"shadow" json:"shadow" msgpack:"s"`
}

// Default returns a small Go snippet in the dark theme.
func Default() *Codeshot {
	return &Codeshot{
		Code:        "func main() {\n\tfmt.Println(\"Hello, blocks!\")\n}",
		Language:    "go",
		Title:       "main.go",
		Theme:       DefaultTheme,
		LineNumbers: true,
		Padding:     32,
		FontSize:    14,
		Radius:      12,
		Shadow:      true,
	}
}

func (c *Codeshot) Kind() string { return Kind }

func (c *Codeshot) Normalize() {
	c.Theme = LookupTheme(c.Theme).Name
	c.Padding = css.Clamp(c.Padding, 0, 128)
	c.FontSize = css.Clamp(c.FontSize, 8, 32)
	c.Radius = css.Clamp(c.Radius, 0, 32)
	if c.Title == "" {
		c.Title = "untitled"
	}
}

// Validate rejects snippets longer than MaxLines.
func (c *Codeshot) Validate() error {
	if n := strings.Count(c.Code, "\n") + 1; n > MaxLines {
		return errors.New(errors.ErrCodeInvalidParams, "code has %d lines, at most %d are allowed", n, MaxLines)
	}
	return nil
}

// Lines splits the code into lines with tabs expanded.
func (c *Codeshot) Lines() []string {
	code := strings.ReplaceAll(c.Code, "\r\n", "\n")
	code = strings.ReplaceAll(code, "\t", strings.Repeat(" ", tabWidth))
	return strings.Split(code, "\n")
}

// Declarations builds the box-level styling of the window.
func (c *Codeshot) Declarations() css.Block {
	th := LookupTheme(c.Theme)
	var b css.Block
	b.Add("background", th.BG)
	b.Add("color", th.Text)
	b.Add("padding", css.Num(c.Padding)+"px")
	b.Add("border-radius", css.Num(c.Radius)+"px")
	if c.Shadow {
		b.Add("box-shadow", shadowCSS)
	}
	b.Add("font-family", fontStack)
	b.Add("font-size", css.Num(c.FontSize)+"px")
	b.Add("line-height", css.Num(lineHeight))
	return b
}

// CSS renders the window styling. Syntax colours are not included.
func (c *Codeshot) CSS() (string, error) {
	return c.Declarations().String(), nil
}

// HTML renders the window with chroma-highlighted code using inline styles.
func (c *Codeshot) HTML() (string, error) {
	th := LookupTheme(c.Theme)

	lexer := lexers.Get(c.Language)
	if lexer == nil {
		lexer = lexers.Analyse(c.Code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(th.Chroma)
	if style == nil {
		style = styles.Fallback
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(false),
		chromahtml.WithLineNumbers(c.LineNumbers),
		chromahtml.TabWidth(tabWidth),
	)
	iterator, err := lexer.Tokenise(nil, c.Code)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "tokenise %s", c.Language)
	}
	var code bytes.Buffer
	if err := formatter.Format(&code, style, iterator); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "highlight code")
	}

	box := c.Declarations()
	var bar css.Block
	bar.Add("display", "flex")
	bar.Add("align-items", "center")
	bar.Add("gap", "8px")
	bar.Add("margin-bottom", "16px")
	bar.Add("color", th.LineNum)

	var buf bytes.Buffer
	buf.WriteString(`<div class="codeshot" style="` + inline(box) + `">` + "\n")
	buf.WriteString(`  <div class="codeshot-bar" style="` + inline(bar) + `">`)
	for _, light := range trafficLights {
		buf.WriteString(`<span style="width:12px;height:12px;border-radius:50%;background:` + light + `"></span>`)
	}
	buf.WriteString(`<span style="margin-left:8px">` + html.EscapeString(c.Title) + "</span></div>\n")
	buf.Write(code.Bytes())
	buf.WriteString("</div>")
	return buf.String(), nil
}

func inline(b css.Block) string {
	return html.EscapeString(strings.ReplaceAll(b.String(), "\n", " "))
}

// FileName returns the download name for format; PNGs are named after the
// window title.
func (c *Codeshot) FileName(format string) string {
	title := c.Title
	if title == "" {
		title = "code"
	}
	return title + "." + format
}
