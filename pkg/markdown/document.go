package markdown

import (
	"fmt"
	"html"

	"github.com/matzehuels/blocks/pkg/css"
)

// PrintCSS returns the stylesheet for printed documents: an @page margin in
// millimetres and an @media print block that appends link targets after
// the link text.
func PrintCSS(marginMM, fontSizePt float64) string {
	return fmt.Sprintf(`@page {
  margin: %smm;
}

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
  font-size: %spt;
  line-height: 1.6;
  color: #1f2937;
  max-width: 800px;
  margin: 0 auto;
}

h1, h2, h3, h4 { line-height: 1.25; margin: 1.5em 0 0.5em; }
h1 { font-size: 2em; border-bottom: 1px solid #e5e7eb; padding-bottom: 0.3em; }
h2 { font-size: 1.5em; }
pre { background: #f3f4f6; padding: 12px 16px; border-radius: 6px; overflow-x: auto; }
code { font-family: "JetBrains Mono", Menlo, monospace; font-size: 0.9em; }
blockquote { margin: 0; padding-left: 1em; border-left: 4px solid #d1d5db; color: #4b5563; }
hr { border: none; border-top: 1px solid #e5e7eb; margin: 2em 0; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d1d5db; padding: 4px 8px; }

@media print {
  a { color: inherit; text-decoration: underline; }
  a[href^="http"]::after { content: " (" attr(href) ")"; font-size: 0.8em; color: #6b7280; }
  pre, blockquote, table { page-break-inside: avoid; }
  h1, h2, h3, h4 { page-break-after: avoid; }
}`, css.Num(marginMM), css.Num(fontSizePt))
}

// Document wraps body HTML in a standalone page with the given stylesheet.
// The title is escaped; body is inserted as-is.
func Document(title, body, stylesheet string) string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>` + html.EscapeString(title) + `</title>
<style>
` + stylesheet + `
</style>
</head>
<body>
` + body + `
</body>
</html>
`
}
