package markdown

import (
	"strings"
	"testing"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "heading and emphasis",
			src:  "# Title\n\n**bold** and *italic*",
			want: []string{"<h1>Title</h1>", "<p><strong>bold</strong> and <em>italic</em></p>"},
		},
		{
			name: "heading levels",
			src:  "## Two\n\n### Three\n\n#### Four",
			want: []string{"<h2>Two</h2>", "<h3>Three</h3>", "<h4>Four</h4>"},
		},
		{
			name: "fenced code keeps markup literal",
			src:  "```\n**not bold** <b>\n```",
			want: []string{"<pre><code>**not bold** &lt;b&gt;\n</code></pre>"},
		},
		{
			name: "inline code",
			src:  "use `*ptr` here",
			want: []string{"<code>*ptr</code>"},
		},
		{
			name: "link",
			src:  "[blocks](https://example.com)",
			want: []string{`<a href="https://example.com"`, ">blocks</a>"},
		},
		{
			name: "blockquote merges lines",
			src:  "> one\n> two",
			want: []string{"<blockquote>", "one\ntwo"},
		},
		{
			name: "ordered list",
			src:  "1. first\n2. second\n3. third",
			want: []string{"<ol>", "<li>first</li>", "<li>second</li>", "<li>third</li>"},
		},
		{
			name: "unordered list",
			src:  "- a\n- b",
			want: []string{"<ul>", "<li>a</li>", "<li>b</li>"},
		},
		{
			name: "horizontal rule",
			src:  "above\n\n---\n\nbelow",
			want: []string{"<hr"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.src)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Convert(%q) missing %q:\n%s", tt.src, w, got)
				}
			}
		})
	}
}

func TestConvertSanitizes(t *testing.T) {
	got := Convert("hello <script>alert(1)</script>\n\n<a href=\"#\" onclick=\"x()\">x</a>")
	if strings.Contains(got, "<script") || strings.Contains(got, "onclick") {
		t.Errorf("unsafe markup survived:\n%s", got)
	}
}

func TestDocument(t *testing.T) {
	m := Default()
	m.Title = "Notes <draft>"
	title, doc, err := m.PrintDocument()
	if err != nil {
		t.Fatal(err)
	}
	if title != "Notes <draft>" {
		t.Errorf("title = %q", title)
	}
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Notes &lt;draft&gt;</title>",
		"@page {\n  margin: 20mm;\n}",
		"@media print",
		`a[href^="http"]::after`,
		"<h1>Title</h1>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestEmptySource(t *testing.T) {
	m := Default()
	m.Source = "  \n"
	if _, _, err := m.PrintDocument(); err == nil {
		t.Error("empty source should fail")
	}
}
