package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator/blob"
	"github.com/matzehuels/blocks/pkg/generator/gradient"
	"github.com/matzehuels/blocks/pkg/generator/wave"
)

func TestDecodeDocument(t *testing.T) {
	tests := []struct {
		name   string
		format string
		doc    string
	}{
		{
			name:   "toml",
			format: FormatTOML,
			doc: `kind = "gradient"

[params]
type = "linear"
angle = 90

[[params.stops]]
color = "#ff0000"
position = 0

[[params.stops]]
color = "#0000ff"
position = 100
`,
		},
		{
			name:   "yaml",
			format: FormatYAML,
			doc: `kind: gradient
params:
  type: linear
  angle: 90
  stops:
    - color: "#ff0000"
      position: 0
    - color: "#0000ff"
      position: 100
`,
		},
		{
			name:   "json",
			format: FormatJSON,
			doc: `{"kind": "gradient", "params": {"type": "linear", "angle": 90,
  "stops": [{"color": "#ff0000", "position": 0}, {"color": "#0000ff", "position": 100}]}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := DecodeDocument(strings.NewReader(tt.doc), tt.format)
			if err != nil {
				t.Fatalf("DecodeDocument: %v", err)
			}
			got, err := g.CSS()
			if err != nil {
				t.Fatal(err)
			}
			want := "background: linear-gradient(90deg, #ff0000 0%, #0000ff 100%);"
			if got != want {
				t.Errorf("CSS() = %q, want %q", got, want)
			}
			for _, s := range g.(*gradient.Gradient).Stops {
				if s.ID == "" {
					t.Error("decoded stop has no id after normalization")
				}
			}
		})
	}
}

func TestDecodeDocumentKeepsDefaults(t *testing.T) {
	g, err := DecodeDocument(strings.NewReader("kind = \"blob\"\n\n[params]\ntop = 10\n"), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	b := g.(*blob.Blob)
	def := blob.Default()
	if b.Top != 10 || b.Right != def.Right || b.From != def.From {
		t.Errorf("decoded blob = %+v, want Top=10 over defaults %+v", *b, *def)
	}
}

func TestDecodeDocumentNormalizes(t *testing.T) {
	g, err := DecodeDocument(strings.NewReader(`{"kind": "gradient", "params": {"angle": -90}}`), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if a := g.(*gradient.Gradient).Angle; a != 270 {
		t.Errorf("Angle = %v, want 270", a)
	}
}

func TestDecodeDocumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		doc    string
		code   errors.Code
	}{
		{"toml syntax", FormatTOML, "kind = ", errors.ErrCodeInvalidParams},
		{"missing kind", FormatTOML, "[params]\ntop = 1\n", errors.ErrCodeInvalidParams},
		{"unknown kind", FormatJSON, `{"kind": "teapot"}`, errors.ErrCodeInvalidKind},
		{"unknown toml key", FormatTOML, "kind = \"blob\"\n[params]\nwobble = 3\n", errors.ErrCodeInvalidParams},
		{"unknown json key", FormatJSON, `{"kind": "blob", "params": {"wobble": 3}}`, errors.ErrCodeInvalidParams},
		{"empty yaml", FormatYAML, "", errors.ErrCodeInvalidParams},
		{"bad format", "ini", "kind=blob", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument(strings.NewReader(tt.doc), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("DecodeDocument error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestEncodeDocumentRoundTrip(t *testing.T) {
	w := wave.Default()
	w.Layers = 4
	w.Mode = wave.ModeStep
	want, _ := w.SVG()

	for _, format := range []string{FormatTOML, FormatYAML, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := EncodeDocument(&buf, w, format); err != nil {
				t.Fatalf("EncodeDocument: %v", err)
			}
			g, err := DecodeDocument(&buf, format)
			if err != nil {
				t.Fatalf("DecodeDocument: %v\n%s", err, buf.String())
			}
			got, _ := g.(*wave.Wave).SVG()
			if got != want {
				t.Error("SVG differs after document round trip")
			}
		})
	}
}

func TestLoadAndSaveDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.yaml")

	b := blob.Default()
	b.Left = 5
	if err := SaveDocument(path, b); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	g, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if got := g.(*blob.Blob); *got != *b {
		t.Errorf("LoadDocument = %+v, want %+v", *got, *b)
	}

	if _, err := LoadDocument(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("LoadDocument(missing) = %v, want NOT_FOUND", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "x.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDocument(filepath.Join(dir, "x.txt")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("LoadDocument(.txt) = %v, want INVALID_FORMAT", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.toml", FormatTOML},
		{"a.YAML", FormatYAML},
		{"dir/a.yml", FormatYAML},
		{"a.json", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if err != nil || got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
			}
		})
	}
}

func TestLoadExampleDocuments(t *testing.T) {
	tests := []struct {
		file string
		kind string
	}{
		{"sunset.toml", "gradient"},
		{"hero-wave.yaml", "svg-wave"},
		{"card.json", "box-shadow"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			g, err := LoadDocument(filepath.Join("..", "..", "examples", tt.file))
			if err != nil {
				t.Fatalf("LoadDocument: %v", err)
			}
			if g.Kind() != tt.kind {
				t.Errorf("kind = %q, want %q", g.Kind(), tt.kind)
			}
		})
	}
}

func TestDecodeDocumentReplacesLists(t *testing.T) {
	const want = "polygon(10.0% 0.0%, 20.0% 0.0%, 30.0% 0.0%)"

	tests := []struct {
		name   string
		format string
		doc    string
	}{
		{
			name:   "json",
			format: FormatJSON,
			doc:    `{"kind": "clip-path", "params": {"points": [{"x": 10}, {"x": 20}, {"x": 30}]}}`,
		},
		{
			name:   "toml",
			format: FormatTOML,
			doc: `kind = "clip-path"

[[params.points]]
x = 10

[[params.points]]
x = 20

[[params.points]]
x = 30
`,
		},
		{
			name:   "yaml",
			format: FormatYAML,
			doc: `kind: clip-path
params:
  points:
    - x: 10
    - x: 20
    - x: 30
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := DecodeDocument(strings.NewReader(tt.doc), tt.format)
			if err != nil {
				t.Fatalf("DecodeDocument: %v", err)
			}
			got, err := g.CSS()
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(got, want) {
				t.Errorf("CSS() = %q, want it to contain %q", got, want)
			}
		})
	}
}

func TestDecodeParamsJSONKeepsOmittedLists(t *testing.T) {
	g := gradient.Default()
	if err := DecodeParamsJSON([]byte(`{"angle": 45}`), g); err != nil {
		t.Fatal(err)
	}
	if len(g.Stops) != len(gradient.Default().Stops) {
		t.Errorf("stops = %d, want the default %d", len(g.Stops), len(gradient.Default().Stops))
	}
	if g.Angle != 45 {
		t.Errorf("angle = %v, want 45", g.Angle)
	}
}
