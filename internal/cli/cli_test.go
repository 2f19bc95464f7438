package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator/registry"
	"github.com/matzehuels/blocks/pkg/markdown"
)

// testEnv runs commands against isolated cache and config directories.
type testEnv struct {
	t   *testing.T
	dir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("BLOCKS_BOOKMARKS", "")
	prev := statusOut
	statusOut = io.Discard
	t.Cleanup(func() { statusOut = prev })
	return &testEnv{t: t, dir: dir}
}

func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.SetOutput(&out)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.Execute()
	return out.String(), err
}

func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatal(err)
	}
	return path
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  ", nil},
		{"css", []string{"css"}},
		{"css,png", []string{"css", "png"}},
		{" css , svg ,", []string{"css", "svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseFormats(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	shadow, _ := registry.New("box-shadow")
	gradient, _ := registry.New("gradient")
	doc := &markdown.Markdown{Title: "Notes"}

	tests := []struct {
		name   string
		got    string
		wanted string
	}{
		{"plain kind", fileName(shadow, "css"), "box-shadow.css"},
		{"namer", fileName(gradient, "css"), "gradient.css"},
		{"namer png", fileName(gradient, "png"), "gradient-genius.png"},
		{"tailwind extension", fileName(gradient, "tailwind"), "gradient.txt"},
		{"document title", fileName(doc, "pdf"), "Notes.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.wanted {
				t.Errorf("fileName() = %q, want %q", tt.got, tt.wanted)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	g, _ := registry.New("gradient")
	sep := string(os.PathSeparator)

	tests := []struct {
		name     string
		format   string
		output   string
		multiple bool
		want     string
	}{
		{"default name", "css", "", false, "gradient.css"},
		{"single file", "css", "out/bg.css", false, "out/bg.css"},
		{"base path", "tailwind", "out/bg.css", true, "out/bg.txt"},
		{"directory", "png", "out" + sep, true, filepath.Join("out", "gradient-genius.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(g, tt.format, tt.output, tt.multiple); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateStdout(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("generate", "--kind", "gradient", "-f", "css")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := "background: linear-gradient(135deg, #8b5cf6 0%, #3b82f6 100%);"
	if !strings.Contains(out, want) {
		t.Errorf("output = %q, want it to contain %q", out, want)
	}
}

func TestGenerateDocument(t *testing.T) {
	env := newTestEnv(t)
	doc := env.write("shadow.toml", `kind = "box-shadow"

[[params.layers]]
offset_x = 4
offset_y = 6
blur = 12
spread = 0
color = "#000000"
opacity = 50
inset = false
`)

	out, err := env.run("generate", doc, "-f", "css")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "box-shadow: 4px 6px 12px 0px") {
		t.Errorf("output = %q, want the document's offsets", out)
	}

	if _, err := env.run("generate", doc, "--kind", "gradient"); !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Errorf("mismatched --kind error = %v, want INVALID_KIND", err)
	}
}

func TestGenerateFiles(t *testing.T) {
	env := newTestEnv(t)
	outDir := filepath.Join(env.dir, "out") + string(os.PathSeparator)

	if _, err := env.run("generate", "--kind", "gradient", "-f", "css,tailwind", "-o", outDir); err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, name := range []string{"gradient.css", "gradient.txt"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"no input", []string{"generate"}, errors.ErrCodeInvalidInput},
		{"unknown kind", []string{"generate", "--kind", "sparkles"}, errors.ErrCodeInvalidKind},
		{"bad format", []string{"generate", "--kind", "gradient", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"missing document", []string{"generate", filepath.Join(env.dir, "nope.toml")}, errors.ErrCodeNotFound},
		{"not randomizable", []string{"generate", "--kind", "box-shadow", "--random"}, errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRandomizeSeed(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.run("randomize", "blob", "--seed", "7")
	if err != nil {
		t.Fatalf("randomize: %v", err)
	}
	second, err := env.run("randomize", "blob", "--seed", "7")
	if err != nil {
		t.Fatalf("randomize: %v", err)
	}
	if first != second {
		t.Errorf("same seed produced different documents:\n%s\n%s", first, second)
	}
	if !strings.Contains(first, `kind = "blob"`) {
		t.Errorf("document = %q, want kind line", first)
	}

	path := filepath.Join(env.dir, "blob.yaml")
	if _, err := env.run("randomize", "blob", "--seed", "7", "-o", path); err != nil {
		t.Fatalf("randomize -o: %v", err)
	}
	if out, err := env.run("generate", path, "-f", "css"); err != nil || !strings.Contains(out, "border-radius") {
		t.Errorf("generate randomized document = %q, %v", out, err)
	}
}

func TestShareRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	token, err := env.run("share", "encode", "--kind", "clip-path")
	if err != nil {
		t.Fatalf("share encode: %v", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		t.Fatal("empty token")
	}

	doc, err := env.run("share", "decode", token, "--format", "json")
	if err != nil {
		t.Fatalf("share decode: %v", err)
	}
	if !strings.Contains(doc, `"kind": "clip-path"`) {
		t.Errorf("decoded document = %q", doc)
	}

	if _, err := env.run("share", "decode", "not-a-token"); !errors.Is(err, errors.ErrCodeInvalidToken) {
		t.Errorf("bad token error = %v, want INVALID_TOKEN", err)
	}
}

func TestBookmarksCommands(t *testing.T) {
	env := newTestEnv(t)

	steps := []struct {
		args []string
		want []string
	}{
		{[]string{"bookmarks", "add", "gradient"}, nil},
		{[]string{"bookmarks", "add", "blob"}, nil},
		{[]string{"bookmarks", "add", "gradient"}, nil},
		{[]string{"bookmarks", "list"}, []string{"gradient", "blob"}},
		{[]string{"bookmarks", "toggle", "gradient"}, nil},
		{[]string{"bookmarks", "list"}, []string{"blob"}},
		{[]string{"bookmarks", "remove", "blob"}, nil},
		{[]string{"bookmarks", "list"}, nil},
	}

	for _, step := range steps {
		out, err := env.run(step.args...)
		if err != nil {
			t.Fatalf("%v: %v", step.args, err)
		}
		if step.args[1] != "list" {
			continue
		}
		got := strings.Fields(out)
		if len(got) == 0 {
			got = nil
		}
		if !slices.Equal(got, step.want) {
			t.Errorf("%v = %v, want %v", step.args, got, step.want)
		}
	}

	if _, err := env.run("bookmarks", "add", " padded "); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("invalid id error = %v, want INVALID_INPUT", err)
	}
}

func TestBookmarksSQLiteSettings(t *testing.T) {
	env := newTestEnv(t)
	settings := env.write("config.toml", `[bookmarks]
backend = "sqlite"
path = "`+filepath.ToSlash(filepath.Join(env.dir, "bookmarks.db"))+`"
`)

	if _, err := env.run("--config", settings, "bookmarks", "add", "mesh-gradient"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := env.run("--config", settings, "bookmarks", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.TrimSpace(out) != "mesh-gradient" {
		t.Errorf("list = %q", out)
	}
}

func TestAnimateFrames(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("animate", "--kind", "mesh-gradient", "--frames", "3")
	if err != nil {
		t.Fatalf("animate: %v", err)
	}
	for _, marker := range []string{"/* frame 1 ", "/* frame 2 ", "/* frame 3 "} {
		if !strings.Contains(out, marker) {
			t.Errorf("output missing %q", marker)
		}
	}
	frames := strings.Split(out, "/* frame ")
	if len(frames) != 4 || frames[1] == frames[3] {
		t.Errorf("expected three distinct frames, got %d parts", len(frames))
	}

	svg, err := env.run("animate", "--kind", "svg-wave", "-f", "svg", "--frames", "1")
	if err != nil {
		t.Fatalf("animate svg: %v", err)
	}
	if !strings.Contains(svg, "<svg") {
		t.Errorf("svg frame = %q", svg)
	}
}

func TestAnimateErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"not animated", []string{"animate", "--kind", "box-shadow", "--frames", "1"}, errors.ErrCodeUnsupported},
		{"bad format", []string{"animate", "--kind", "svg-wave", "-f", "png", "--frames", "1"}, errors.ErrCodeInvalidFormat},
		{"unsupported format", []string{"animate", "--kind", "mesh-gradient", "-f", "svg", "--frames", "1"}, errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.run(tt.args...); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestMarkdownHTML(t *testing.T) {
	env := newTestEnv(t)
	src := env.write("hello.md", "# Hello\n\nSome **bold** text.\n\n<script>alert(1)</script>\n")

	out, err := env.run("markdown", src)
	if err != nil {
		t.Fatalf("markdown: %v", err)
	}
	for _, want := range []string{"<title>hello</title>", "<h1>Hello</h1>", "<strong>bold</strong>"} {
		if !strings.Contains(out, want) {
			t.Errorf("document missing %q", want)
		}
	}
	if strings.Contains(out, "<script>") {
		t.Error("document should not contain raw script tags")
	}
}

func TestListCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, kind := range registry.Kinds() {
		if !strings.Contains(out, kind) {
			t.Errorf("list missing %s", kind)
		}
	}
}
