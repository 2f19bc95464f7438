package loader

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func TestCSS(t *testing.T) {
	tests := []struct {
		style string
		want  []string
	}{
		{StyleSpinner, []string{
			"border-top-color: #8b5cf6;",
			"border: 6px solid rgba(139, 92, 246, 0.2);",
			"animation: blocks-spin 1s linear infinite;",
			"@keyframes blocks-spin",
		}},
		{StyleDots, []string{".loader > span {", "@keyframes blocks-bounce", "span:nth-child(3) { animation-delay: 0.333s; }"}},
		{StylePulse, []string{"@keyframes blocks-pulse", "opacity: 0;"}},
		{StyleBars, []string{"@keyframes blocks-stretch", "scaleY(0.4)"}},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			l := Default()
			l.Style = tt.style
			got, err := l.CSS()
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("CSS() missing %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestMarkup(t *testing.T) {
	l := Default()
	l.Style = StyleBars
	l.Count = 5
	if got := strings.Count(l.Markup(), "<span>"); got != 5 {
		t.Errorf("bars markup has %d spans, want 5", got)
	}
	l.Style = StyleSpinner
	if got := l.Markup(); got != `<div class="loader"></div>` {
		t.Errorf("spinner markup = %q", got)
	}
}

func TestHTMLEmbedsStyle(t *testing.T) {
	got, err := Default().HTML()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "<style>\n.loader {") || !strings.HasSuffix(got, `<div class="loader"></div>`) {
		t.Errorf("HTML() =\n%s", got)
	}
}

func TestValidation(t *testing.T) {
	l := Default()
	l.Style = "wobble"
	if _, err := l.CSS(); err == nil {
		t.Error("unknown style should fail")
	}
	l = Default()
	l.Color = "purple"
	if _, err := l.CSS(); err == nil {
		t.Error("invalid colour should fail")
	}
}

func TestRandomize(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	for range 50 {
		l := Default()
		l.Randomize(rng)
		if _, err := l.HTML(); err != nil {
			t.Fatal(err)
		}
	}
}
