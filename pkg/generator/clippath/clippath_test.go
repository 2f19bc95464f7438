package clippath

import (
	"strings"
	"testing"
)

func TestValue(t *testing.T) {
	tests := []struct {
		name string
		clip ClipPath
		want string
	}{
		{
			name: "circle",
			clip: ClipPath{Mode: ModeCircle, Circle: Circle{Radius: 50, X: 50, Y: 50}},
			want: "circle(50% at 50% 50%)",
		},
		{
			name: "ellipse",
			clip: ClipPath{Mode: ModeEllipse, Ellipse: Ellipse{RX: 40, RY: 25.5, X: 50, Y: 60}},
			want: "ellipse(40% 25.5% at 50% 60%)",
		},
		{
			name: "inset",
			clip: ClipPath{Mode: ModeInset, Inset: Inset{Top: 10, Right: 5, Bottom: 10, Left: 5, Round: 12}},
			want: "inset(10% 5% 10% 5% round 12px)",
		},
		{
			name: "polygon fixed decimals",
			clip: ClipPath{Mode: ModePolygon, Points: []Point{{50, 0}, {100, 100}, {0.26, 99.96}}},
			want: "polygon(50.0% 0.0%, 100.0% 100.0%, 0.3% 100.0%)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.clip.Value()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Value() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCSS(t *testing.T) {
	c := Default()
	c.Mode = ModeCircle
	got, err := c.CSS()
	if err != nil {
		t.Fatal(err)
	}
	if want := "clip-path: circle(50% at 50% 50%);"; got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
}

func TestRemovePointKeepsMinimum(t *testing.T) {
	c := Default()
	c.AddPoint(0)
	if len(c.Points) != 4 {
		t.Fatalf("AddPoint() len = %d, want 4", len(c.Points))
	}

	if !c.RemovePoint(1) {
		t.Fatal("RemovePoint should succeed with 4 points")
	}
	before := append([]Point(nil), c.Points...)
	for i := range 5 {
		if c.RemovePoint(i % 3) {
			t.Fatalf("RemovePoint(%d) succeeded with %d points", i%3, len(c.Points))
		}
	}
	if len(c.Points) != MinPoints {
		t.Fatalf("len = %d, want %d", len(c.Points), MinPoints)
	}
	for i := range before {
		if before[i] != c.Points[i] {
			t.Errorf("refused removal changed point %d: %v -> %v", i, before[i], c.Points[i])
		}
	}
}

func TestAddPointInsertsMidpoint(t *testing.T) {
	c := Default() // (50,0) (100,100) (0,100)
	i := c.AddPoint(2)
	if i != 3 {
		t.Fatalf("AddPoint(2) = %d, want 3", i)
	}
	if got, want := c.Points[3], (Point{X: 25, Y: 50}); got != want {
		t.Errorf("midpoint = %v, want %v", got, want)
	}
}

func TestMovePointClamps(t *testing.T) {
	c := Default()
	if !c.MovePoint(0, -20, 140) {
		t.Fatal("MovePoint returned false")
	}
	if got := c.Points[0]; got != (Point{X: 0, Y: 100}) {
		t.Errorf("Points[0] = %v, want {0 100}", got)
	}
	if c.MovePoint(10, 1, 1) {
		t.Error("MovePoint out of range should fail")
	}
}

func TestParsePolygon(t *testing.T) {
	points, err := ParsePolygon("polygon( 50%   0%,100% 100% , 0% 100%)")
	if err != nil {
		t.Fatal(err)
	}
	want := []Point{{50, 0}, {100, 100}, {0, 100}}
	if len(points) != len(want) {
		t.Fatalf("got %d points, want %d", len(points), len(want))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, points[i], want[i])
		}
	}

	if _, err := ParsePolygon("polygon(10% 10%, 20% 20%)"); err == nil {
		t.Error("two points should be rejected")
	}
}

func TestPresetsRoundTrip(t *testing.T) {
	for _, p := range Presets {
		t.Run(p.Name, func(t *testing.T) {
			c := Default()
			c.Mode = ModeCircle
			if err := c.ApplyPreset(p.Name); err != nil {
				t.Fatal(err)
			}
			if c.Mode != ModePolygon {
				t.Errorf("Mode = %q, want polygon", c.Mode)
			}
			v, err := c.Value()
			if err != nil {
				t.Fatal(err)
			}
			again, err := ParsePolygon(v)
			if err != nil {
				t.Fatal(err)
			}
			if len(again) != len(c.Points) {
				t.Errorf("round trip lost points: %d -> %d", len(c.Points), len(again))
			}
		})
	}
}

func TestTailwind(t *testing.T) {
	c := Default()
	got, err := c.Tailwind()
	if err != nil {
		t.Fatal(err)
	}
	if want := "[clip-path:polygon(50.0%_0.0%,100.0%_100.0%,0.0%_100.0%)]"; got != want {
		t.Errorf("Tailwind() = %q, want %q", got, want)
	}
}

func TestMaskSVG(t *testing.T) {
	tests := []struct {
		mode string
		elem string
	}{
		{ModePolygon, "<polygon"},
		{ModeCircle, "<circle"},
		{ModeEllipse, "<ellipse"},
		{ModeInset, "<rect"},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			c := Default()
			c.Mode = tt.mode
			svg, err := c.SVG()
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range []string{`<clipPath id="blocks-clip"`, tt.elem, `clip-path="url(#blocks-clip)"`, "</svg>"} {
				if !strings.Contains(svg, want) {
					t.Errorf("SVG() missing %q:\n%s", want, svg)
				}
			}
		})
	}
}
