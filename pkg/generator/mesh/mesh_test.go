package mesh

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/matzehuels/blocks/pkg/errors"
)

func TestCSS(t *testing.T) {
	m := &Mesh{
		Points: []Point{
			{X: 20, Y: 20, Color: "#10b981", Size: 60},
			{X: 80, Y: 80, Color: "#6366f1", Size: 50},
		},
		Blur: 40,
	}
	got, err := m.CSS()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"background-color: #000000;",
		"radial-gradient(at 20% 20%, #10b981 0px, transparent 60%)",
		"radial-gradient(at 80% 80%, #6366f1 0px, transparent 50%)",
		"filter: blur(40px);",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("CSS() missing %q:\n%s", want, got)
		}
	}
}

func TestCSSRoundsCoordinates(t *testing.T) {
	m := Default()
	m.Points[0].X = 33.33333
	m.Points[1].Y = 120
	got, _ := m.CSS()
	if !strings.Contains(got, "at 33.33% 20%") {
		t.Errorf("coordinates not rounded to 2 decimals:\n%s", got)
	}
	if !strings.Contains(got, "at 80% 100%") {
		t.Errorf("coordinates not clamped:\n%s", got)
	}
}

func TestRemovePointKeepsMinimum(t *testing.T) {
	m := Default()
	if m.RemovePoint(m.Points[0].ID) {
		t.Fatal("RemovePoint should refuse with 2 points")
	}
	id := m.AddPoint()
	if len(m.Points) != 3 {
		t.Fatalf("AddPoint() len = %d", len(m.Points))
	}
	if !m.RemovePoint(id) {
		t.Error("RemovePoint should succeed with 3 points")
	}
	if len(m.Points) != MinPoints {
		t.Errorf("len = %d, want %d", len(m.Points), MinPoints)
	}
}

func TestFrame(t *testing.T) {
	m := Default()
	tests := []float64{0, 0.5, 1.7, 12.3}
	for _, tm := range tests {
		f := m.Frame(tm).(*Mesh)
		for i, p := range f.Points {
			rest := m.Points[i]
			wantX := rest.X + math.Sin(tm+float64(i))*Wobble
			wantY := rest.Y + math.Cos(0.8*tm+float64(i))*Wobble
			if math.Abs(p.X-wantX) > 1e-9 || math.Abs(p.Y-wantY) > 1e-9 {
				t.Errorf("t=%v point %d = (%v,%v), want (%v,%v)", tm, i, p.X, p.Y, wantX, wantY)
			}
		}
	}
	if m.Points[0].X != 20 {
		t.Error("Frame must not modify the receiver")
	}
}

func TestRandomize(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	for range 100 {
		m := Default()
		m.Randomize(rng)
		if n := len(m.Points); n < 3 || n > 5 {
			t.Fatalf("Randomize() produced %d points", n)
		}
		if _, err := m.CSS(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestPointLimits(t *testing.T) {
	m := Default()
	for len(m.Points) < MaxPoints {
		if m.AddPoint() == "" {
			t.Fatalf("AddPoint refused at %d points", len(m.Points))
		}
	}
	if id := m.AddPoint(); id != "" || len(m.Points) != MaxPoints {
		t.Errorf("AddPoint at MaxPoints = %q, len %d", id, len(m.Points))
	}

	tests := []struct {
		name    string
		points  int
		wantErr bool
	}{
		{"too few", MinPoints - 1, true},
		{"minimum", MinPoints, false},
		{"maximum", MaxPoints, false},
		{"too many", MaxPoints + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Background: "#000000"}
			for range tt.points {
				m.Points = append(m.Points, NewPoint(50, 50, "#ffffff", 50))
			}
			err := m.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidParams) {
				t.Errorf("error code = %v, want INVALID_PARAMS", errors.GetCode(err))
			}
		})
	}
}

func TestNormalizeCapsPoints(t *testing.T) {
	m := Default()
	for range 3 * MaxPoints {
		m.Points = append(m.Points, NewPoint(10, 10, "#ffffff", 20))
	}
	m.Normalize()
	if len(m.Points) != MaxPoints {
		t.Errorf("len = %d after Normalize, want %d", len(m.Points), MaxPoints)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() after Normalize = %v", err)
	}
}
