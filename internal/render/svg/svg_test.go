package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/astrovis/starfield/internal/domain"
	"github.com/astrovis/starfield/internal/domain/units"
)

func sampleMap() *domain.StarMap {
	return &domain.StarMap{
		Title:       "Nearby Stars within 12.00 ly",
		MaxDistance: units.Distance{Value: 12, Unit: units.LightYear},
		AxisBound:   3.68,
		DMin:        1.3,
		DMax:        3.2,
		Points: []domain.VisualPoint{
			{ProjectedPoint: domain.ProjectedPoint{DistancePC: 1.3, X: 1.0, Y: 0.5}, Size: 100, Color: 1},
			{ProjectedPoint: domain.ProjectedPoint{DistancePC: 3.2, X: -2.1, Y: 1.9}, Size: 10, Color: 0},
		},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(DefaultStyle()).Render(&buf, sampleMap()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<svg ") || !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Fatal("output is not a complete SVG document")
	}
	if !strings.Contains(out, "Nearby Stars within 12.00 ly") {
		t.Error("title missing")
	}
	// Two stars, the glow ring, the observer, plus the legend swatches.
	if n := strings.Count(out, "<circle"); n != 4 {
		t.Errorf("expected 4 circles (2 stars + glow + observer), got %d", n)
	}
	// Legend carries the sample bounds.
	if !strings.Contains(out, "1.3 pc") || !strings.Contains(out, "3.2 pc") {
		t.Error("legend bounds missing")
	}
	// Nearest star is warm, farthest is cool.
	if !strings.Contains(out, Diverging(1)) || !strings.Contains(out, Diverging(0)) {
		t.Error("star colors missing from output")
	}
}

func TestRender_ObserverCentered(t *testing.T) {
	var buf bytes.Buffer
	style := DefaultStyle()
	if err := NewRenderer(style).Render(&buf, sampleMap()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The observer sits at the canvas center regardless of axis bound.
	center := float64(style.Size) / 2
	want := []byte(`cx="400.00" cy="400.00"`)
	if center != 400 || !bytes.Contains(buf.Bytes(), want) {
		t.Errorf("observer marker not at canvas center %v", center)
	}
}

func TestDiverging(t *testing.T) {
	if got := Diverging(1); got != "#b40426" {
		t.Errorf("warm end: got %s", got)
	}
	if got := Diverging(0); got != "#3b4cc0" {
		t.Errorf("cool end: got %s", got)
	}
	if got := Diverging(0.5); got != "#dddddd" {
		t.Errorf("midpoint: got %s", got)
	}
	// Out-of-range scalars clamp instead of wrapping.
	if Diverging(-3) != Diverging(0) || Diverging(7) != Diverging(1) {
		t.Error("clamping failed")
	}
}

func TestMarkerRadius(t *testing.T) {
	// Sizes are areas: quadrupling the size doubles the radius.
	r1, r4 := markerRadius(25), markerRadius(100)
	if diff := r4 - 2*r1; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("radius scaling: r(100)=%v, want 2*r(25)=%v", r4, 2*r1)
	}
	if markerRadius(-5) != 0 {
		t.Errorf("negative size must clamp to 0")
	}
}
