package astro

import (
	"errors"
	"math"
	"testing"

	"github.com/astrovis/starfield/internal/domain"
)

const tolerance = 1e-9

func TestProject_RoundTripOrigin(t *testing.T) {
	// ra=0, dec=0, parallax=1000 mas (one arcsecond) is one parsec
	// straight down the x axis.
	rows := domain.ResultSet{{SourceID: 1, RA: 0, Dec: 0, Parallax: 1000}}

	points, err := Project(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	p := points[0]
	if p.DistancePC != 1 {
		t.Errorf("distance: got %v, want 1", p.DistancePC)
	}
	if math.Abs(p.X-1) > tolerance || math.Abs(p.Y) > tolerance {
		t.Errorf("got (%v, %v), want (1, 0)", p.X, p.Y)
	}
}

func TestProject_QuarterTurn(t *testing.T) {
	rows := domain.ResultSet{{SourceID: 2, RA: 90, Dec: 0, Parallax: 1000}}

	points, err := Project(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := points[0]
	if math.Abs(p.X) > tolerance || math.Abs(p.Y-1) > tolerance {
		t.Errorf("got (%v, %v), want (0, 1)", p.X, p.Y)
	}
}

func TestProject_DropsUnusableParallaxes(t *testing.T) {
	rows := domain.ResultSet{
		{SourceID: 1, RA: 10, Dec: 20, Parallax: 500}, // kept: 2 pc
		{SourceID: 2, RA: 30, Dec: 40, Parallax: 0},
		{SourceID: 3, RA: 50, Dec: 60, Parallax: -3},
		{SourceID: 4, RA: 70, Dec: 80, Parallax: math.NaN()}, // catalog null
	}

	points, err := Project(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	if points[0].DistancePC != 2 {
		t.Errorf("distance: got %v, want 2", points[0].DistancePC)
	}
}

func TestProject_EmptySample(t *testing.T) {
	tests := []struct {
		name string
		rows domain.ResultSet
	}{
		{"no rows", nil},
		{"all invalid", domain.ResultSet{
			{SourceID: 1, Parallax: 0},
			{SourceID: 2, Parallax: -1},
			{SourceID: 3, Parallax: math.NaN()},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Project(tt.rows)
			if !errors.Is(err, domain.ErrEmptySample) {
				t.Errorf("expected ErrEmptySample, got %v", err)
			}
		})
	}
}

func TestProject_PointsAreFinitePositiveAndInsideDisc(t *testing.T) {
	rows := domain.ResultSet{
		{SourceID: 1, RA: 0, Dec: 0, Parallax: 768},
		{SourceID: 2, RA: 123.4, Dec: -45.6, Parallax: 250},
		{SourceID: 3, RA: 359.9, Dec: 89.9, Parallax: 90.5},
		{SourceID: 4, RA: 180, Dec: -89.9, Parallax: 12.2},
	}

	points, err := Project(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != len(rows) {
		t.Fatalf("expected %d points, got %d", len(rows), len(points))
	}
	for i, p := range points {
		if !(p.DistancePC > 0) || math.IsInf(p.DistancePC, 0) {
			t.Errorf("point %d: distance %v not finite positive", i, p.DistancePC)
		}
		// The projection drops the declination height component, so no
		// point can land outside the disc of its own distance.
		if p.X*p.X+p.Y*p.Y > p.DistancePC*p.DistancePC+tolerance {
			t.Errorf("point %d: (%v,%v) outside disc of radius %v", i, p.X, p.Y, p.DistancePC)
		}
	}
}

func TestDistanceFromParallax(t *testing.T) {
	// Parallax in mas halves as distance doubles.
	if d := DistanceFromParallax(1000); d != 1 {
		t.Errorf("1000 mas: got %v, want 1", d)
	}
	if d := DistanceFromParallax(100); d != 10 {
		t.Errorf("100 mas: got %v, want 10", d)
	}
}
