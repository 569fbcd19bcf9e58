// Package astro holds the distance and projection math for the
// observer-centered star map.
package astro

import (
	"math"

	"github.com/astrovis/starfield/internal/domain"
)

// MasPerArcsec converts catalog parallaxes (milliarcseconds, per the
// Gaia DR2 schema) to the arcsecond scale that defines the parsec:
// distance_pc = MasPerArcsec / parallax_mas.
const MasPerArcsec = 1000.0

// DistanceFromParallax returns the distance in parsecs for a parallax in
// milliarcseconds. Only meaningful for positive parallaxes.
func DistanceFromParallax(parallaxMas float64) float64 {
	return MasPerArcsec / parallaxMas
}

// Project flattens catalog rows onto the observer-centered tangent plane.
// Rows without a usable parallax (non-positive or null) are dropped
// silently as catalog noise. When nothing survives, it returns
// domain.ErrEmptySample so the caller can short-circuit before any
// rendering is attempted.
//
// For each kept row: d = 1000/parallax_mas parsecs, then
// x = d·cos(dec)·cos(ra), y = d·cos(dec)·sin(ra) with ra and dec in
// radians. The declination height component is dropped beyond its cosine
// scaling; this is a top-down view, not a 3D scatter, so x²+y² ≤ d².
func Project(rows domain.ResultSet) ([]domain.ProjectedPoint, error) {
	points := make([]domain.ProjectedPoint, 0, len(rows))
	for _, r := range rows {
		if !r.HasParallax() {
			continue
		}
		d := DistanceFromParallax(r.Parallax)
		ra := r.RA * math.Pi / 180
		dec := r.Dec * math.Pi / 180
		points = append(points, domain.ProjectedPoint{
			DistancePC: d,
			X:          d * math.Cos(dec) * math.Cos(ra),
			Y:          d * math.Cos(dec) * math.Sin(ra),
		})
	}
	if len(points) == 0 {
		return nil, domain.ErrEmptySample
	}
	return points, nil
}
