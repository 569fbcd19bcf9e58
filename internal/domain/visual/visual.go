// Package visual derives per-star render attributes from distance.
package visual

import "github.com/astrovis/starfield/internal/domain"

// Default marker sizes, matching the classic nearby-stars plot.
const (
	DefaultMinSize = 10.0
	DefaultMaxSize = 100.0
)

// SizeScale is the marker size range. Nearer stars render at MaxSize.
type SizeScale struct {
	MinSize float64
	MaxSize float64
}

// DefaultScale returns the standard 10..100 marker range.
func DefaultScale() SizeScale {
	return SizeScale{MinSize: DefaultMinSize, MaxSize: DefaultMaxSize}
}

// Bounds returns the nearest and farthest distances in the sample.
// Renderers key their legend to this range.
func Bounds(points []domain.ProjectedPoint) (dmin, dmax float64) {
	if len(points) == 0 {
		return 0, 0
	}
	dmin, dmax = points[0].DistancePC, points[0].DistancePC
	for _, p := range points[1:] {
		if p.DistancePC < dmin {
			dmin = p.DistancePC
		}
		if p.DistancePC > dmax {
			dmax = p.DistancePC
		}
	}
	return dmin, dmax
}

// MapAttributes assigns size and color to each projected point from its
// distance, normalized against the sample's own min/max. Normalization is
// relative, not absolute: the same star gets different attributes in
// different samples.
//
// normalized = (d - dmin) / (dmax - dmin), or 0 when the sample has a
// single point (dmin == dmax) — the boundary rule that avoids dividing
// by zero and renders a lone star at full size.
//
// size  = (1 - normalized) * (MaxSize - MinSize) + MinSize
// color = 1 - normalized
//
// Both attributes are driven by the same normalized value, so their
// orderings always agree, and the color scalar arrives at the renderer
// already inverted (near = 1). The observer marker is never part of the
// sample and is untouched by this normalization.
func MapAttributes(points []domain.ProjectedPoint, scale SizeScale) []domain.VisualPoint {
	dmin, dmax := Bounds(points)
	span := dmax - dmin

	out := make([]domain.VisualPoint, len(points))
	for i, p := range points {
		normalized := 0.0
		if span > 0 {
			normalized = (p.DistancePC - dmin) / span
		}
		out[i] = domain.VisualPoint{
			ProjectedPoint: p,
			Size:           (1-normalized)*(scale.MaxSize-scale.MinSize) + scale.MinSize,
			Color:          1 - normalized,
		}
	}
	return out
}
