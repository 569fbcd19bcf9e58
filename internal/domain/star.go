package domain

import (
	"math"

	"github.com/astrovis/starfield/internal/domain/units"
)

// CatalogRow is one star as returned by the catalog. Parallax is in
// milliarcseconds; NaN means the catalog reported a null value.
type CatalogRow struct {
	SourceID int64
	RA       float64 // degrees, [0,360)
	Dec      float64 // degrees, [-90,90]
	Parallax float64 // mas
}

// HasParallax reports whether the row carries a usable parallax.
// Non-positive and null (NaN) parallaxes are catalog noise, not errors.
func (r CatalogRow) HasParallax() bool {
	return !math.IsNaN(r.Parallax) && r.Parallax > 0
}

// ResultSet is an ordered catalog query result. Empty is a valid
// terminal state, not a failure.
type ResultSet []CatalogRow

// ProjectedPoint is a star flattened onto the observer-centered plane.
type ProjectedPoint struct {
	DistancePC float64 `json:"distance_pc"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// VisualPoint is a projected star with derived render attributes.
// Size lies in the configured [MinSize, MaxSize]; Color is a scalar in
// [0,1], already inverted so that nearer stars map toward 1.
type VisualPoint struct {
	ProjectedPoint
	Size  float64 `json:"size"`
	Color float64 `json:"color"`
}

// StarMap is the complete input to a renderer: a fully formed point set
// plus the shared presentation values derived from one query. AxisBound
// is computed once from the requested distance so axis limits and the
// color legend cannot drift apart.
type StarMap struct {
	Title       string         `json:"title"`
	MaxDistance units.Distance `json:"max_distance"`
	AxisBound   float64        `json:"axis_bound"` // pc
	Points      []VisualPoint  `json:"points"`
	DMin        float64        `json:"d_min"` // pc, nearest star in sample
	DMax        float64        `json:"d_max"` // pc, farthest star in sample
}
