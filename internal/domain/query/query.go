// Package query builds catalog query descriptors from a distance cutoff.
package query

import (
	"fmt"
	"math"
	"strings"

	"github.com/astrovis/starfield/internal/domain"
	"github.com/astrovis/starfield/internal/domain/astro"
)

// DefaultTable is the Gaia DR2 main source table.
const DefaultTable = "gaiadr2.gaia_source"

// Descriptor selects catalog rows whose parallax places them within the
// requested distance. The threshold is a coarse narrowing only: the
// projection engine still drops non-positive parallaxes, so thresholds
// arbitrarily close to zero are safe.
type Descriptor struct {
	Table          string
	MinParallaxMas float64
	RowLimit       int // 0 = no TOP clause
}

// Option adjusts descriptor construction.
type Option func(*Descriptor)

// WithTable overrides the source table.
func WithTable(table string) Option {
	return func(d *Descriptor) {
		if table != "" {
			d.Table = table
		}
	}
}

// WithRowLimit caps the number of rows via an ADQL TOP clause.
func WithRowLimit(n int) Option {
	return func(d *Descriptor) {
		if n > 0 {
			d.RowLimit = n
		}
	}
}

// Build computes the parallax threshold for a maximum distance in
// parsecs: parallax_mas >= 1000/max_distance_pc. The threshold strictly
// decreases as the distance grows.
func Build(maxDistancePC float64, opts ...Option) (Descriptor, error) {
	if math.IsNaN(maxDistancePC) || math.IsInf(maxDistancePC, 0) || maxDistancePC <= 0 {
		return Descriptor{}, fmt.Errorf("max distance must be positive, got %v: %w",
			maxDistancePC, domain.ErrInvalidDistance)
	}
	d := Descriptor{
		Table:          DefaultTable,
		MinParallaxMas: astro.MasPerArcsec / maxDistancePC,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d, nil
}

// ADQL renders the descriptor as the query text the TAP service executes.
func (d Descriptor) ADQL() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	if d.RowLimit > 0 {
		fmt.Fprintf(&b, "TOP %d ", d.RowLimit)
	}
	b.WriteString("source_id, ra, dec, parallax FROM ")
	b.WriteString(d.Table)
	fmt.Fprintf(&b, " WHERE parallax >= %g AND parallax IS NOT NULL", d.MinParallaxMas)
	return b.String()
}
