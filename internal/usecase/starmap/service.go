// Package starmap runs the query-to-render pipeline: distance
// normalization, query construction, catalog fetch, projection, and
// visual attribute mapping.
package starmap

import (
	"context"
	"fmt"

	"github.com/astrovis/starfield/internal/domain"
	"github.com/astrovis/starfield/internal/domain/astro"
	"github.com/astrovis/starfield/internal/domain/query"
	"github.com/astrovis/starfield/internal/domain/units"
	"github.com/astrovis/starfield/internal/domain/visual"
	"github.com/astrovis/starfield/internal/metrics"
)

// Service assembles star maps. One invocation runs one synchronous
// pipeline to completion; no state is shared across invocations.
type Service struct {
	catalog  Catalog
	scale    visual.SizeScale
	table    string
	rowLimit int
}

// New creates the pipeline service with default sizing and table.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog, scale: visual.DefaultScale()}
}

// WithSizeScale overrides the marker size range.
func (s *Service) WithSizeScale(scale visual.SizeScale) *Service {
	if scale.MinSize > 0 && scale.MaxSize > scale.MinSize {
		s.scale = scale
	}
	return s
}

// WithTable overrides the catalog source table.
func (s *Service) WithTable(table string) *Service {
	s.table = table
	return s
}

// WithRowLimit caps the rows fetched per query.
func (s *Service) WithRowLimit(n int) *Service {
	s.rowLimit = n
	return s
}

// Build runs the full pipeline for one requested distance. It returns a
// complete StarMap or nothing: domain.ErrInvalidDistance for bad input,
// domain.ErrEmptySample when no usable star survives filtering (a valid
// terminal state the caller reports, not a fault), and catalog errors
// as-is. The axis bound and the title both come from the same converted
// distance so presentation cannot drift from the query.
func (s *Service) Build(ctx context.Context, d units.Distance) (*domain.StarMap, error) {
	maxPC, err := d.ToParsecs()
	if err != nil {
		return nil, err
	}

	desc, err := query.Build(maxPC, query.WithTable(s.table), query.WithRowLimit(s.rowLimit))
	if err != nil {
		return nil, err
	}

	rows, err := s.catalog.Query(ctx, desc)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}

	projected, err := astro.Project(rows)
	if err != nil {
		return nil, err
	}

	dmin, dmax := visual.Bounds(projected)
	points := visual.MapAttributes(projected, s.scale)
	metrics.StarmapPoints.Observe(float64(len(points)))

	return &domain.StarMap{
		Title:       fmt.Sprintf("Nearby Stars within %s", d),
		MaxDistance: d,
		AxisBound:   maxPC,
		Points:      points,
		DMin:        dmin,
		DMax:        dmax,
	}, nil
}
