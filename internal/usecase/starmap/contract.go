package starmap

import (
	"context"

	"github.com/astrovis/starfield/internal/domain"
	"github.com/astrovis/starfield/internal/domain/query"
)

// Catalog executes a catalog query and returns the matching rows.
// An empty result is valid; failures wrap domain.ErrCatalogUnavailable
// or domain.ErrQuerySyntax.
type Catalog interface {
	Query(ctx context.Context, desc query.Descriptor) (domain.ResultSet, error)
}
