package domain

import (
	"errors"

	"github.com/astrovis/starfield/internal/domain/units"
)

var (
	// ErrInvalidDistance signals a bad user-supplied distance, rejected
	// at the boundary before any catalog query is built. Aliased from
	// units so errors.Is matches across both packages.
	ErrInvalidDistance = units.ErrInvalidDistance
	// ErrCatalogUnavailable signals that the catalog could not be reached
	// or answered with a server-side failure.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrQuerySyntax signals that the catalog rejected the query text.
	ErrQuerySyntax = errors.New("query syntax error")
	// ErrEmptySample signals that no rows with a usable parallax survived
	// filtering. A valid terminal state, not a fault: the caller skips
	// rendering and informs the user.
	ErrEmptySample = errors.New("no nearby stars in sample")
)
