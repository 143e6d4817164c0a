// Package location provides origin position providers, the service-side
// analogue of the device GPS in the original mobile utility.
package location

import (
	"context"

	"github.com/lodestar-geo/place-search-service/internal/domain"
)

// StaticProvider always reports a fixed origin, configured at startup.
// Useful for single-site deployments and local development.
type StaticProvider struct {
	origin domain.Coordinate
}

// NewStaticProvider creates a provider pinned to the given coordinate.
func NewStaticProvider(origin domain.Coordinate) *StaticProvider {
	return &StaticProvider{origin: origin}
}

func (p *StaticProvider) CurrentLocation(_ context.Context) (domain.Coordinate, error) {
	return p.origin, nil
}
