package ports

import (
	"context"
	"travel-matrix-service/internal/domain"
)

// Contract for resolving free-text addresses to coordinates.
type Geocoder interface {
	// Resolve a single address; the first provider candidate wins.
	Resolve(ctx context.Context, address string) (domain.Coordinates, error)
	// Resolve many addresses, all-or-nothing, preserving input order.
	ResolveAll(ctx context.Context, addresses []string) ([]domain.Coordinates, error)
}
