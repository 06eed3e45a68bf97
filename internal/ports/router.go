package ports

import (
	"context"
	"travel-matrix-service/internal/domain"
)

// Batch one-to-many router for coordinate-based profiles.
type MatrixRouter interface {
	// Return one edge per destination, in destination order.
	ComputeMatrix(
		ctx context.Context,
		profile domain.TransportProfile,
		origin domain.Coordinates,
		destinations []domain.Coordinates,
	) ([]domain.TravelEdge, error)
}

// Pairwise router for profiles whose provider only accepts text waypoints.
type PairRouter interface {
	// Return travel cost between two addresses.
	ComputePair(ctx context.Context, profile domain.TransportProfile, origin, destination string) (domain.TravelEdge, error)
}
