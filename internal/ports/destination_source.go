package ports

import (
	"context"
	"travel-matrix-service/internal/domain"
)

// Port: a boundary for retrieving the ordered destination list.
type DestinationSource interface {
	// Retrieve all destinations in their source order.
	ListDestinations(ctx context.Context) ([]domain.Destination, error)
}
