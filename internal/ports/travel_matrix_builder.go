package ports

import (
	"context"
	"travel-matrix-service/internal/domain"
)

// Computes the travel matrix from one origin to an ordered destination list.
type TravelMatrixBuilder interface {
	Build(ctx context.Context, origin string, destinations []domain.Destination) (domain.TravelMatrix, error)
}
