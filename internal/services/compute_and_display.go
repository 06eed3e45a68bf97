package services

import (
	"context"
	"fmt"
	"travel-matrix-service/internal/domain"
	"travel-matrix-service/internal/ports"
)

// ComputeAndDisplay loads the destination list, builds the travel matrix
// from origin and returns it in display/export table form.
func ComputeAndDisplay(
	ctx context.Context,
	builder ports.TravelMatrixBuilder,
	origin string,
	source ports.DestinationSource,
) (domain.ResultTable, error) {
	destinations, err := source.ListDestinations(ctx)
	if err != nil {
		return domain.ResultTable{}, fmt.Errorf("compute and display: list destinations: %w", err)
	}

	m, err := builder.Build(ctx, origin, destinations)
	if err != nil {
		return domain.ResultTable{}, fmt.Errorf("compute and display: %w", err)
	}

	return domain.NewResultTable(m), nil
}
