package services

import (
	"context"
	"travel-matrix-service/internal/domain"
	"travel-matrix-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

// ComputeAllPairs issues one ComputePair call per destination, all at once,
// and returns the edges in destination order. The first failure cancels the
// calls still in flight and is returned; no partial result is produced.
func ComputeAllPairs(
	ctx context.Context,
	router ports.PairRouter,
	profile domain.TransportProfile,
	origin string,
	destinations []string,
) ([]domain.TravelEdge, error) {
	out := make([]domain.TravelEdge, len(destinations))
	if len(destinations) == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range destinations {
		i, d := i, d
		g.Go(func() error {
			e, err := router.ComputePair(gctx, profile, origin, d)
			if err != nil {
				return err
			}
			out[i] = e
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
