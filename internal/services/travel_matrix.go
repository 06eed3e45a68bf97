package services

import (
	"context"
	"fmt"
	"time"
	"travel-matrix-service/internal/domain"
	"travel-matrix-service/internal/platform/obs"
	"travel-matrix-service/internal/ports"

	"github.com/go-kit/log"
	"golang.org/x/sync/errgroup"
)

// TravelMatrixBuilder orchestrates geocoding and both routing strategies
// and assembles one row per destination.
type TravelMatrixBuilder struct {
	geocoder ports.Geocoder
	matrix   ports.MatrixRouter
	pairs    ports.PairRouter
	profiles []domain.TransportProfile
	timeout  time.Duration
	logger   log.Logger
}

// NewTravelMatrixBuilder wires the providers. A zero timeout leaves the
// build bounded only by ctx and the per-call HTTP timeouts.
func NewTravelMatrixBuilder(
	geocoder ports.Geocoder,
	matrix ports.MatrixRouter,
	pairs ports.PairRouter,
	timeout time.Duration,
	logger log.Logger,
) *TravelMatrixBuilder {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &TravelMatrixBuilder{
		geocoder: geocoder,
		matrix:   matrix,
		pairs:    pairs,
		profiles: domain.Profiles,
		timeout:  timeout,
		logger:   logger,
	}
}

// Build computes the travel matrix from origin to every destination.
//
// Geocoding runs first and must fully succeed before any routing call is
// made. Matrix profiles receive the coordinate list; pairwise profiles
// receive the text addresses. Row i always corresponds to destinations[i].
// Any failure aborts the build; no partial matrix is returned.
func (b *TravelMatrixBuilder) Build(
	ctx context.Context,
	origin string,
	destinations []domain.Destination,
) (_ domain.TravelMatrix, err error) {
	defer obs.Time(ctx, b.logger, "matrix.Build")(&err)

	if len(destinations) == 0 {
		return domain.TravelMatrix{Rows: []domain.TravelRow{}}, nil
	}

	addresses, err := combinedAddresses(origin, destinations)
	if err != nil {
		return domain.TravelMatrix{}, fmt.Errorf("build travel matrix: %w", err)
	}

	for _, p := range b.profiles {
		if s := p.Strategy(); s != domain.MatrixStrategy && s != domain.PairwiseStrategy {
			return domain.TravelMatrix{}, fmt.Errorf("build travel matrix: profile %s has no strategy", p)
		}
	}

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	coords, err := b.geocoder.ResolveAll(ctx, addresses)
	if err != nil {
		return domain.TravelMatrix{}, fmt.Errorf("build travel matrix: %w", err)
	}
	if len(coords) != len(addresses) {
		return domain.TravelMatrix{}, fmt.Errorf(
			"build travel matrix: geocoder returned %d coordinates for %d addresses",
			len(coords), len(addresses),
		)
	}

	// Indexed by position in b.profiles.
	results := make([][]domain.TravelEdge, len(b.profiles))

	g, gctx := errgroup.WithContext(ctx)
	for pi, p := range b.profiles {
		pi, p := pi, p
		switch p.Strategy() {
		case domain.MatrixStrategy:
			g.Go(func() error {
				edges, err := b.matrix.ComputeMatrix(gctx, p, coords[0], coords[1:])
				if err != nil {
					return err
				}
				results[pi] = edges
				return nil
			})
		case domain.PairwiseStrategy:
			g.Go(func() error {
				edges, err := ComputeAllPairs(gctx, b.pairs, p, addresses[0], addresses[1:])
				if err != nil {
					return err
				}
				results[pi] = edges
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return domain.TravelMatrix{}, fmt.Errorf("build travel matrix: %w", err)
	}

	for pi, p := range b.profiles {
		pi, p := pi, p
		if len(results[pi]) != len(destinations) {
			return domain.TravelMatrix{}, fmt.Errorf("build travel matrix: %w", &domain.RoutingProviderError{
				Profile: p,
				Err:     fmt.Errorf("got %d edges for %d destinations", len(results[pi]), len(destinations)),
			})
		}
	}

	rows := make([]domain.TravelRow, 0, len(destinations))
	for i, d := range destinations {
		edges := make(map[domain.TransportProfile]domain.TravelEdge, len(b.profiles))
		for pi, p := range b.profiles {
			edges[p] = results[pi][i]
		}
		rows = append(rows, domain.TravelRow{
			Destination: domain.Destination{Company: d.Company, Address: addresses[i+1]},
			Edges:       edges,
		})
	}

	return domain.TravelMatrix{Rows: rows}, nil
}

// combinedAddresses returns [origin] + destination addresses, normalized.
func combinedAddresses(origin string, destinations []domain.Destination) ([]string, error) {
	out := make([]string, 0, 1+len(destinations))

	o := domain.NormalizeAddress(origin)
	if o == "" {
		return nil, &domain.MalformedInputError{Reason: "origin must be non-empty"}
	}
	out = append(out, o)

	for i, d := range destinations {
		a := domain.NormalizeAddress(d.Address)
		if a == "" {
			return nil, &domain.MalformedInputError{
				Reason: fmt.Sprintf("destination %d (%q) has an empty address", i+1, d.Company),
			}
		}
		out = append(out, a)
	}

	return out, nil
}
