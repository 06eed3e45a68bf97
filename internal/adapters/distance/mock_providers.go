package distance

import (
	"context"
	"fmt"
	"time"
	"travel-matrix-service/internal/domain"

	"go.uber.org/atomic"
)

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// MockGeocoder resolves addresses from a fixed table. Unknown addresses
// fail with a GeocodingError.
type MockGeocoder struct {
	Coords map[string]domain.Coordinates
	Delays map[string]time.Duration
	Calls  atomic.Int64
}

func NewMockGeocoder(coords map[string]domain.Coordinates) *MockGeocoder {
	return &MockGeocoder{Coords: coords, Delays: map[string]time.Duration{}}
}

func (m *MockGeocoder) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	m.Calls.Inc()

	if err := sleep(ctx, m.Delays[address]); err != nil {
		return domain.Coordinates{}, &domain.GeocodingError{Address: address, Err: err}
	}

	c, ok := m.Coords[address]
	if !ok {
		return domain.Coordinates{}, &domain.GeocodingError{Address: address, Err: fmt.Errorf("missing address %q", address)}
	}
	return c, nil
}

func (m *MockGeocoder) ResolveAll(ctx context.Context, addresses []string) ([]domain.Coordinates, error) {
	out := make([]domain.Coordinates, 0, len(addresses))
	for _, a := range addresses {
		c, err := m.Resolve(ctx, a)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// MockMatrixRouter returns canned edges per profile.
type MockMatrixRouter struct {
	Edges  map[domain.TransportProfile][]domain.TravelEdge
	Delays map[domain.TransportProfile]time.Duration
	Errs   map[domain.TransportProfile]error
	Calls  atomic.Int64
}

func NewMockMatrixRouter(edges map[domain.TransportProfile][]domain.TravelEdge) *MockMatrixRouter {
	return &MockMatrixRouter{
		Edges:  edges,
		Delays: map[domain.TransportProfile]time.Duration{},
		Errs:   map[domain.TransportProfile]error{},
	}
}

func (m *MockMatrixRouter) ComputeMatrix(
	ctx context.Context,
	profile domain.TransportProfile,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) ([]domain.TravelEdge, error) {
	m.Calls.Inc()

	if err := sleep(ctx, m.Delays[profile]); err != nil {
		return nil, &domain.RoutingProviderError{Profile: profile, Err: err}
	}
	if err := m.Errs[profile]; err != nil {
		return nil, &domain.RoutingProviderError{Profile: profile, Err: err}
	}

	edges := m.Edges[profile]
	if len(edges) != len(destinations) {
		return nil, &domain.RoutingProviderError{
			Profile: profile,
			Err:     fmt.Errorf("mock has %d edges for %d destinations", len(edges), len(destinations)),
		}
	}
	return edges, nil
}

// MockPairRouter returns canned edges keyed by destination address.
type MockPairRouter struct {
	Edges  map[string]domain.TravelEdge
	Delays map[string]time.Duration
	Errs   map[string]error
	Calls  atomic.Int64
}

func NewMockPairRouter(edges map[string]domain.TravelEdge) *MockPairRouter {
	return &MockPairRouter{
		Edges:  edges,
		Delays: map[string]time.Duration{},
		Errs:   map[string]error{},
	}
}

func (m *MockPairRouter) ComputePair(
	ctx context.Context,
	profile domain.TransportProfile,
	origin string,
	destination string,
) (domain.TravelEdge, error) {
	m.Calls.Inc()

	if err := sleep(ctx, m.Delays[destination]); err != nil {
		return domain.TravelEdge{}, &domain.RoutingProviderError{Profile: profile, Err: err}
	}
	if err := m.Errs[destination]; err != nil {
		return domain.TravelEdge{}, &domain.RoutingProviderError{Profile: profile, Err: err}
	}

	e, ok := m.Edges[destination]
	if !ok {
		return domain.TravelEdge{}, &domain.RoutingProviderError{
			Profile: profile,
			Err:     fmt.Errorf("missing pair %q -> %q", origin, destination),
		}
	}
	return e, nil
}
