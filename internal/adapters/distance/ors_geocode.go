package distance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"travel-matrix-service/internal/domain"
	"travel-matrix-service/internal/platform/obs"

	"golang.org/x/sync/errgroup"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

var errNoCandidates = errors.New("no geocode candidates")

// Resolve geocodes one address; the first candidate is authoritative.
func (o *ORSProvider) Resolve(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, o.logger, "ors.Resolve")(&err)

	norm := domain.NormalizeAddress(address)
	if norm == "" {
		return domain.Coordinates{}, &domain.GeocodingError{
			Address: address,
			Err:     errors.New("address must be non-empty"),
		}
	}

	coords, err := o.geocode(ctx, norm)
	if err != nil {
		return domain.Coordinates{}, &domain.GeocodingError{Address: address, Err: err}
	}

	return coords, nil
}

// ResolveAll geocodes addresses with at most o.concurrency calls in flight.
// The first failure cancels outstanding calls and is returned; results are
// placed by input index, so order never depends on completion order.
func (o *ORSProvider) ResolveAll(ctx context.Context, addresses []string) (_ []domain.Coordinates, err error) {
	defer obs.Time(ctx, o.logger, "ors.ResolveAll")(&err)

	out := make([]domain.Coordinates, len(addresses))
	if len(addresses) == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, a := range addresses {
		i, a := i, a
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &domain.GeocodingError{Address: a, Err: err}
			}

			c, err := o.Resolve(gctx, a)
			if err != nil {
				return err
			}
			out[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (o *ORSProvider) geocode(ctx context.Context, text string) (domain.Coordinates, error) {
	endpoint := o.baseURL + "/geocode/search"

	req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Coordinates{}, err
	}

	q := req.URL.Query()
	q.Set("text", text)
	q.Set("boundary.country", o.country)
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	var decoded geocodeResponse
	if err := decodeJSON(o.session, req, &decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode request: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, errNoCandidates
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format: got %d values", len(coords))
	}

	return domain.NewCoordinates(coords[0], coords[1])
}
