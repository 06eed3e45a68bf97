package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"travel-matrix-service/internal/domain"
	"travel-matrix-service/internal/platform/obs"
)

// OpenRouteService matrix profile per transport profile.
var orsProfiles = map[domain.TransportProfile]string{
	domain.Bike: "cycling-regular",
	domain.Car:  "driving-car",
}

type matrixRequest struct {
	Locations [][]float64 `json:"locations"`
	Sources   []int       `json:"sources"`
	Metrics   []string    `json:"metrics"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// ComputeMatrix returns origin->destination edges in destination order using
// a single matrix call with the origin as the only source.
func (o *ORSProvider) ComputeMatrix(
	ctx context.Context,
	profile domain.TransportProfile,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ []domain.TravelEdge, err error) {
	defer obs.Time(ctx, o.logger, "ors.ComputeMatrix."+profile.String())(&err)

	orsProfile, ok := orsProfiles[profile]
	if !ok {
		return nil, &domain.RoutingProviderError{
			Profile: profile,
			Err:     errors.New("profile is not served by the matrix endpoint"),
		}
	}

	if len(destinations) == 0 {
		return []domain.TravelEdge{}, nil
	}

	edges, err := o.fetchMatrixRow(ctx, orsProfile, origin, destinations)
	if err != nil {
		return nil, &domain.RoutingProviderError{Profile: profile, Err: err}
	}

	return edges, nil
}

// fetchMatrixRow retrieves distance and duration from one origin to many
// destinations. The response row includes the origin itself at index 0,
// which is dropped.
func (o *ORSProvider) fetchMatrixRow(
	ctx context.Context,
	orsProfile string,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) ([]domain.TravelEdge, error) {
	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, orsProfile)

	locations := make([][]float64, 0, 1+len(destinations))
	locations = append(locations, origin.CoordsToList())
	for _, c := range destinations {
		locations = append(locations, c.CoordsToList())
	}

	payload, err := json.Marshal(matrixRequest{
		Locations: locations,
		Sources:   []int{0},
		Metrics:   []string{"distance", "duration"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	req, err := o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var mr matrixResponse
	if err := decodeJSON(o.session, req, &mr); err != nil {
		return nil, fmt.Errorf("matrix request: %w", err)
	}

	if len(mr.Distances) == 0 || len(mr.Durations) == 0 {
		return nil, fmt.Errorf(
			"matrix response missing distances or durations: distances=%d durations=%d",
			len(mr.Distances), len(mr.Durations),
		)
	}

	rowDistances := mr.Distances[0]
	rowDurations := mr.Durations[0]

	if len(rowDistances) != len(locations) || len(rowDurations) != len(locations) {
		return nil, fmt.Errorf(
			"row lengths do not match locations: distances=%d durations=%d locations=%d",
			len(rowDistances), len(rowDurations), len(locations),
		)
	}

	out := make([]domain.TravelEdge, 0, len(destinations))
	for i := 1; i < len(locations); i++ {
		meters := rowDistances[i]
		seconds := rowDurations[i]

		if meters == nil || seconds == nil {
			return nil, fmt.Errorf("matrix returned no route to destination %d", i-1)
		}

		out = append(out, domain.TravelEdge{
			DurationMinutes:    domain.SecondsToMinutes(*seconds),
			DistanceKilometers: domain.MetersToKilometers(*meters),
		})
	}

	return out, nil
}
