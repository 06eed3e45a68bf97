package distance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"travel-matrix-service/internal/domain"
	"travel-matrix-service/internal/platform/obs"

	"github.com/go-kit/log"
)

// Fixed request parameters for pairwise transit queries.
const (
	transitOptimize     = "time"
	transitTimeType     = "Arrival"
	transitArrivalTime  = "09:00:00"
	transitDistanceUnit = "Kilometer"
)

// Bing Maps travel mode per transport profile.
var bingTravelModes = map[domain.TransportProfile]string{
	domain.Transit: "Transit",
}

type routeResponse struct {
	ResourceSets []struct {
		Resources []struct {
			TravelDuration *float64 `json:"travelDuration"`
			TravelDistance *float64 `json:"travelDistance"`
		} `json:"resources"`
	} `json:"resourceSets"`
}

// BingTransitRouter implements PairRouter using the Bing Maps Routes API.
// Waypoints are sent as text; this provider does not need geocoded input.
type BingTransitRouter struct {
	session *http.Client
	apiKey  string
	baseURL string
	logger  log.Logger
}

func NewBingTransitRouter(apiKey, baseURL string, timeout time.Duration, logger log.Logger) (*BingTransitRouter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("Bing Maps api key is empty")
	}
	if baseURL == "" {
		baseURL = "http://dev.virtualearth.net"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &BingTransitRouter{
		session: &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log.With(logger, "provider", "bing"),
	}, nil
}

// ComputePair returns the travel cost between two text addresses, arriving
// at 09:00 local time.
func (b *BingTransitRouter) ComputePair(
	ctx context.Context,
	profile domain.TransportProfile,
	origin string,
	destination string,
) (_ domain.TravelEdge, err error) {
	defer obs.Time(ctx, b.logger, "bing.ComputePair")(&err)

	mode, ok := bingTravelModes[profile]
	if !ok {
		return domain.TravelEdge{}, &domain.RoutingProviderError{
			Profile: profile,
			Err:     errors.New("profile is not served by the routes endpoint"),
		}
	}

	edge, err := b.fetchRoute(ctx, mode, origin, destination)
	if err != nil {
		return domain.TravelEdge{}, &domain.RoutingProviderError{
			Profile: profile,
			Err:     fmt.Errorf("%q -> %q: %w", origin, destination, err),
		}
	}

	return edge, nil
}

func (b *BingTransitRouter) fetchRoute(ctx context.Context, mode, origin, destination string) (domain.TravelEdge, error) {
	endpoint := fmt.Sprintf("%s/REST/v1/Routes/%s", b.baseURL, url.PathEscape(mode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.TravelEdge{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("wayPoint.1", domain.NormalizeAddress(origin))
	q.Set("wayPoint.2", domain.NormalizeAddress(destination))
	q.Set("optimize", transitOptimize)
	q.Set("timeType", transitTimeType)
	q.Set("dateTime", transitArrivalTime)
	q.Set("distanceUnit", transitDistanceUnit)
	q.Set("key", b.apiKey)
	req.URL.RawQuery = q.Encode()

	var decoded routeResponse
	if err := decodeJSON(b.session, req, &decoded); err != nil {
		// Transport errors carry the request URL, which includes the key.
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = endpoint
		}
		return domain.TravelEdge{}, fmt.Errorf("route request: %w", err)
	}

	if len(decoded.ResourceSets) == 0 || len(decoded.ResourceSets[0].Resources) == 0 {
		return domain.TravelEdge{}, errors.New("route response has no resources")
	}

	res := decoded.ResourceSets[0].Resources[0]
	if res.TravelDuration == nil || res.TravelDistance == nil {
		return domain.TravelEdge{}, errors.New("route response missing travelDuration or travelDistance")
	}

	return domain.TravelEdge{
		DurationMinutes:    domain.SecondsToMinutes(*res.TravelDuration),
		DistanceKilometers: domain.Round2(*res.TravelDistance),
	}, nil
}
