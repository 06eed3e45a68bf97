package distance

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-kit/log"
)

// ORSOptions configures an ORSProvider.
type ORSOptions struct {
	APIKey      string
	BaseURL     string
	Country     string
	Concurrency int
	Timeout     time.Duration
}

// ORSProvider implements Geocoder and MatrixRouter using OpenRouteService.
//
// It coordinates:
//   - Geocoding (/geocode/search), bounded concurrency for batches
//   - One-to-many matrices (/v2/matrix/{profile}) for bike and car
//
// The provider is safe for concurrent use.
type ORSProvider struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	country     string
	concurrency int
	logger      log.Logger
}

func NewORSProvider(opts ORSOptions, logger log.Logger) (*ORSProvider, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.openrouteservice.org"
	}
	if opts.Country == "" {
		opts.Country = "DE"
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	provider := &ORSProvider{
		session:     &http.Client{Timeout: opts.Timeout},
		apiKey:      opts.APIKey,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		country:     opts.Country,
		concurrency: opts.Concurrency,
		logger:      log.With(logger, "provider", "ors"),
	}

	return provider, nil
}
