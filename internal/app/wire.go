package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"travel-matrix-service/internal/adapters/addressbook"
	"travel-matrix-service/internal/adapters/distance"
	"travel-matrix-service/internal/adapters/repositories"
	"travel-matrix-service/internal/config"
	"travel-matrix-service/internal/platform/db"
	"travel-matrix-service/internal/ports"
	"travel-matrix-service/internal/services"

	"github.com/go-kit/log"
)

// NewBuilder wires the OpenRouteService and Bing Maps adapters behind a
// TravelMatrixBuilder.
func NewBuilder(cfg *config.Config, logger log.Logger) (*services.TravelMatrixBuilder, error) {
	if err := cfg.RequireCredentials(); err != nil {
		return nil, err
	}

	ors, err := distance.NewORSProvider(distance.ORSOptions{
		APIKey:      cfg.ORS.APIKey,
		BaseURL:     cfg.ORS.BaseURL,
		Country:     cfg.Geocode.Country,
		Concurrency: cfg.Geocode.Concurrency,
		Timeout:     cfg.HTTP.Timeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("wire ors provider: %w", err)
	}

	bing, err := distance.NewBingTransitRouter(cfg.Bing.APIKey, cfg.Bing.BaseURL, cfg.HTTP.Timeout, logger)
	if err != nil {
		return nil, fmt.Errorf("wire bing router: %w", err)
	}

	return services.NewTravelMatrixBuilder(ors, ors, bing, cfg.HTTP.BuildTimeout, logger), nil
}

// OpenDestinationSource returns the SQL destination table when database.url
// is set and the address book file otherwise. The returned close func is
// always non-nil.
func OpenDestinationSource(ctx context.Context, cfg *config.Config, logger log.Logger) (ports.DestinationSource, func() error, error) {
	if strings.TrimSpace(cfg.Database.URL) == "" {
		return addressbook.FileSource{Path: cfg.Destinations.Path}, func() error { return nil }, nil
	}

	conn, err := db.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}

	if err := repositories.InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, err
	}

	return repositories.NewSQLDestinationRepository(conn, driverOf(cfg), logger), conn.Close, nil
}

// OpenRepository opens the configured database for seeding.
func OpenRepository(ctx context.Context, cfg *config.Config, logger log.Logger) (*repositories.SQLDestinationRepository, *sql.DB, error) {
	if strings.TrimSpace(cfg.Database.URL) == "" {
		return nil, nil, errors.New("DATABASE_URL is required")
	}

	conn, err := db.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}

	if err := repositories.InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, err
	}

	return repositories.NewSQLDestinationRepository(conn, driverOf(cfg), logger), conn, nil
}

func driverOf(cfg *config.Config) string {
	if cfg.Database.Driver == "" {
		return db.DriverPostgres
	}
	return cfg.Database.Driver
}
