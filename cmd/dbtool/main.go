package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"travel-matrix-service/internal/adapters/addressbook"
	"travel-matrix-service/internal/app"
	"travel-matrix-service/internal/config"
	"travel-matrix-service/internal/platform/obs"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// dbtool creates the destinations table and replaces its contents with the
// rows of an xlsx or csv address book.
func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	seedPath := flag.String("seed", "", "address book to load (defaults to destinations.path)")
	initOnly := flag.Bool("init-only", false, "create the schema without seeding")
	flag.Parse()

	found, envErr := config.LoadDotEnv()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := obs.NewLogger(os.Stderr, cfg.Log.Level)
	if envErr != nil {
		level.Warn(logger).Log("msg", "could not read .env", "err", envErr)
	} else if !found {
		level.Info(logger).Log("msg", "no .env file found (using environment variables)")
	}

	path := *seedPath
	if path == "" {
		path = cfg.Destinations.Path
	}

	if err := initAndSeed(context.Background(), cfg, path, *initOnly, logger); err != nil {
		level.Error(logger).Log("msg", "dbtool failed", "err", err)
		os.Exit(1)
	}
}

func initAndSeed(ctx context.Context, cfg *config.Config, seedPath string, initOnly bool, logger log.Logger) error {
	level.Info(logger).Log("msg", "initializing database schema")
	repo, conn, err := app.OpenRepository(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	defer conn.Close()
	level.Info(logger).Log("msg", "schema ready")

	if initOnly {
		return nil
	}

	destinations, err := addressbook.LoadFile(seedPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	level.Info(logger).Log("msg", "seeding destinations", "path", seedPath, "count", len(destinations))
	if err := repo.ReplaceDestinations(ctx, destinations); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	level.Info(logger).Log("msg", "seeding complete")

	return nil
}
