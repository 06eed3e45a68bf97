package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"travel-matrix-service/internal/api"
	"travel-matrix-service/internal/app"
	"travel-matrix-service/internal/config"
	"travel-matrix-service/internal/platform/obs"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// main is the application composition root.
// It wires concrete adapters (ORS, Bing Maps, destination source) behind ports and starts the HTTP server.
func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	found, envErr := config.LoadDotEnv()

	cfg, err := config.Load(*configPath)
	if err != nil {
		level.Error(obs.NewLogger(os.Stderr, "info")).Log("msg", "load config", "err", err)
		os.Exit(1)
	}

	logger := obs.NewLogger(os.Stderr, cfg.Log.Level)
	if envErr != nil {
		level.Warn(logger).Log("msg", "could not read .env", "err", envErr)
	} else if !found {
		level.Info(logger).Log("msg", "no .env file found (using environment variables)")
	}

	if err := run(cfg, logger); err != nil {
		level.Error(logger).Log("msg", "server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	builder, err := app.NewBuilder(cfg, logger)
	if err != nil {
		return err
	}

	source, closeSource, err := app.OpenDestinationSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	router := api.NewRouter(builder, source, cfg.Origin.Default, logger)

	// The write timeout has to outlast a full matrix build.
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.HTTP.BuildTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		level.Info(logger).Log("msg", "server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	level.Info(logger).Log("msg", "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
