package api

import (
	"net/http"
	"travel-matrix-service/internal/api/endpoints"
	"travel-matrix-service/internal/api/handlers"
	"travel-matrix-service/internal/api/transport"
	"travel-matrix-service/internal/ports"

	"github.com/go-kit/log"
	"github.com/gorilla/mux"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	builder ports.TravelMatrixBuilder,
	source ports.DestinationSource,
	defaultOrigin string,
	logger log.Logger,
) http.Handler {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	r := mux.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware(logger))

	destHandler := &handlers.DestinationHandler{Source: source, Logger: logger}
	set := endpoints.NewEndpointSet(builder, source, defaultOrigin)

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/destinations", destHandler.List).Methods(http.MethodGet)
	r.Handle("/matrix", transport.NewMatrixHandler(set, logger)).Methods(http.MethodPost)
	r.Handle("/matrix/export", transport.NewExportHandler(set, logger)).Methods(http.MethodPost)

	return r
}
