package handlers

import (
	"net/http"
	"travel-matrix-service/internal/api/dto"
	"travel-matrix-service/internal/ports"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type DestinationHandler struct {
	Source ports.DestinationSource
	Logger log.Logger
}

// List returns the configured destination list in source order.
func (h *DestinationHandler) List(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.Source.ListDestinations(r.Context())
	if err != nil {
		level.Error(h.Logger).Log("msg", "list destinations failed", "err", err)
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDestinationsResponse{Destinations: dto.FromDestinations(destinations)}
	writeJSON(w, r, h.Logger, http.StatusOK, res)
}
