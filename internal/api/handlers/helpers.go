package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

func writeJSON(w http.ResponseWriter, r *http.Request, logger log.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && logger != nil {
		level.Warn(logger).Log("msg", "encode failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, logger log.Logger, status int, msg string) {
	writeJSON(w, r, logger, status, map[string]string{"error": msg})
}
