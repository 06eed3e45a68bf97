package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"travel-matrix-service/internal/adapters/report"
	"travel-matrix-service/internal/api/dto"
	"travel-matrix-service/internal/api/endpoints"
	"travel-matrix-service/internal/domain"

	kittransport "github.com/go-kit/kit/transport"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Request bodies above this size are rejected.
const maxBodyBytes = 1 << 20

func serverOptions(logger log.Logger) []httptransport.ServerOption {
	return []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(encodeError),
		httptransport.ServerErrorHandler(kittransport.NewLogErrorHandler(log.With(logger, "component", "transport"))),
	}
}

// NewMatrixHandler serves POST /matrix as JSON.
func NewMatrixHandler(ep endpoints.Set, logger log.Logger) http.Handler {
	return httptransport.NewServer(
		ep.MatrixEndpoint,
		decodeMatrixRequest,
		encodeMatrixResponse,
		serverOptions(logger)...,
	)
}

// NewExportHandler serves POST /matrix/export as an xlsx attachment.
func NewExportHandler(ep endpoints.Set, logger log.Logger) http.Handler {
	return httptransport.NewServer(
		ep.ExportEndpoint,
		decodeMatrixRequest,
		encodeExportResponse,
		serverOptions(logger)...,
	)
}

func decodeMatrixRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req dto.MatrixRequest

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return nil, &domain.MalformedInputError{Reason: "invalid json body"}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, &domain.MalformedInputError{Reason: "body must contain only one JSON object"}
	}

	return endpoints.MatrixRequest{
		Origin:       req.Origin,
		Destinations: dto.ToDestinations(req.Destinations),
	}, nil
}

func encodeMatrixResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	res, ok := response.(endpoints.MatrixResponse)
	if !ok {
		return errors.New("encode matrix response: unexpected response type")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(dto.FromResultTable(res.Origin, res.Table))
}

func encodeExportResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	res, ok := response.(endpoints.MatrixResponse)
	if !ok {
		return errors.New("encode export response: unexpected response type")
	}

	// Render fully before touching headers so a failure can still become an error status.
	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, res.Table); err != nil {
		return err
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": report.ExportFilename(res.Origin),
	}))
	_, err := buf.WriteTo(w)
	return err
}

// StatusFor maps pipeline errors to HTTP status codes. Errors of the
// server's own destination source are internal whatever they wrap.
func StatusFor(err error) int {
	var (
		source    *endpoints.SourceError
		malformed *domain.MalformedInputError
		geocoding *domain.GeocodingError
		routing   *domain.RoutingProviderError
	)

	switch {
	case errors.As(err, &source):
		return http.StatusInternalServerError
	case errors.As(err, &malformed):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &geocoding):
		return http.StatusUnprocessableEntity
	case errors.As(err, &routing):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	status := StatusFor(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": msg,
	})
}
