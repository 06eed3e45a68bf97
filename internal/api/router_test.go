package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"travel-matrix-service/internal/adapters/addressbook"
	"travel-matrix-service/internal/api/dto"
	"travel-matrix-service/internal/domain"
	"travel-matrix-service/internal/platform/obs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeBuilder struct {
	mu           sync.Mutex
	origin       string
	destinations []domain.Destination
	reqID        string
	err          error
}

func (f *fakeBuilder) Build(ctx context.Context, origin string, destinations []domain.Destination) (domain.TravelMatrix, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.origin = origin
	f.destinations = destinations
	f.reqID, _ = ctx.Value(obs.RequestIDKey).(string)
	if f.err != nil {
		return domain.TravelMatrix{}, f.err
	}

	rows := make([]domain.TravelRow, 0, len(destinations))
	for i, d := range destinations {
		v := float64(len(destinations) - i)
		rows = append(rows, domain.TravelRow{
			Destination: d,
			Edges: map[domain.TransportProfile]domain.TravelEdge{
				domain.Bike:    {DurationMinutes: v, DistanceKilometers: v},
				domain.Car:     {DurationMinutes: v, DistanceKilometers: v},
				domain.Transit: {DurationMinutes: v, DistanceKilometers: v},
			},
		})
	}
	return domain.TravelMatrix{Rows: rows}, nil
}

var configured = addressbook.List{
	{Company: "Co1", Address: "B"},
	{Company: "Co2", Address: "C"},
	{Company: "Co3", Address: "D"},
}

func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := NewRouter(&fakeBuilder{}, configured, "A", nil)

	rec := serve(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	b := &fakeBuilder{}
	h := NewRouter(b, configured, "A", nil)

	req := httptest.NewRequest(http.MethodPost, "/matrix", strings.NewReader(`{}`))
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", b.reqID)
}

func TestListDestinations(t *testing.T) {
	h := NewRouter(&fakeBuilder{}, configured, "A", nil)

	rec := serve(t, h, http.MethodGet, "/destinations", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ListDestinationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []dto.DestinationDTO{
		{Company: "Co1", Address: "B"},
		{Company: "Co2", Address: "C"},
		{Company: "Co3", Address: "D"},
	}, res.Destinations)
}

func TestMatrixWithRequestDestinations(t *testing.T) {
	b := &fakeBuilder{}
	h := NewRouter(b, configured, "Default", nil)

	rec := serve(t, h, http.MethodPost, "/matrix",
		`{"origin":"A","destinations":[{"company":"X","address":"x"},{"company":"Y","address":"y"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "A", b.origin)
	assert.Equal(t, []domain.Destination{{Company: "X", Address: "x"}, {Company: "Y", Address: "y"}}, b.destinations)

	var res dto.MatrixResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "A", res.Origin)
	assert.Equal(t, []string{
		"Duration Cycling (min)", "Duration Transit (min)", "Duration Car (min)",
		"Distance Cycling (km)", "Distance Car (km)",
	}, res.Columns)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "X", res.Rows[0].Company)
	assert.Equal(t, []float64{2, 2, 2, 2, 2}, res.Rows[0].Values)
	assert.Equal(t, [][]int{{1}, {1}, {1}, {1}, {1}}, res.ColumnMinimums)
}

func TestMatrixDefaults(t *testing.T) {
	b := &fakeBuilder{}
	h := NewRouter(b, configured, "Färbergraben 16, München", nil)

	rec := serve(t, h, http.MethodPost, "/matrix", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "Färbergraben 16, München", b.origin)
	assert.Equal(t, []domain.Destination(configured), b.destinations)
}

func TestMatrixErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"unknown field", `{"hub":"A"}`, nil, http.StatusBadRequest},
		{"invalid json", `{"origin":`, nil, http.StatusBadRequest},
		{"trailing object", `{"origin":"A"}{}`, nil, http.StatusBadRequest},
		{"malformed input", `{"origin":"A"}`, &domain.MalformedInputError{Reason: "empty address"}, http.StatusBadRequest},
		{"geocoding", `{"origin":"A"}`, &domain.GeocodingError{Address: "B", Err: errors.New("no candidates")}, http.StatusUnprocessableEntity},
		{"routing", `{"origin":"A"}`, &domain.RoutingProviderError{Profile: domain.Transit, Err: errors.New("Code 500")}, http.StatusBadGateway},
		{"timeout", `{"origin":"A"}`, context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"internal", `{"origin":"A"}`, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewRouter(&fakeBuilder{err: tc.err}, configured, "A", nil)

			rec := serve(t, h, http.MethodPost, "/matrix", tc.body)
			assert.Equal(t, tc.status, rec.Code)

			var res map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.NotEmpty(t, res["error"])
			assert.NotContains(t, res["error"], "boom")
		})
	}
}

type failingSource struct{ err error }

func (f failingSource) ListDestinations(context.Context) ([]domain.Destination, error) {
	return nil, f.err
}

func TestMatrixConfiguredSourceErrorIsInternal(t *testing.T) {
	b := &fakeBuilder{}
	src := failingSource{err: &domain.MalformedInputError{Reason: "addresses.xlsx: row 3: empty address"}}
	h := NewRouter(b, src, "A", nil)

	rec := serve(t, h, http.MethodPost, "/matrix", `{"origin":"A"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var res map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "internal server error", res["error"])
	assert.Empty(t, b.origin, "builder must not run")

	// The same error kind in the request body stays the client's fault.
	rec = serve(t, h, http.MethodPost, "/matrix", `{"origin":"A","hub":"B"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestMatrixRejectsWrongMethod(t *testing.T) {
	h := NewRouter(&fakeBuilder{}, configured, "A", nil)

	rec := serve(t, h, http.MethodGet, "/matrix", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestExport(t *testing.T) {
	h := NewRouter(&fakeBuilder{}, configured, "A", nil)

	rec := serve(t, h, http.MethodPost, "/matrix/export", `{"origin":"Marienplatz 1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "distance matrix Marienplatz 1.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Unternehmen", rows[0][0])
	assert.Equal(t, "Co3", rows[3][0])
}
