package distance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"travel-matrix-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBing(t *testing.T, h http.Handler) *BingTransitRouter {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	r, err := NewBingTransitRouter("bing-key", srv.URL, 2*time.Second, nil)
	require.NoError(t, err)
	return r
}

func TestNewBingTransitRouterRequiresKey(t *testing.T) {
	_, err := NewBingTransitRouter(" ", "", 0, nil)
	assert.Error(t, err)
}

func TestComputePairSendsFixedParameters(t *testing.T) {
	r := newTestBing(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		assert.Equal(t, "/REST/v1/Routes/Transit", req.URL.Path)
		assert.Equal(t, "Färbergraben 16, München", q.Get("wayPoint.1"))
		assert.Equal(t, "Marienplatz 1, München", q.Get("wayPoint.2"))
		assert.Equal(t, "time", q.Get("optimize"))
		assert.Equal(t, "Arrival", q.Get("timeType"))
		assert.Equal(t, "09:00:00", q.Get("dateTime"))
		assert.Equal(t, "Kilometer", q.Get("distanceUnit"))
		assert.Equal(t, "bing-key", q.Get("key"))

		fmt.Fprint(w, `{"resourceSets":[{"resources":[{"travelDuration":90,"travelDistance":1.504}]}]}`)
	}))

	edge, err := r.ComputePair(context.Background(), domain.Transit, "Färbergraben 16, München", "Marienplatz\u00a01, München")
	require.NoError(t, err)
	assert.Equal(t, domain.TravelEdge{DurationMinutes: 1.5, DistanceKilometers: 1.5}, edge)
}

func TestComputePairFailures(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
	}{
		{"no resource sets", `{"resourceSets":[]}`, http.StatusOK},
		{"no resources", `{"resourceSets":[{"resources":[]}]}`, http.StatusOK},
		{"missing duration", `{"resourceSets":[{"resources":[{"travelDistance":1}]}]}`, http.StatusOK},
		{"missing distance", `{"resourceSets":[{"resources":[{"travelDuration":60}]}]}`, http.StatusOK},
		{"bad request", `{"errorDetails":["no route"]}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestBing(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(tc.code)
				fmt.Fprint(w, tc.body)
			}))

			_, err := r.ComputePair(context.Background(), domain.Transit, "A", "B")

			var re *domain.RoutingProviderError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, domain.Transit, re.Profile)
		})
	}
}

func TestComputePairRejectsMatrixProfile(t *testing.T) {
	r := newTestBing(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		t.Error("no request expected")
	}))

	_, err := r.ComputePair(context.Background(), domain.Car, "A", "B")

	var re *domain.RoutingProviderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, domain.Car, re.Profile)
}

func TestComputePairTransportErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}))
	base := srv.URL
	srv.Close()

	r, err := NewBingTransitRouter("secret-key", base, time.Second, nil)
	require.NoError(t, err)

	_, err = r.ComputePair(context.Background(), domain.Transit, "A", "B")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-key")
}
