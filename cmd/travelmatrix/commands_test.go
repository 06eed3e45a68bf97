package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"travel-matrix-service/internal/adapters/distance"
	"travel-matrix-service/internal/config"
	"travel-matrix-service/internal/domain"
	"travel-matrix-service/internal/services"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeCSV(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "destinations.csv")
	require.NoError(t, os.WriteFile(path, []byte("Unternehmen,Adresse_lang\nCo1,B\nCo2,C\n"), 0o600))
	return path
}

func mockBuilder() *services.TravelMatrixBuilder {
	geocoder := distance.NewMockGeocoder(map[string]domain.Coordinates{
		"A": {Lon: 0, Lat: 0},
		"B": {Lon: 1, Lat: 1},
		"C": {Lon: 2, Lat: 2},
	})
	matrix := distance.NewMockMatrixRouter(map[domain.TransportProfile][]domain.TravelEdge{
		domain.Bike: {{DurationMinutes: 1, DistanceKilometers: 1}, {DurationMinutes: 2, DistanceKilometers: 2}},
		domain.Car:  {{DurationMinutes: 1, DistanceKilometers: 1}, {DurationMinutes: 2, DistanceKilometers: 2}},
	})
	pairs := distance.NewMockPairRouter(map[string]domain.TravelEdge{
		"B": {DurationMinutes: 1.5, DistanceKilometers: 1.5},
		"C": {DurationMinutes: 2.5, DistanceKilometers: 3},
	})
	return services.NewTravelMatrixBuilder(geocoder, matrix, pairs, 0, nil)
}

func testEnv(t *testing.T) *env {
	t.Helper()

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Database.URL = ""
	return &env{cfg: cfg, logger: log.NewNopLogger()}
}

func TestComputePrintsAndExports(t *testing.T) {
	outDir := t.TempDir()
	opts := &options{origin: "A", destinations: writeCSV(t), out: outDir}

	var stdout bytes.Buffer
	require.NoError(t, compute(context.Background(), testEnv(t), opts, mockBuilder(), &stdout))

	out := stdout.String()
	assert.Contains(t, out, "Travel matrix from A")
	assert.Contains(t, out, "Co1")
	assert.Contains(t, out, "2.50")

	path := filepath.Join(outDir, "distance matrix A.xlsx")
	assert.Contains(t, out, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Co2", "C", "2", "2.5", "2", "2", "2"}, rows[2])
}

func TestComputeGeocodingFailure(t *testing.T) {
	opts := &options{origin: "Nowhere", destinations: writeCSV(t)}

	var stdout bytes.Buffer
	err := compute(context.Background(), testEnv(t), opts, mockBuilder(), &stdout)

	var ge *domain.GeocodingError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "Nowhere", ge.Address)
	assert.Empty(t, stdout.String())
}

func TestExportPath(t *testing.T) {
	dir := t.TempDir()

	p, err := exportPath(dir, "A")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "distance matrix A.xlsx"), p)

	p, err = exportPath(filepath.Join(dir, "out.xlsx"), "A")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.xlsx"), p)
}

func TestDestinationsCommand(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	root := newRootCmd()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"destinations", "--destinations", writeCSV(t)})

	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, stdout.String(), "2 destinations")
	assert.Contains(t, stdout.String(), "Co2")
}

func TestComputeCommandRequiresCredentials(t *testing.T) {
	t.Setenv("ORS_API_KEY", "")
	t.Setenv("BING_API_KEY", "")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"compute", "--origin", "A", "--destinations", writeCSV(t)})

	err := root.ExecuteContext(context.Background())
	assert.EqualError(t, err, "ORS_API_KEY is required")
}
