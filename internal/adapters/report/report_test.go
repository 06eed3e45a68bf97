package report

import (
	"bytes"
	"strings"
	"testing"
	"travel-matrix-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() domain.ResultTable {
	return domain.NewResultTable(domain.TravelMatrix{Rows: []domain.TravelRow{
		{
			Destination: domain.Destination{Company: "Co1", Address: "B"},
			Edges: map[domain.TransportProfile]domain.TravelEdge{
				domain.Bike:    {DurationMinutes: 12.5, DistanceKilometers: 3.1},
				domain.Car:     {DurationMinutes: 9, DistanceKilometers: 4.2},
				domain.Transit: {DurationMinutes: 20, DistanceKilometers: 3.5},
			},
		},
		{
			Destination: domain.Destination{Company: "Co2", Address: "C"},
			Edges: map[domain.TransportProfile]domain.TravelEdge{
				domain.Bike:    {DurationMinutes: 8.25, DistanceKilometers: 2.4},
				domain.Car:     {DurationMinutes: 11, DistanceKilometers: 2.9},
				domain.Transit: {DurationMinutes: 25, DistanceKilometers: 2},
			},
		},
	}})
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "distance matrix Färbergraben 16, München.xlsx", ExportFilename(" Färbergraben 16, München "))
	assert.Equal(t, "distance matrix a-b.xlsx", ExportFilename("a/b"))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleTable()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Unternehmen", "Adresse"}, rows[0][:2])
	assert.Equal(t, sampleTable().Headers(), rows[0])
	assert.Equal(t, []string{"Co1", "B", "12.5", "20", "9", "3.1", "4.2"}, rows[1])
	assert.Equal(t, []string{"Co2", "C", "8.25", "25", "11", "2.4", "2.9"}, rows[2])

	// Minimums: bike duration row 2, transit row 1, car row 1, bike distance row 2, car distance row 2.
	highlighted := []string{"C3", "D2", "E2", "F3", "G3"}
	plain := []string{"C2", "D3", "E3", "F2", "G2", "A2", "B3"}

	for _, c := range highlighted {
		id, err := f.GetCellStyle(sheetName, c)
		require.NoError(t, err)
		assert.NotZero(t, id, c)
	}
	for _, c := range plain {
		id, err := f.GetCellStyle(sheetName, c)
		require.NoError(t, err)
		assert.Zero(t, id, c)
	}
}

func TestWriteXLSXHighlightsEveryTiedMinimum(t *testing.T) {
	same := map[domain.TransportProfile]domain.TravelEdge{
		domain.Bike:    {DurationMinutes: 5, DistanceKilometers: 1},
		domain.Car:     {DurationMinutes: 5, DistanceKilometers: 1},
		domain.Transit: {DurationMinutes: 5, DistanceKilometers: 1},
	}
	table := domain.NewResultTable(domain.TravelMatrix{Rows: []domain.TravelRow{
		{Destination: domain.Destination{Company: "Co1", Address: "B"}, Edges: same},
		{Destination: domain.Destination{Company: "Co2", Address: "B"}, Edges: same},
	}})

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, table))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	for _, c := range []string{"C2", "C3", "D2", "D3", "E2", "E3", "F2", "F3", "G2", "G3"} {
		id, err := f.GetCellStyle(sheetName, c)
		require.NoError(t, err)
		assert.NotZero(t, id, c)
	}
}

func TestWriteXLSXEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, domain.NewResultTable(domain.TravelMatrix{})))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(sampleTable())

	for _, want := range []string{"Unternehmen", "Duration Transit (min)", "Distance Car (km)", "Co1", "Co2", "12.50", "8.25", "2.90"} {
		assert.True(t, strings.Contains(out, want), "missing %q in\n%s", want, out)
	}
	assert.NotContains(t, out, "Distance Transit")
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "0.01", FormatValue(0.01))
	assert.Equal(t, "2.00", FormatValue(2))
}
