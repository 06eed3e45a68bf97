package domain

// Metric selects which part of a TravelEdge a column shows.
type Metric int

const (
	Duration Metric = iota + 1
	Distance
)

// Column is one numeric column of the result table.
type Column struct {
	Header  string
	Profile TransportProfile
	Metric  Metric
}

// ResultColumns is the column layout shown to users and exported.
// Transit distance is computed but not shown.
var ResultColumns = []Column{
	{Header: "Duration Cycling (min)", Profile: Bike, Metric: Duration},
	{Header: "Duration Transit (min)", Profile: Transit, Metric: Duration},
	{Header: "Duration Car (min)", Profile: Car, Metric: Duration},
	{Header: "Distance Cycling (km)", Profile: Bike, Metric: Distance},
	{Header: "Distance Car (km)", Profile: Car, Metric: Distance},
}

// TableRow is one destination with its values in ResultColumns order.
type TableRow struct {
	Company string
	Address string
	Values  []float64
}

// ResultTable is the tabular view of a TravelMatrix.
type ResultTable struct {
	Columns []Column
	Rows    []TableRow
}

// NewResultTable flattens a matrix into the ResultColumns layout.
func NewResultTable(m TravelMatrix) ResultTable {
	rows := make([]TableRow, 0, len(m.Rows))
	for _, r := range m.Rows {
		values := make([]float64, 0, len(ResultColumns))
		for _, c := range ResultColumns {
			e := r.Edges[c.Profile]
			if c.Metric == Duration {
				values = append(values, e.DurationMinutes)
			} else {
				values = append(values, e.DistanceKilometers)
			}
		}
		rows = append(rows, TableRow{
			Company: r.Destination.Company,
			Address: r.Destination.Address,
			Values:  values,
		})
	}

	return ResultTable{Columns: ResultColumns, Rows: rows}
}

// Headers returns all column headers including company and address, named
// as in the source address book.
func (t ResultTable) Headers() []string {
	out := make([]string, 0, 2+len(t.Columns))
	out = append(out, "Unternehmen", "Adresse")
	for _, c := range t.Columns {
		out = append(out, c.Header)
	}
	return out
}

// ColumnMinimums returns, for every numeric column, the indexes of all rows
// holding the smallest value. Ties are all reported; an empty table yields
// an empty list per column.
func (t ResultTable) ColumnMinimums() [][]int {
	out := make([][]int, len(t.Columns))
	for ci := range t.Columns {
		out[ci] = []int{}
		for ri, r := range t.Rows {
			if ci >= len(r.Values) {
				continue
			}
			switch {
			case len(out[ci]) == 0:
				out[ci] = append(out[ci], ri)
			case r.Values[ci] < t.Rows[out[ci][0]].Values[ci]:
				out[ci] = append(out[ci][:0], ri)
			case r.Values[ci] == t.Rows[out[ci][0]].Values[ci]:
				out[ci] = append(out[ci], ri)
			}
		}
	}
	return out
}

// MinimumMask reports, per row and numeric column, whether the cell holds
// its column's minimum.
func (t ResultTable) MinimumMask() [][]bool {
	mask := make([][]bool, len(t.Rows))
	for ri := range mask {
		mask[ri] = make([]bool, len(t.Columns))
	}
	for ci, rows := range t.ColumnMinimums() {
		for _, ri := range rows {
			mask[ri][ci] = true
		}
	}
	return mask
}
