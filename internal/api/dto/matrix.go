package dto

import "travel-matrix-service/internal/domain"

type DestinationDTO struct {
	Company string `json:"company"`
	Address string `json:"address"`
}

type ListDestinationsResponse struct {
	Destinations []DestinationDTO `json:"destinations"`
}

// MatrixRequest asks for a travel matrix. An empty origin falls back to the
// server default; omitted destinations fall back to the configured list.
type MatrixRequest struct {
	Origin       string           `json:"origin"`
	Destinations []DestinationDTO `json:"destinations"`
}

// MatrixRowResponse holds one destination; Values follow Columns.
type MatrixRowResponse struct {
	Company string    `json:"company"`
	Address string    `json:"address"`
	Values  []float64 `json:"values"`
}

type MatrixResponse struct {
	Origin  string              `json:"origin"`
	Columns []string            `json:"columns"`
	Rows    []MatrixRowResponse `json:"rows"`
	// Row indexes holding the smallest value, per column; ties list every row.
	ColumnMinimums [][]int `json:"column_minimums"`
}

func FromDestinations(ds []domain.Destination) []DestinationDTO {
	out := make([]DestinationDTO, 0, len(ds))
	for _, d := range ds {
		out = append(out, DestinationDTO{Company: d.Company, Address: d.Address})
	}
	return out
}

func ToDestinations(ds []DestinationDTO) []domain.Destination {
	out := make([]domain.Destination, 0, len(ds))
	for _, d := range ds {
		out = append(out, domain.Destination{Company: d.Company, Address: d.Address})
	}
	return out
}

func FromResultTable(origin string, t domain.ResultTable) MatrixResponse {
	columns := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		columns = append(columns, c.Header)
	}

	rows := make([]MatrixRowResponse, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, MatrixRowResponse{Company: r.Company, Address: r.Address, Values: r.Values})
	}

	return MatrixResponse{
		Origin:         origin,
		Columns:        columns,
		Rows:           rows,
		ColumnMinimums: t.ColumnMinimums(),
	}
}
