package addressbook

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"travel-matrix-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Format is the tabular encoding of an address book.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Header aliases, compared case-insensitively.
var (
	companyHeaders = []string{"unternehmen", "company"}
	addressHeaders = []string{"adresse_lang", "address"}
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported address book format %q", filepath.Ext(path))
	}
}

// Load parses destinations from r. Output order is row order.
func Load(r io.Reader, format Format) ([]domain.Destination, error) {
	var (
		records [][]string
		err     error
	)

	switch format {
	case FormatXLSX:
		records, err = readXLSX(r)
	case FormatCSV:
		records, err = readCSV(r)
	default:
		return nil, fmt.Errorf("unsupported address book format %q", format)
	}
	if err != nil {
		return nil, err
	}

	return parseRecords(records)
}

// LoadFile opens path and parses it according to its extension.
func LoadFile(path string) ([]domain.Destination, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open address book: %w", err)
	}
	defer f.Close()

	dests, err := Load(f, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return dests, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &domain.MalformedInputError{Reason: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &domain.MalformedInputError{Reason: pe.Error()}
		}
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return records, nil
}

func parseRecords(records [][]string) ([]domain.Destination, error) {
	if len(records) == 0 {
		return nil, &domain.MalformedInputError{Reason: "address book has no header row"}
	}

	header := records[0]
	companyCol := findColumn(header, companyHeaders)
	if companyCol < 0 {
		return nil, &domain.MalformedInputError{Reason: "missing company column (Unternehmen)"}
	}
	addressCol := findColumn(header, addressHeaders)
	if addressCol < 0 {
		return nil, &domain.MalformedInputError{Reason: "missing address column (Adresse_lang)"}
	}

	out := make([]domain.Destination, 0, len(records)-1)
	for i, rec := range records[1:] {
		if blank(rec) {
			continue
		}

		// Spreadsheet row number, header is row 1.
		row := i + 2
		company := strings.TrimSpace(cell(rec, companyCol))
		address := domain.NormalizeAddress(cell(rec, addressCol))

		if company == "" {
			return nil, &domain.MalformedInputError{Reason: fmt.Sprintf("row %d: empty company", row)}
		}
		if address == "" {
			return nil, &domain.MalformedInputError{Reason: fmt.Sprintf("row %d (%s): empty address", row, company)}
		}

		out = append(out, domain.Destination{Company: company, Address: address})
	}

	return out, nil
}

func findColumn(header []string, aliases []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for _, a := range aliases {
			if h == a {
				return i
			}
		}
	}
	return -1
}

func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}

func blank(rec []string) bool {
	for _, c := range rec {
		if domain.NormalizeAddress(c) != "" {
			return false
		}
	}
	return true
}

// FileSource reads destinations from an xlsx or csv file on every call.
type FileSource struct {
	Path string
}

func (s FileSource) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(s.Path)
}

// List is a fixed, in-memory destination source.
type List []domain.Destination

func (l List) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	out := make([]domain.Destination, len(l))
	copy(out, l)
	return out, nil
}
