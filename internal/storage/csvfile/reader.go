// Package csvfile loads the classified hotels file and writes filtered subsets back out.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_insights/internal/domain"
)

// Source reads the dataset from a file on disk.
type Source struct{ Path string }

func New(path string) *Source { return &Source{Path: path} }

func (s *Source) Load(_ context.Context) (*domain.Dataset, error) {
	ds, err := ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("path", s.Path).
		Int("records", ds.Len()).
		Bool("coordinates", ds.Has(domain.CapCoordinates)).
		Bool("hotel_type", ds.Has(domain.CapHotelType)).
		Bool("size_category", ds.Has(domain.CapSizeCategory)).
		Msg("dataset loaded")
	return ds, nil
}

func ReadFile(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingFile, path)
		}
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a header row followed by records. The misspelled longitude
// header is renamed; missing required headers yield *domain.MissingColumnsError.
func Parse(r io.Reader) (*domain.Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// short rows load with the trailing fields missing
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &domain.MissingColumnsError{Columns: domain.RequiredColumns}
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := normalizeHeader(header)
	if missing := missingRequired(cols); len(missing) > 0 {
		return nil, &domain.MissingColumnsError{Columns: missing}
	}

	var recs []domain.HotelRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(recs)+1, err)
		}
		if len(row) > len(cols) {
			return nil, fmt.Errorf("read row %d: %d fields, header has %d", len(recs)+1, len(row), len(cols))
		}
		recs = append(recs, decodeRow(cols, row))
	}
	return domain.NewDataset(cols, recs), nil
}

func normalizeHeader(h []string) []string {
	out := make([]string, len(h))
	for i, c := range h {
		c = strings.TrimSpace(c)
		if i == 0 {
			c = strings.TrimPrefix(c, "\ufeff")
		}
		if c == domain.LegacyLongitude {
			c = domain.ColLongitude
		}
		out[i] = c
	}
	return out
}

func missingRequired(cols []string) []string {
	have := make(map[string]bool, len(cols))
	for _, c := range cols {
		have[c] = true
	}
	var missing []string
	for _, c := range domain.RequiredColumns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

func decodeRow(cols, row []string) domain.HotelRecord {
	var h domain.HotelRecord
	for i, col := range cols {
		if i >= len(row) {
			break
		}
		v := strings.TrimSpace(row[i])
		switch col {
		case domain.ColName:
			h.Name = v
		case domain.ColDistrict:
			h.District = v
		case domain.ColAddress:
			h.Address = v
		case domain.ColRegion:
			h.Region = v
		case domain.ColRooms:
			h.Rooms = parseRooms(v)
		case domain.ColGrade:
			h.Grade = parseInt(v)
		case domain.ColLatitude:
			h.Lat = parseFloat(v)
		case domain.ColLongitude:
			h.Lon = parseFloat(v)
		case domain.ColHotelType:
			h.HotelType = optStr(v)
		case domain.ColSizeCategory:
			h.SizeCategory = optStr(v)
		default:
			if h.Extra == nil {
				h.Extra = map[string]string{}
			}
			h.Extra[col] = v
		}
	}
	return h
}

// parseInt accepts "12" and integral floats such as "12.0"; anything else is missing.
func parseInt(s string) *int {
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f != math.Trunc(f) {
		return nil
	}
	n := int(f)
	return &n
}

// parseRooms drops negative counts.
func parseRooms(s string) *int {
	n := parseInt(s)
	if n != nil && *n < 0 {
		return nil
	}
	return n
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return nil
	}
	return &f
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
