package csvfile

import (
	"encoding/csv"
	"io"

	"hotel_insights/internal/domain"
)

const (
	ExportName = "filtered_hotels.csv"
	ExportMIME = "text/csv"
)

// Write serializes rows under the given header. No index column is written.
func Write(w io.Writer, columns []string, rows []domain.HotelRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	line := make([]string, len(columns))
	for _, r := range rows {
		for i, c := range columns {
			line[i] = r.Cell(c)
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSelection exports a selection with its dataset's header.
func WriteSelection(w io.Writer, sel domain.Selection) error {
	return Write(w, sel.Dataset().Columns(), sel.Records())
}
