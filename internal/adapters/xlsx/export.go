// Package xlsx writes filtered hotel subsets as a spreadsheet workbook.
package xlsx

import (
	"io"

	"github.com/xuri/excelize/v2"

	"hotel_insights/internal/domain"
)

const (
	ExportName = "filtered_hotels.xlsx"
	ExportMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	Sheet = "Hotels"
)

// Write emits one header row and one row per hotel. Numeric columns are
// stored as numbers; missing values leave the cell empty.
func Write(w io.Writer, columns []string, rows []domain.HotelRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", Sheet); err != nil {
		return err
	}
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(Sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(max(len(columns), 1))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(Sheet, "A", last, 18); err != nil {
		return err
	}

	for r, h := range rows {
		line := make([]any, len(columns))
		for i, c := range columns {
			line[i] = cellValue(h, c)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(Sheet, cell, &line); err != nil {
			return err
		}
	}
	_, err = f.WriteTo(w)
	return err
}

func cellValue(h domain.HotelRecord, col string) any {
	switch col {
	case domain.ColRooms:
		return intOrNil(h.Rooms)
	case domain.ColGrade:
		return intOrNil(h.Grade)
	case domain.ColLatitude:
		return floatOrNil(h.Lat)
	case domain.ColLongitude:
		return floatOrNil(h.Lon)
	}
	if v := h.Cell(col); v != "" {
		return v
	}
	return nil
}

func intOrNil(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func floatOrNil(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
