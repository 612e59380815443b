package app

import (
	"fmt"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"hotel_insights/internal/domain"
)

// Describe builds the descriptive statistics table: one row per dataset
// column with its non-missing count followed by gota's Describe statistics.
func Describe(ds *domain.Dataset) (domain.Summary, error) {
	cols := ds.Columns()
	counts := make([]int, len(cols))
	records := make([][]string, 0, ds.Len()+1)
	records = append(records, cols)
	for i := 0; i < ds.Len(); i++ {
		h := ds.At(i)
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = h.Cell(c)
			if row[j] != "" {
				counts[j]++
			}
		}
		records = append(records, row)
	}

	if ds.Len() == 0 {
		out := domain.Summary{Stats: []string{"count"}}
		for _, c := range cols {
			out.Rows = append(out.Rows, []string{c, "0"})
		}
		return out, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.WithTypes(columnTypes(cols)),
		dataframe.NaNValues([]string{"", "NA", "NaN"}),
	)
	if df.Err != nil {
		return domain.Summary{}, fmt.Errorf("load dataframe: %w", df.Err)
	}
	desc := df.Describe()
	if desc.Err != nil {
		return domain.Summary{}, fmt.Errorf("describe: %w", desc.Err)
	}

	// desc.Records(): header row is ["column", cols...], then one row per statistic
	table := desc.Records()
	out := domain.Summary{Stats: []string{"count"}}
	for _, r := range table[1:] {
		out.Stats = append(out.Stats, r[0])
	}
	for j := 1; j < len(table[0]); j++ {
		row := []string{table[0][j], strconv.Itoa(counts[j-1])}
		for _, r := range table[1:] {
			row = append(row, r[j])
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func columnTypes(cols []string) map[string]series.Type {
	types := make(map[string]series.Type, len(cols))
	for _, c := range cols {
		switch c {
		case domain.ColRooms, domain.ColGrade:
			types[c] = series.Int
		case domain.ColLatitude, domain.ColLongitude:
			types[c] = series.Float
		default:
			types[c] = series.String
		}
	}
	return types
}
