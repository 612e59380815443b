package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_insights/internal/app"
	"hotel_insights/internal/domain"
)

func TestDescribe(t *testing.T) {
	ds := colomboKandy()

	sum, err := app.Describe(ds)
	require.NoError(t, err)

	require.NotEmpty(t, sum.Stats)
	assert.Equal(t, "count", sum.Stats[0])
	require.Len(t, sum.Rows, len(ds.Columns()))
	for i, row := range sum.Rows {
		assert.Equal(t, ds.Columns()[i], row[0])
		assert.Len(t, row, len(sum.Stats)+1)
	}

	byName := map[string][]string{}
	for _, row := range sum.Rows {
		byName[row[0]] = row
	}
	assert.Equal(t, "8", byName[domain.ColRooms][1])
	assert.Equal(t, "3", byName[domain.ColLatitude][1])
	assert.Equal(t, "0", byName[domain.ColHotelType][1])
}

func TestDescribe_EmptyDataset(t *testing.T) {
	sum, err := app.Describe(domain.NewDataset(domain.RequiredColumns, nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"count"}, sum.Stats)
	assert.Len(t, sum.Rows, len(domain.RequiredColumns))
}
