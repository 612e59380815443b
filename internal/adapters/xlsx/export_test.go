package xlsx_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hotel_insights/internal/adapters/xlsx"
	"hotel_insights/internal/domain"
)

func TestWrite(t *testing.T) {
	rooms, grade := 156, 5
	rows := []domain.HotelRecord{
		{Name: "Galle Face Hotel", District: "Colombo", Address: "2 Galle Road", Region: "Western", Rooms: &rooms, Grade: &grade},
		{Name: "Hill Lodge", District: "Kandy", Address: "Peradeniya Rd", Region: "Central"},
	}

	var buf bytes.Buffer
	require.NoError(t, xlsx.Write(&buf, domain.StandardColumns, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(xlsx.Sheet)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, domain.StandardColumns, got[0])
	require.GreaterOrEqual(t, len(got[1]), 6)
	assert.Equal(t, []string{"Galle Face Hotel", "Colombo", "2 Galle Road", "156", "5", "Western"}, got[1][:6])
	assert.Equal(t, "Hill Lodge", got[2][0])
}
