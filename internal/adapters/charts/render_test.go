package charts_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_insights/internal/adapters/charts"
	"hotel_insights/internal/domain"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRenderPNG_AllKinds(t *testing.T) {
	specs := []domain.ChartSpec{
		{Insight: domain.InsightRegion, Kind: domain.ChartBar, Title: "bar",
			Labels: []string{"Western", "Central"}, Values: []float64{5, 3}},
		{Insight: domain.InsightType, Kind: domain.ChartHBar, Title: "hbar",
			Labels: []string{"Resort", "City"}, Values: []float64{2, 1}},
		{Insight: domain.InsightGrade, Kind: domain.ChartPie, Title: "pie",
			Labels: []string{"3", "4", "5"}, Values: []float64{2, 2, 1}},
		{Insight: domain.InsightGradeBySize, Kind: domain.ChartBox, Title: "box",
			Groups: []domain.ValueGroup{{Label: "Small", Values: []float64{3, 4, 5}}, {Label: "Large", Values: []float64{1, 3, 3}}}},
		{Insight: domain.InsightGradeRooms, Kind: domain.ChartLine, Title: "line",
			Points: []domain.XY{{X: 1, Y: 10}, {X: 2, Y: 20}}},
		{Insight: domain.InsightGradeRooms, Kind: domain.ChartScatter, Title: "scatter",
			Points: []domain.XY{{X: 1, Y: 10, Group: "1"}, {X: 2, Y: 25, Group: "2"}},
			Trend:  &domain.Trendline{Intercept: -5, Slope: 15}},
		{Insight: domain.InsightMap, Kind: domain.ChartGeo, Title: "geo",
			Points: []domain.XY{{X: 79.8, Y: 6.9, Group: "5"}, {X: 80.6, Y: 7.3, Group: "2"}}},
	}
	r := charts.New()
	for _, spec := range specs {
		t.Run(spec.Title, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.RenderPNG(&buf, spec))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestRenderPNG_UnknownKind(t *testing.T) {
	var buf bytes.Buffer
	err := charts.New().RenderPNG(&buf, domain.ChartSpec{Kind: "radar"})

	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
