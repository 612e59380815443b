package app

import (
	"fmt"
	"strconv"

	"hotel_insights/internal/domain"
)

// SkippedError is returned for a chart whose insight was not computed.
type SkippedError struct {
	Insight domain.Insight
	Reason  string
}

func (e *SkippedError) Error() string { return fmt.Sprintf("insight %s skipped: %s", e.Insight, e.Reason) }

// ParseInsight accepts the chartable insight keys.
func ParseInsight(s string) (domain.Insight, error) {
	for _, i := range domain.Insights {
		if string(i) == s && i != domain.InsightExplore {
			return i, nil
		}
	}
	return "", fmt.Errorf("insight %q: %w", s, domain.ErrNotFound)
}

// Charts maps every computed insight of r to its chart, in presentation order.
func Charts(r domain.Report, style domain.ChartStyle) []domain.ChartSpec {
	var out []domain.ChartSpec
	for _, i := range domain.Insights {
		if c, err := ChartFor(r, i, style); err == nil {
			out = append(out, c)
		}
	}
	return out
}

// ChartFor builds the chart of one insight.
func ChartFor(r domain.Report, i domain.Insight, style domain.ChartStyle) (domain.ChartSpec, error) {
	if i == domain.InsightExplore {
		return domain.ChartSpec{}, fmt.Errorf("insight %q has no chart: %w", i, domain.ErrNotFound)
	}
	if r.Empty {
		return domain.ChartSpec{}, &SkippedError{Insight: i, Reason: r.Warning}
	}
	if why, ok := r.SkipReason(i); ok {
		return domain.ChartSpec{}, &SkippedError{Insight: i, Reason: why}
	}

	switch i {
	case domain.InsightRegion:
		return countChart(i, domain.ChartBar, "Number of Hotels by Province", "Region", "Count", r.ByRegion), nil
	case domain.InsightGrade:
		return countChart(i, domain.ChartPie, "Distribution of Hotel Star Ratings", "Grade", "Count", r.ByGrade), nil
	case domain.InsightType:
		return countChart(i, domain.ChartHBar, "Hotel Types in Sri Lanka", "Count", "Hotel Type", r.ByType), nil
	case domain.InsightDistricts:
		return countChart(i, domain.ChartBar, "Top 10 Districts with Most Hotels", "District", "Count", r.TopDistricts), nil
	case domain.InsightSize:
		return countChart(i, domain.ChartBar, "Hotel Size Category Distribution", "Size Category", "Count", r.BySize), nil
	case domain.InsightGradeBySize:
		c := domain.ChartSpec{Insight: i, Kind: domain.ChartBox, Title: "Grade Distribution by Hotel Size",
			XLabel: "Hotel_Size_Category", YLabel: "Grade"}
		for _, b := range r.GradeBySize {
			c.Groups = append(c.Groups, domain.ValueGroup{Label: b.Category, Values: b.Values})
		}
		return c, nil
	case domain.InsightGradeRooms:
		if style == domain.StyleScatter {
			c := domain.ChartSpec{Insight: i, Kind: domain.ChartScatter, Title: "Do Higher-Graded Hotels Have More Rooms?",
				XLabel: "Grade", YLabel: "Rooms", Trend: r.Trend}
			for _, p := range r.GradePoints {
				c.Points = append(c.Points, domain.XY{X: float64(p.Grade), Y: float64(p.Rooms), Group: strconv.Itoa(p.Grade)})
			}
			return c, nil
		}
		c := domain.ChartSpec{Insight: i, Kind: domain.ChartLine, Title: "Average Rooms per Grade Category",
			XLabel: "Grade", YLabel: "Rooms"}
		for _, g := range r.RoomsByGrade {
			c.Points = append(c.Points, domain.XY{X: float64(g.Grade), Y: g.AvgRooms})
		}
		return c, nil
	case domain.InsightMap:
		c := domain.ChartSpec{Insight: i, Kind: domain.ChartGeo, Title: "Geographical Distribution of Hotels",
			XLabel: "Longitude", YLabel: "Latitude"}
		for _, p := range r.Map {
			grp := ""
			if p.Grade != nil {
				grp = strconv.Itoa(*p.Grade)
			}
			c.Points = append(c.Points, domain.XY{X: p.Lon, Y: p.Lat, Group: grp})
		}
		return c, nil
	}
	return domain.ChartSpec{}, fmt.Errorf("insight %q: %w", i, domain.ErrNotFound)
}

func countChart(i domain.Insight, kind domain.ChartKind, title, x, y string, cs []domain.Count) domain.ChartSpec {
	c := domain.ChartSpec{Insight: i, Kind: kind, Title: title, XLabel: x, YLabel: y}
	for _, v := range cs {
		c.Labels = append(c.Labels, v.Label)
		c.Values = append(c.Values, float64(v.Count))
	}
	return c
}
