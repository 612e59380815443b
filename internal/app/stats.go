package app

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"hotel_insights/internal/domain"
)

// mean is 0 for an empty input instead of NaN.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := stat.Mean(xs, nil)
	if math.IsNaN(m) {
		return 0
	}
	return m
}

// round2 rounds exact halves to even.
func round2(v float64) float64 { return math.RoundToEven(v*100) / 100 }

func kpis(sel domain.Selection) domain.KPIs {
	var rooms, grades []float64
	for i := 0; i < sel.Len(); i++ {
		h := sel.At(i)
		if h.Rooms != nil {
			rooms = append(rooms, float64(*h.Rooms))
		}
		if h.Grade != nil {
			grades = append(grades, float64(*h.Grade))
		}
	}
	return domain.KPIs{
		TotalHotels: sel.Len(),
		AvgRooms:    mean(rooms),
		AvgGrade:    round2(mean(grades)),
	}
}

// countBy groups by key, skipping empty keys. Groups are ordered by
// descending count; equal counts keep first-seen order.
func countBy(sel domain.Selection, key func(domain.HotelRecord) string) []domain.Count {
	pos := map[string]int{}
	var out []domain.Count
	for i := 0; i < sel.Len(); i++ {
		k := key(sel.At(i))
		if k == "" {
			continue
		}
		if j, ok := pos[k]; ok {
			out[j].Count++
			continue
		}
		pos[k] = len(out)
		out = append(out, domain.Count{Label: k, Count: 1})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	return out
}

func topN(cs []domain.Count, n int) []domain.Count {
	if len(cs) > n {
		return cs[:n]
	}
	return cs
}

func gradeKey(h domain.HotelRecord) string {
	if h.Grade == nil {
		return ""
	}
	return strconv.Itoa(*h.Grade)
}

func strKey(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// boxSummaries computes grade statistics per size category, categories in first-seen order.
func boxSummaries(sel domain.Selection) []domain.BoxSummary {
	pos := map[string]int{}
	var cats []string
	var vals [][]float64
	for i := 0; i < sel.Len(); i++ {
		h := sel.At(i)
		if h.SizeCategory == nil || h.Grade == nil {
			continue
		}
		c := *h.SizeCategory
		j, ok := pos[c]
		if !ok {
			j = len(cats)
			pos[c] = j
			cats = append(cats, c)
			vals = append(vals, nil)
		}
		vals[j] = append(vals[j], float64(*h.Grade))
	}
	out := make([]domain.BoxSummary, 0, len(cats))
	for j, c := range cats {
		out = append(out, boxSummary(c, vals[j]))
	}
	return out
}

// boxSummary expects a non-empty xs. Quartiles use the empirical CDF.
func boxSummary(category string, xs []float64) domain.BoxSummary {
	sort.Float64s(xs)
	b := domain.BoxSummary{
		Category: category,
		N:        len(xs),
		Min:      xs[0],
		Max:      xs[len(xs)-1],
		Q1:       stat.Quantile(0.25, stat.Empirical, xs, nil),
		Median:   stat.Quantile(0.5, stat.Empirical, xs, nil),
		Q3:       stat.Quantile(0.75, stat.Empirical, xs, nil),
		Values:   xs,
	}
	iqr := b.Q3 - b.Q1
	lo, hi := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LowerFence, b.UpperFence = b.Max, b.Min
	for _, x := range xs {
		if x < lo || x > hi {
			b.Outliers = append(b.Outliers, x)
			continue
		}
		b.LowerFence = math.Min(b.LowerFence, x)
		b.UpperFence = math.Max(b.UpperFence, x)
	}
	return b
}

func roomsByGrade(sel domain.Selection) []domain.GradeRooms {
	byGrade := map[int][]float64{}
	for i := 0; i < sel.Len(); i++ {
		h := sel.At(i)
		if h.Grade == nil || h.Rooms == nil {
			continue
		}
		byGrade[*h.Grade] = append(byGrade[*h.Grade], float64(*h.Rooms))
	}
	out := make([]domain.GradeRooms, 0, len(byGrade))
	for g, rooms := range byGrade {
		out = append(out, domain.GradeRooms{Grade: g, AvgRooms: mean(rooms)})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Grade < out[b].Grade })
	return out
}

func gradePoints(sel domain.Selection) []domain.GradePoint {
	var out []domain.GradePoint
	for i := 0; i < sel.Len(); i++ {
		h := sel.At(i)
		if h.Grade == nil || h.Rooms == nil {
			continue
		}
		out = append(out, domain.GradePoint{Grade: *h.Grade, Rooms: *h.Rooms})
	}
	return out
}

// trend fits rooms = a + b*grade by least squares; nil when the fit is undefined.
func trend(pts []domain.GradePoint) *domain.Trendline {
	if len(pts) < 2 {
		return nil
	}
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = float64(p.Grade), float64(p.Rooms)
	}
	if stat.Variance(xs, nil) == 0 {
		return nil
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) || math.IsInf(beta, 0) {
		return nil
	}
	return &domain.Trendline{Intercept: alpha, Slope: beta}
}

func mapPoints(sel domain.Selection) []domain.MapPoint {
	var out []domain.MapPoint
	for i := 0; i < sel.Len(); i++ {
		h := sel.At(i)
		if !h.HasCoords() {
			continue
		}
		out = append(out, domain.MapPoint{
			Name: h.Name, Region: h.Region, Address: h.Address,
			Grade: h.Grade, Lat: *h.Lat, Lon: *h.Lon,
		})
	}
	return out
}
