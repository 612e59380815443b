package app

import (
	"hotel_insights/internal/domain"
)

// Warnings shown in place of skipped content.
const (
	WarnNoData       = "No data available for selected filters. Please adjust them."
	WarnNoHotelType  = "Column 'Hotel_Type' not found in dataset."
	WarnNoSize       = "Column 'Hotel_Size_Category' not found in dataset."
	WarnNoCoordinate = "Latitude and Longitude columns are missing for map visualization."
)

const topDistricts = 10

// ReportService answers every dashboard question from one immutable dataset.
type ReportService struct {
	ds   *domain.Dataset
	opts domain.FilterOptions
}

func NewReportService(ds *domain.Dataset) *ReportService {
	return &ReportService{ds: ds, opts: Options(ds)}
}

func (s *ReportService) Dataset() *domain.Dataset { return s.ds }

func (s *ReportService) Options() domain.FilterOptions { return s.opts }

func (s *ReportService) Filtered(f domain.Filter) domain.Selection { return ApplyFilter(s.ds, f) }

// Build computes the KPIs and all insights for f. When nothing matches, only
// the (zero) KPIs and a warning are returned.
func (s *ReportService) Build(f domain.Filter) domain.Report {
	sel := ApplyFilter(s.ds, f)
	r := domain.Report{Filter: f, KPIs: kpis(sel)}
	if sel.Empty() {
		r.Empty = true
		r.Warning = WarnNoData
		return r
	}

	r.ByRegion = countBy(sel, func(h domain.HotelRecord) string { return h.Region })
	r.ByGrade = countBy(sel, gradeKey)
	if s.ds.Has(domain.CapHotelType) {
		r.ByType = countBy(sel, func(h domain.HotelRecord) string { return strKey(h.HotelType) })
	} else {
		skip(&r, domain.InsightType, WarnNoHotelType)
	}
	r.TopDistricts = topN(countBy(sel, func(h domain.HotelRecord) string { return h.District }), topDistricts)

	if s.ds.Has(domain.CapSizeCategory) {
		r.BySize = countBy(sel, func(h domain.HotelRecord) string { return strKey(h.SizeCategory) })
		r.GradeBySize = boxSummaries(sel)
	} else {
		skip(&r, domain.InsightSize, WarnNoSize)
		skip(&r, domain.InsightGradeBySize, WarnNoSize)
	}

	r.RoomsByGrade = roomsByGrade(sel)
	r.GradePoints = gradePoints(sel)
	r.Trend = trend(r.GradePoints)

	// the map always plots the whole dataset
	if s.ds.Has(domain.CapCoordinates) {
		r.Map = mapPoints(s.ds.All())
	} else {
		skip(&r, domain.InsightMap, WarnNoCoordinate)
	}
	return r
}

func skip(r *domain.Report, i domain.Insight, warning string) {
	if r.Skipped == nil {
		r.Skipped = map[domain.Insight]string{}
	}
	r.Skipped[i] = warning
}

// Explore runs the secondary region/grade selector against the unfiltered dataset.
func (s *ReportService) Explore(q domain.ExploreQuery) domain.Exploration {
	sel := s.ds.Select(func(h domain.HotelRecord) bool {
		return h.Region == q.Region && h.Grade != nil && *h.Grade == q.Grade
	})
	return domain.Exploration{
		Query:   q,
		Count:   sel.Len(),
		Columns: s.ds.Columns(),
		Rows:    sel.Records(),
	}
}
