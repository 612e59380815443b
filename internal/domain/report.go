package domain

// Insight identifies one analysis block of the dashboard.
type Insight string

const (
	InsightRegion      Insight = "region"        // 1
	InsightGrade       Insight = "grade"         // 2
	InsightType        Insight = "type"          // 3
	InsightDistricts   Insight = "districts"     // 4
	InsightExplore     Insight = "explore"       // 5
	InsightSize        Insight = "size"          // 6
	InsightGradeBySize Insight = "grade_by_size" // 7
	InsightGradeRooms  Insight = "grade_rooms"   // 8
	InsightMap         Insight = "map"           // 9
)

// Insights in presentation order.
var Insights = []Insight{
	InsightRegion, InsightGrade, InsightType, InsightDistricts, InsightExplore,
	InsightSize, InsightGradeBySize, InsightGradeRooms, InsightMap,
}

type KPIs struct {
	TotalHotels int     `json:"total_hotels"`
	AvgRooms    float64 `json:"avg_rooms"`
	AvgGrade    float64 `json:"avg_grade"` // rounded to 2 decimals
}

// AvgRoomsTile is the whole-number value shown on the tile.
func (k KPIs) AvgRoomsTile() int { return int(k.AvgRooms) }

type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type BoxSummary struct {
	Category   string    `json:"category"`
	N          int       `json:"n"`
	Min        float64   `json:"min"`
	Q1         float64   `json:"q1"`
	Median     float64   `json:"median"`
	Q3         float64   `json:"q3"`
	Max        float64   `json:"max"`
	LowerFence float64   `json:"lower_fence"`
	UpperFence float64   `json:"upper_fence"`
	Outliers   []float64 `json:"outliers,omitempty"`
	Values     []float64 `json:"values"` // sorted grades
}

type GradeRooms struct {
	Grade    int     `json:"grade"`
	AvgRooms float64 `json:"avg_rooms"`
}

type GradePoint struct {
	Grade int `json:"grade"`
	Rooms int `json:"rooms"`
}

// Trendline is y = Intercept + Slope*x.
type Trendline struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

func (t Trendline) At(x float64) float64 { return t.Intercept + t.Slope*x }

type MapPoint struct {
	Name    string  `json:"name"`
	Region  string  `json:"region"`
	Address string  `json:"address"`
	Grade   *int    `json:"grade"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Report is everything the dashboard shows for one primary filter.
type Report struct {
	Filter  Filter `json:"filter"`
	KPIs    KPIs   `json:"kpis"`
	Empty   bool   `json:"empty"`
	Warning string `json:"warning,omitempty"`

	ByRegion     []Count      `json:"by_region,omitempty"`
	ByGrade      []Count      `json:"by_grade,omitempty"`
	ByType       []Count      `json:"by_type,omitempty"`
	TopDistricts []Count      `json:"top_districts,omitempty"`
	BySize       []Count      `json:"by_size,omitempty"`
	GradeBySize  []BoxSummary `json:"grade_by_size,omitempty"`
	RoomsByGrade []GradeRooms `json:"rooms_by_grade,omitempty"`
	GradePoints  []GradePoint `json:"grade_points,omitempty"`
	Trend        *Trendline   `json:"trend,omitempty"`
	Map          []MapPoint   `json:"map,omitempty"`

	// Skipped maps an insight to the warning shown in its place.
	Skipped map[Insight]string `json:"skipped,omitempty"`
}

// SkipReason returns the warning for a skipped insight, if any.
func (r Report) SkipReason(i Insight) (string, bool) {
	w, ok := r.Skipped[i]
	return w, ok
}

// Exploration is the result of the secondary selector.
type Exploration struct {
	Query   ExploreQuery  `json:"query"`
	Count   int           `json:"count"`
	Columns []string      `json:"columns"`
	Rows    []HotelRecord `json:"-"`
}

// ChartKind names the chart primitive an insight maps to.
type ChartKind string

const (
	ChartBar     ChartKind = "bar"
	ChartHBar    ChartKind = "hbar"
	ChartPie     ChartKind = "pie"
	ChartBox     ChartKind = "box"
	ChartLine    ChartKind = "line"
	ChartScatter ChartKind = "scatter"
	ChartGeo     ChartKind = "geo"
)

type XY struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Group string  `json:"group,omitempty"`
}

type ValueGroup struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// ChartSpec is the small aggregated table handed to a chart renderer.
type ChartSpec struct {
	Insight Insight      `json:"insight"`
	Kind    ChartKind    `json:"kind"`
	Title   string       `json:"title"`
	XLabel  string       `json:"x_label,omitempty"`
	YLabel  string       `json:"y_label,omitempty"`
	Labels  []string     `json:"labels,omitempty"`
	Values  []float64    `json:"values,omitempty"`
	Groups  []ValueGroup `json:"groups,omitempty"`
	Points  []XY         `json:"points,omitempty"`
	Trend   *Trendline   `json:"trend,omitempty"`
}

// Summary is the descriptive statistics table of the overview page.
type Summary struct {
	Stats []string   `json:"stats"` // column headings
	Rows  [][]string `json:"rows"`  // one per dataset column, first cell is the column name
}
