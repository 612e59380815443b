package domain

// AllDistricts lifts the district restriction when it is part of a selection.
const AllDistricts = "All"

// IntRange is inclusive on both ends.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r IntRange) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// Filter is the primary dashboard filter (sidebar controls).
type Filter struct {
	Districts []string `json:"districts"`
	Rooms     IntRange `json:"rooms"`
	Grade     IntRange `json:"grade"`
}

// AllowsAnyDistrict reports whether the sentinel is part of the selection.
func (f Filter) AllowsAnyDistrict() bool {
	for _, d := range f.Districts {
		if d == AllDistricts {
			return true
		}
	}
	return false
}

// ExploreQuery is the secondary single region / single grade selector.
type ExploreQuery struct {
	Region string `json:"region"`
	Grade  int    `json:"grade"`
}

// ChartStyle picks the rendering of the grade vs rooms insight.
type ChartStyle string

const (
	StyleLine    ChartStyle = "line"
	StyleScatter ChartStyle = "scatter"
)

// FilterOptions feeds the dashboard controls and the default filter.
type FilterOptions struct {
	Districts []string `json:"districts"` // AllDistricts first, then first-seen order
	Rooms     IntRange `json:"rooms"`
	Grade     IntRange `json:"grade"`
	Regions   []string `json:"regions"`
	Grades    []int    `json:"grades"`
}

// DefaultFilter selects everything the options span.
func (o FilterOptions) DefaultFilter() Filter {
	return Filter{Districts: []string{AllDistricts}, Rooms: o.Rooms, Grade: o.Grade}
}

// DefaultExplore is the first option of each select box.
func (o FilterOptions) DefaultExplore() ExploreQuery {
	var q ExploreQuery
	if len(o.Regions) > 0 {
		q.Region = o.Regions[0]
	}
	if len(o.Grades) > 0 {
		q.Grade = o.Grades[0]
	}
	return q
}
