package httpserver

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"hotel_insights/internal/app"
	"hotel_insights/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages renders the overview and dashboard pages.
type Pages struct {
	tmpl       *template.Template
	background template.CSS
}

func NewPages(background template.CSS) (*Pages, error) {
	t, err := template.New("pages").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Pages{tmpl: t, background: background}, nil
}

type overviewView struct {
	Background template.CSS
	Summary    domain.Summary
	Records    int
}

type option struct {
	Value    string
	Selected bool
}

type insightView struct {
	Heading string
	Caption string
	Image   string
	Warning string
	Explore bool
}

type exploreView struct {
	Regions []option
	Grades  []option
	Result  domain.Exploration
	Rows    [][]string
}

type dashboardView struct {
	Districts []option
	Filter    domain.Filter
	Options   domain.FilterOptions
	Report    domain.Report
	Style     domain.ChartStyle
	ShowAll   bool
	Columns   []string
	AllRows   [][]string
	Insights  []insightView
	Explore   exploreView
	Download  string
	DownXLSX  string
}

var headings = map[domain.Insight]string{
	domain.InsightRegion:      "Insight 1: Hotel Distribution by Region",
	domain.InsightGrade:       "Insight 2: Hotel Grade Category Distribution",
	domain.InsightType:        "Insight 3: Hotel Classification by Type",
	domain.InsightDistricts:   "Insight 4: Top 10 Districts with Most Hotels",
	domain.InsightExplore:     "Insight 5: Explore Hotels by Province and Star Rating",
	domain.InsightSize:        "Insight 6: Hotel Distribution by Size Category",
	domain.InsightGradeBySize: "Insight 7: Grade Distribution by Hotel Size Category",
	domain.InsightGradeRooms:  "Insight 8: Grade vs Number of Rooms",
	domain.InsightMap:         "Insight 9: Geographical Distribution of Hotels on Map",
}

func (p *Pages) overview(w io.Writer, sum domain.Summary, records int) error {
	return p.render(w, "overview.html", overviewView{Background: p.background, Summary: sum, Records: records})
}

// dashboard lays out rep; the explore block and the full dataset table come
// from the unfiltered dataset.
func (p *Pages) dashboard(w io.Writer, svc *app.ReportService, rep domain.Report, ex domain.Exploration, style domain.ChartStyle, showAll bool) error {
	opts := svc.Options()
	v := dashboardView{
		Filter:  rep.Filter,
		Options: opts,
		Report:  rep,
		Style:   style,
		ShowAll: showAll,
		Columns: svc.Dataset().Columns(),
	}
	for _, d := range opts.Districts {
		v.Districts = append(v.Districts, option{Value: d, Selected: contains(rep.Filter.Districts, d)})
	}
	if showAll {
		v.AllRows = tableRows(v.Columns, svc.Dataset().All().Records())
	}

	// the explore selectors stay in the form even when nothing matches
	v.Explore = exploreBlock(opts, ex, !rep.Empty)
	if !rep.Empty {
		q := filterQuery(rep.Filter)
		for _, i := range domain.Insights {
			v.Insights = append(v.Insights, insightFor(rep, i, q, style))
		}
		v.Download = "/export/filtered_hotels.csv?" + q.Encode()
		v.DownXLSX = "/export/filtered_hotels.xlsx?" + q.Encode()
	}
	return p.render(w, "dashboard.html", v)
}

func insightFor(rep domain.Report, i domain.Insight, q url.Values, style domain.ChartStyle) insightView {
	iv := insightView{Heading: headings[i]}
	switch {
	case i == domain.InsightExplore:
		iv.Explore = true
		return iv
	case i == domain.InsightMap:
		iv.Caption = "This map shows the location of classified hotels."
	}
	if why, ok := rep.SkipReason(i); ok {
		iv.Warning = why
		return iv
	}
	img := url.Values{}
	for k, vs := range q {
		img[k] = vs
	}
	if i == domain.InsightGradeRooms {
		img.Set("chart", string(style))
	}
	iv.Image = "/v1/charts/" + string(i) + ".png?" + img.Encode()
	return iv
}

func exploreBlock(opts domain.FilterOptions, ex domain.Exploration, withResult bool) exploreView {
	var v exploreView
	if withResult {
		v.Result, v.Rows = ex, tableRows(ex.Columns, ex.Rows)
	}
	for _, r := range opts.Regions {
		v.Regions = append(v.Regions, option{Value: r, Selected: r == ex.Query.Region})
	}
	for _, g := range opts.Grades {
		v.Grades = append(v.Grades, option{Value: strconv.Itoa(g), Selected: g == ex.Query.Grade})
	}
	return v
}

// render buffers the page so a template error never leaves a half-written body.
func (p *Pages) render(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func tableRows(cols []string, hs []domain.HotelRecord) [][]string {
	out := make([][]string, len(hs))
	for i, h := range hs {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = h.Cell(c)
		}
		out[i] = row
	}
	return out
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
