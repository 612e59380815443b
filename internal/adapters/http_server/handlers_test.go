package httpserver_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	httpserver "hotel_insights/internal/adapters/http_server"
	"hotel_insights/internal/app"
	"hotel_insights/internal/domain"
	"hotel_insights/internal/storage/csvfile"
)

// no Hotel_Type column: insight 3 is skipped
const fixture = `Name,District,Address,Rooms,Grade,Region,Logitiute,Latitude,Hotel_Size_Category
Galle Face,Colombo,2 Galle Rd,100,5,Western,79.84,6.92,Large
Lake Inn,Colombo,Lake Rd,20,3,Western,79.86,6.93,Small
Hill Lodge,Kandy,Peradeniya Rd,50,4,Central,80.63,7.29,Medium
Fort House,Galle,Church St,10,2,Southern,80.21,6.03,Small
`

type fakeRenderer struct{ specs []domain.ChartSpec }

func (f *fakeRenderer) RenderPNG(w io.Writer, spec domain.ChartSpec) error {
	f.specs = append(f.specs, spec)
	_, err := w.Write([]byte("\x89PNG\r\n\x1a\n"))
	return err
}

func newTestServer(t *testing.T, lim *rate.Limiter) (*fakeRenderer, http.Handler) {
	t.Helper()
	ds, err := csvfile.Parse(strings.NewReader(fixture))
	require.NoError(t, err)
	pages, err := httpserver.NewPages("background-color: #123456;")
	require.NoError(t, err)

	fr := &fakeRenderer{}
	srv := httpserver.New(5 * time.Second)
	srv.MountHandlers(&httpserver.Handlers{Reports: app.NewReportService(ds), Charts: fr, Pages: pages, Limiter: lim})
	return fr, srv.Mux()
}

func get(t *testing.T, h http.Handler, target string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	_, h := newTestServer(t, nil)

	rr := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestReport_DefaultFilterAndETag(t *testing.T) {
	_, h := newTestServer(t, nil)

	rr := get(t, h, "/v1/report")
	require.Equal(t, http.StatusOK, rr.Code)
	var rep domain.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rep))
	assert.Equal(t, domain.KPIs{TotalHotels: 4, AvgRooms: 45, AvgGrade: 3.5}, rep.KPIs)
	assert.Equal(t, app.WarnNoHotelType, rep.Skipped[domain.InsightType])

	etag := rr.Header().Get("ETag")
	require.NotEmpty(t, etag)
	rr = get(t, h, "/v1/report", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, rr.Code)
	assert.Equal(t, etag, rr.Header().Get("ETag"))
}

func TestReport_DistrictFilter(t *testing.T) {
	_, h := newTestServer(t, nil)

	rr := get(t, h, "/v1/report?district=Colombo")
	require.Equal(t, http.StatusOK, rr.Code)
	var rep domain.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rep))
	assert.Equal(t, 2, rep.KPIs.TotalHotels)
	assert.Equal(t, 60.0, rep.KPIs.AvgRooms)
}

func TestReport_EmptyDistrictSelection(t *testing.T) {
	_, h := newTestServer(t, nil)

	rr := get(t, h, "/v1/report?district=")
	require.Equal(t, http.StatusOK, rr.Code)
	var rep domain.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rep))
	assert.True(t, rep.Empty)
	assert.Equal(t, app.WarnNoData, rep.Warning)
	assert.Zero(t, rep.KPIs)
}

func TestReport_BadParameter(t *testing.T) {
	_, h := newTestServer(t, nil)

	rr := get(t, h, "/v1/report?rooms_min=abc")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "rooms_min must be an integer")
}

func TestExplore_UnfilteredDataset(t *testing.T) {
	_, h := newTestServer(t, nil)

	rr := get(t, h, "/v1/explore?region=Western&grade=5&district=Kandy")
	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Count int        `json:"count"`
		Rows  [][]string `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, "Galle Face", body.Rows[0][0])
}

func TestOptionsAndOverview(t *testing.T) {
	_, h := newTestServer(t, nil)

	rr := get(t, h, "/v1/options")
	require.Equal(t, http.StatusOK, rr.Code)
	var opts domain.FilterOptions
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &opts))
	assert.Equal(t, []string{"All", "Colombo", "Kandy", "Galle"}, opts.Districts)
	assert.Equal(t, domain.IntRange{Min: 10, Max: 100}, opts.Rooms)

	rr = get(t, h, "/v1/overview")
	require.Equal(t, http.StatusOK, rr.Code)
	var sum domain.Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sum))
	assert.Equal(t, "count", sum.Stats[0])
	assert.Len(t, sum.Rows, 9)
}

func TestChartSpec(t *testing.T) {
	_, h := newTestServer(t, nil)

	rr := get(t, h, "/v1/charts/region")
	require.Equal(t, http.StatusOK, rr.Code)
	var spec domain.ChartSpec
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &spec))
	assert.Equal(t, domain.ChartBar, spec.Kind)
	assert.Equal(t, []string{"Western", "Central", "Southern"}, spec.Labels)
	assert.Equal(t, []float64{2, 1, 1}, spec.Values)

	rr = get(t, h, "/v1/charts/grade_rooms?chart=scatter")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &spec))
	assert.Equal(t, domain.ChartScatter, spec.Kind)
}

func TestChartSpec_NotFound(t *testing.T) {
	_, h := newTestServer(t, nil)

	rr := get(t, h, "/v1/charts/type")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Insight Skipped")

	assert.Equal(t, http.StatusNotFound, get(t, h, "/v1/charts/explore").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/v1/charts/nope.png").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/v1/charts/region?district=").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/v1/charts/grade_rooms?chart=pie").Code)
}

func TestChartPNG(t *testing.T) {
	fr, h := newTestServer(t, nil)

	rr := get(t, h, "/v1/charts/map.png?district=Kandy")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("\x89PNG")))

	require.Len(t, fr.specs, 1)
	assert.Equal(t, domain.ChartGeo, fr.specs[0].Kind)
	// the map ignores the primary filter
	assert.Len(t, fr.specs[0].Points, 4)
}

func TestRateLimit(t *testing.T) {
	_, h := newTestServer(t, rate.NewLimiter(rate.Every(time.Hour), 1))

	assert.Equal(t, http.StatusOK, get(t, h, "/v1/charts/region.png").Code)
	rr := get(t, h, "/export/filtered_hotels.csv")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))

	// JSON endpoints are not limited
	assert.Equal(t, http.StatusOK, get(t, h, "/v1/charts/region").Code)
}

func TestExportCSV(t *testing.T) {
	_, h := newTestServer(t, nil)

	rr := get(t, h, "/export/filtered_hotels.csv?district=Colombo&grade_min=4")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="filtered_hotels.csv"`, rr.Header().Get("Content-Disposition"))

	back, err := csvfile.Parse(rr.Body)
	require.NoError(t, err)
	require.Equal(t, 1, back.Len())
	assert.Equal(t, "Galle Face", back.At(0).Name)
}

func TestExportXLSX(t *testing.T) {
	_, h := newTestServer(t, nil)

	rr := get(t, h, "/export/filtered_hotels.xlsx")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `attachment; filename="filtered_hotels.xlsx"`, rr.Header().Get("Content-Disposition"))
	// xlsx is a zip container
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")))
}

func TestDashboardPage(t *testing.T) {
	_, h := newTestServer(t, nil)

	rr := get(t, h, "/dashboard?show_all=1&region=Central&grade=4")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `id="kpi-total">4<`)
	assert.Contains(t, body, `id="kpi-rooms">45<`)
	assert.Contains(t, body, `id="kpi-grade">3.5<`)
	assert.Contains(t, body, "/v1/charts/region.png?")
	assert.Contains(t, body, "not found in dataset.")
	assert.Contains(t, body, "<strong>1 hotels</strong> found in <strong>Central</strong>")
	assert.Contains(t, body, "View Complete Hotel Dataset")
	assert.Contains(t, body, "Download Filtered Data")
}

func TestDashboardPage_EmptySelection(t *testing.T) {
	_, h := newTestServer(t, nil)

	rr := get(t, h, "/dashboard?district=&region=Southern&grade=2")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, app.WarnNoData)
	// explore selectors keep the current choice for the next submit
	assert.Contains(t, body, `name="region"`)
	assert.Contains(t, body, `<option value="Southern" selected>Southern</option>`)
	assert.Contains(t, body, `<option value="2" selected>2</option>`)
	assert.NotContains(t, body, "hotels</strong> found in")
	assert.Contains(t, body, `id="kpi-total">0<`)
	assert.NotContains(t, body, "Download Filtered Data")
	assert.NotContains(t, body, "/v1/charts/")
}

func TestOverviewPage(t *testing.T) {
	_, h := newTestServer(t, nil)

	rr := get(t, h, "/")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Descriptive Statistics")
	assert.Contains(t, body, "background-color: #123456;")
	assert.Contains(t, body, "4 hotels are loaded.")
}
