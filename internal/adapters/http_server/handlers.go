// internal/adapters/http_server/handlers.go
package httpserver

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hotel_insights/internal/adapters/observability"
	"hotel_insights/internal/adapters/xlsx"
	"hotel_insights/internal/app"
	"hotel_insights/internal/domain"
	"hotel_insights/internal/storage/csvfile"
)

// ChartRenderer draws one chart spec as a PNG image.
type ChartRenderer interface {
	RenderPNG(w io.Writer, spec domain.ChartSpec) error
}

type Handlers struct {
	Reports *app.ReportService
	Charts  ChartRenderer
	Pages   *Pages
	Limiter *rate.Limiter // guards chart images and downloads; nil means unlimited

	png http.Handler
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	lim := h.Limiter
	if lim == nil {
		lim = NewLimiter(0)
	}
	limited := RateLimit(lim)
	h.png = limited(http.HandlerFunc(h.chartPNG))

	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.overviewPage)
	s.mux.Get("/dashboard", h.dashboardPage)
	s.mux.Get("/v1/options", h.options)
	s.mux.Get("/v1/report", h.report)
	s.mux.Get("/v1/explore", h.explore)
	s.mux.Get("/v1/overview", h.overview)
	s.mux.Get("/v1/charts/{insight}", h.chart)
	s.mux.Group(func(r chi.Router) {
		r.Use(limited)
		r.Get("/export/"+csvfile.ExportName, h.exportCSV)
		r.Get("/export/"+xlsx.ExportName, h.exportXLSX)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON answers 304 when the client already holds this representation.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if etag == "" {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "response could not be encoded")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write JSON body")
	}
}

// build computes a report and records its outcome.
func (h *Handlers) build(f domain.Filter) domain.Report {
	rep := h.Reports.Build(f)
	if rep.Empty {
		observability.ObserveReport("empty")
		return rep
	}
	observability.ObserveReport("ok")
	for i := range rep.Skipped {
		observability.ObserveSkip(string(i))
	}
	return rep
}

func (h *Handlers) overviewPage(w http.ResponseWriter, r *http.Request) {
	sum, err := app.Describe(h.Reports.Dataset())
	if err != nil {
		log.Error().Err(err).Msg("describe dataset failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "descriptive statistics unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Pages.overview(w, sum, h.Reports.Dataset().Len()); err != nil {
		log.Error().Err(err).Msg("render overview failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "page could not be rendered")
	}
}

func (h *Handlers) dashboardPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := h.Reports.Options()
	f, err := parseFilter(q, opts)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	ex, err := parseExplore(q, opts)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid explore query", err.Error())
		return
	}
	style, err := parseStyle(q)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid chart type", err.Error())
		return
	}

	rep := h.build(f)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Pages.dashboard(w, h.Reports, rep, h.Reports.Explore(ex), style, q.Get("show_all") == "1"); err != nil {
		log.Error().Err(err).Msg("render dashboard failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "page could not be rendered")
	}
}

func (h *Handlers) options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.Reports.Options())
}

func (h *Handlers) report(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r.URL.Query(), h.Reports.Options())
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	writeJSON(w, r, h.build(f))
}

type exploreResponse struct {
	domain.Exploration
	Rows [][]string `json:"rows"`
}

func (h *Handlers) explore(w http.ResponseWriter, r *http.Request) {
	q, err := parseExplore(r.URL.Query(), h.Reports.Options())
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid explore query", err.Error())
		return
	}
	ex := h.Reports.Explore(q)
	writeJSON(w, r, exploreResponse{Exploration: ex, Rows: tableRows(ex.Columns, ex.Rows)})
}

func (h *Handlers) overview(w http.ResponseWriter, r *http.Request) {
	sum, err := app.Describe(h.Reports.Dataset())
	if err != nil {
		log.Error().Err(err).Msg("describe dataset failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "descriptive statistics unavailable")
		return
	}
	writeJSON(w, r, sum)
}

func (h *Handlers) chart(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(chi.URLParam(r, "insight"), ".png") {
		h.png.ServeHTTP(w, r)
		return
	}
	spec, ok := h.chartSpec(w, r, chi.URLParam(r, "insight"))
	if !ok {
		return
	}
	writeJSON(w, r, spec)
}

func (h *Handlers) chartPNG(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(chi.URLParam(r, "insight"), ".png")
	spec, ok := h.chartSpec(w, r, name)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.Charts.RenderPNG(&buf, spec); err != nil {
		log.Error().Err(err).Str("insight", name).Msg("render chart failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "chart could not be rendered")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("failed to write chart body")
	}
}

// chartSpec writes a problem and reports false when no chart can be drawn.
func (h *Handlers) chartSpec(w http.ResponseWriter, r *http.Request, name string) (domain.ChartSpec, bool) {
	i, err := app.ParseInsight(name)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown insight")
		return domain.ChartSpec{}, false
	}
	q := r.URL.Query()
	f, err := parseFilter(q, h.Reports.Options())
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return domain.ChartSpec{}, false
	}
	style, err := parseStyle(q)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid chart type", err.Error())
		return domain.ChartSpec{}, false
	}

	spec, err := app.ChartFor(h.Reports.Build(f), i, style)
	var skipped *app.SkippedError
	switch {
	case errors.As(err, &skipped):
		writeProblem(w, http.StatusNotFound, "Insight Skipped", skipped.Reason)
		return domain.ChartSpec{}, false
	case err != nil:
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
		return domain.ChartSpec{}, false
	}
	return spec, true
}

func (h *Handlers) exportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "csv", csvfile.ExportName, csvfile.ExportMIME, csvfile.Write)
}

func (h *Handlers) exportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xlsx", xlsx.ExportName, xlsx.ExportMIME, xlsx.Write)
}

type tableWriter func(w io.Writer, columns []string, rows []domain.HotelRecord) error

func (h *Handlers) export(w http.ResponseWriter, r *http.Request, format, name, mime string, write tableWriter) {
	f, err := parseFilter(r.URL.Query(), h.Reports.Options())
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	sel := h.Reports.Filtered(f)

	var buf bytes.Buffer
	if err := write(&buf, sel.Dataset().Columns(), sel.Records()); err != nil {
		log.Error().Err(err).Str("format", format).Msg("export failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "export could not be produced")
		return
	}
	observability.ObserveExport(format)

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Str("format", format).Msg("failed to write export body")
	}
}
