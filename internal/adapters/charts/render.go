// Package charts draws chart specs as PNG images with gonum/plot.
package charts

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"hotel_insights/internal/domain"
)

const MIME = "image/png"

var trendColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}

type Renderer struct {
	Width, Height vg.Length
}

func New() *Renderer { return &Renderer{Width: 9 * vg.Inch, Height: 5 * vg.Inch} }

// RenderPNG draws spec into w.
func (r *Renderer) RenderPNG(w io.Writer, spec domain.ChartSpec) error {
	p, err := build(spec)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return fmt.Errorf("encode %s chart: %w", spec.Insight, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func build(spec domain.ChartSpec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	var err error
	switch spec.Kind {
	case domain.ChartBar:
		err = addBars(p, spec, false)
	case domain.ChartHBar:
		err = addBars(p, spec, true)
	case domain.ChartPie:
		addDonut(p, spec)
	case domain.ChartBox:
		err = addBoxes(p, spec)
	case domain.ChartLine:
		err = addLine(p, spec)
	case domain.ChartScatter, domain.ChartGeo:
		err = addScatter(p, spec)
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", spec.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s chart: %w", spec.Insight, err)
	}
	return p, nil
}

func addBars(p *plot.Plot, spec domain.ChartSpec, horizontal bool) error {
	if len(spec.Values) == 0 {
		return nil
	}
	values := make(plotter.Values, len(spec.Values))
	copy(values, spec.Values)

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)
	bars.Horizontal = horizontal

	p.Add(plotter.NewGrid(), bars)
	if horizontal {
		p.NominalY(spec.Labels...)
	} else {
		p.NominalX(spec.Labels...)
	}
	return nil
}

func addBoxes(p *plot.Plot, spec domain.ChartSpec) error {
	labels := make([]string, 0, len(spec.Groups))
	for i, g := range spec.Groups {
		if len(g.Values) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(36), float64(len(labels)), plotter.Values(g.Values))
		if err != nil {
			return err
		}
		box.FillColor = plotutil.Color(i)
		p.Add(box)
		labels = append(labels, g.Label)
	}
	p.NominalX(labels...)
	return nil
}

func addLine(p *plot.Plot, spec domain.ChartSpec) error {
	if len(spec.Points) == 0 {
		return nil
	}
	line, points, err := plotter.NewLinePoints(xys(spec.Points))
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(0)
	line.Width = vg.Points(2)
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	points.GlyphStyle.Color = plotutil.Color(0)
	p.Add(plotter.NewGrid(), line, points)
	return nil
}

func addScatter(p *plot.Plot, spec domain.ChartSpec) error {
	p.Add(plotter.NewGrid())
	for i, g := range groupPoints(spec.Points) {
		sc, err := plotter.NewScatter(xys(g.points))
		if err != nil {
			return err
		}
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(3)
		sc.GlyphStyle.Color = plotutil.Color(i)
		p.Add(sc)
		if g.label != "" {
			p.Legend.Add("Grade "+g.label, sc)
		}
	}
	if spec.Trend != nil {
		fn := plotter.NewFunction(spec.Trend.At)
		fn.Color = trendColor
		fn.Width = vg.Points(1.5)
		fn.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(fn)
		p.Legend.Add("OLS trend", fn)
	}
	p.Legend.Top = true
	return nil
}

type pointGroup struct {
	label  string
	points []domain.XY
}

// groupPoints splits points by Group, groups in first-seen order.
func groupPoints(pts []domain.XY) []pointGroup {
	pos := map[string]int{}
	var out []pointGroup
	for _, pt := range pts {
		j, ok := pos[pt.Group]
		if !ok {
			j = len(out)
			pos[pt.Group] = j
			out = append(out, pointGroup{label: pt.Group})
		}
		out[j].points = append(out[j].points, pt)
	}
	return out
}

func xys(pts []domain.XY) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		out[i].X, out[i].Y = pt.X, pt.Y
	}
	return out
}
