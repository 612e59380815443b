package charts

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"hotel_insights/internal/domain"
)

// holeRatio is the inner radius as a fraction of the outer one.
const holeRatio = 0.4

// donut is a pie with a hole; gonum/plot has no pie plotter.
type donut struct {
	values []float64
}

func (d donut) Plot(c draw.Canvas, _ *plot.Plot) {
	var total float64
	for _, v := range d.values {
		total += v
	}
	if total <= 0 {
		return
	}
	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	size := c.Size()
	r := size.X
	if size.Y < r {
		r = size.Y
	}
	r = r / 2 * 0.9

	// clockwise from twelve o'clock
	start := math.Pi / 2
	for i, v := range d.values {
		sweep := -2 * math.Pi * v / total
		var wedge vg.Path
		wedge.Move(center)
		wedge.Arc(center, r, start, sweep)
		wedge.Close()
		c.SetColor(plotutil.Color(i))
		c.Fill(wedge)
		start += sweep
	}

	hole := r * holeRatio
	var path vg.Path
	path.Move(vg.Point{X: center.X + hole, Y: center.Y})
	path.Arc(center, hole, 0, 2*math.Pi)
	path.Close()
	c.SetColor(color.White)
	c.Fill(path)
}

type swatch struct{ c color.Color }

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.c, c.ClipPolygonY(pts))
}

func addDonut(p *plot.Plot, spec domain.ChartSpec) {
	p.HideAxes()
	p.Add(donut{values: spec.Values})

	var total float64
	for _, v := range spec.Values {
		total += v
	}
	for i, label := range spec.Labels {
		if i >= len(spec.Values) || total == 0 {
			break
		}
		share := 100 * spec.Values[i] / total
		p.Legend.Add(fmt.Sprintf("%s (%.1f%%)", label, share), swatch{c: plotutil.Color(i)})
	}
	p.Legend.Top = true
}
