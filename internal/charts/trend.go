package charts

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/jstittsworth/ffb-trends/internal/nfl"
)

const (
	chartTitle  = "Points Vs. Year in NFL"
	xAxisLabel  = "Year"
	yAxisLabel  = "Points"
	chartWidth  = 10 * vg.Inch
	chartHeight = 5 * vg.Inch
)

// Series is one player's line on the trend chart
type Series struct {
	Label  string           `json:"label"`
	Points []nfl.YearPoints `json:"points"`
}

// RenderTrend draws the points-by-year chart for the given series and
// writes it to path; the image format follows the file extension. Each
// series gets its own color with markers at every season, the x axis
// ticks on whole years only, and the legend carries the player names.
func RenderTrend(series []Series, path string) error {
	p := plot.New()
	p.Title.Text = chartTitle
	p.Title.TextStyle.Font.Size = vg.Points(18)
	p.X.Label.Text = xAxisLabel
	p.Y.Label.Text = yAxisLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.TextStyle.Font.Size = vg.Points(14)
	p.X.Tick.Marker = integerTicks{}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	args := make([]interface{}, 0, 2*len(series))
	for _, s := range series {
		xys := make(plotter.XYs, len(s.Points))
		for i, yp := range s.Points {
			xys[i].X = float64(yp.Year)
			xys[i].Y = yp.Points
		}
		args = append(args, s.Label, xys)
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return fmt.Errorf("failed to add trend series: %w", err)
	}

	// A single season collapses the axis range; pad it so the point
	// still lands inside the frame.
	if p.X.Min == p.X.Max {
		p.X.Min--
		p.X.Max++
	}
	if p.Y.Min == p.Y.Max {
		p.Y.Min--
		p.Y.Max++
	}

	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return fmt.Errorf("failed to save chart to %s: %w", path, err)
	}
	return nil
}

// integerTicks marks whole years only, widening the step once the span
// would need more than ten ticks
type integerTicks struct{}

func (integerTicks) Ticks(min, max float64) []plot.Tick {
	if max < min {
		min, max = max, min
	}
	lo := int(math.Ceil(min))
	hi := int(math.Floor(max))
	if hi < lo {
		return nil
	}
	step := tickStep(hi - lo)
	start := lo
	if rem := ((lo % step) + step) % step; rem != 0 {
		start += step - rem
	}
	var ticks []plot.Tick
	for v := start; v <= hi; v += step {
		ticks = append(ticks, plot.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	return ticks
}

// tickStep picks the smallest 1/2/5-style integer step that keeps the
// tick count at ten or fewer across the span
func tickStep(span int) int {
	for scale := 1; ; scale *= 10 {
		for _, mult := range []int{1, 2, 5} {
			if step := mult * scale; span/step <= 10 {
				return step
			}
		}
	}
}
