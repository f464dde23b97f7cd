package analysis

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/lixenwraith/pipes/geometry"
	"github.com/lixenwraith/pipes/pipe"
)

// PlotLengths saves a bar chart of real length per pipe; the format follows the file extension
func PlotLengths(ps *pipe.PathSet, path string) error {
	values := make(plotter.Values, len(ps.Pipes))
	for i, p := range ps.Pipes {
		values[i] = float64(len(p.Real()))
	}
	if len(values) == 0 {
		return fmt.Errorf("plot lengths: scene %d has no pipes", ps.Seed)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Scene %d - Pipe Lengths", ps.Seed)
	p.X.Label.Text = "Pipe"
	p.Y.Label.Text = "Steps"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return fmt.Errorf("plot lengths: %w", err)
	}
	p.Add(bars)

	limit, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: float64(ps.Config.StepsPerPipe)},
		{X: float64(len(values)) - 0.5, Y: float64(ps.Config.StepsPerPipe)},
	})
	if err != nil {
		return fmt.Errorf("plot lengths: %w", err)
	}
	limit.Width = vg.Points(1)
	p.Add(limit)
	p.Legend.Add("target", limit)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// PlotCurveUse saves a bar chart of how often each curve id was placed
func PlotCurveUse(s Stats, path string) error {
	values := make(plotter.Values, geometry.CurveCount)
	for i, n := range s.CurveUse {
		values[i] = float64(n)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Scene %d - Curve Use", s.Seed)
	p.X.Label.Text = fmt.Sprintf("Curve id - %d", geometry.ElementCurveFirst)
	p.Y.Label.Text = "Count"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return fmt.Errorf("plot curve use: %w", err)
	}
	p.Add(bars)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
