package stats

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotSeries lists the statistics drawn on a convergence plot
var PlotSeries = []string{"avg", "min", "max"}

// Plot renders a convergence plot of the log to path. The image format
// follows the file extension (png, svg, pdf).
func Plot(log []Record, label, path string) error {
	p := plot.New()
	p.Title.Text = label
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	lines := make([]interface{}, 0, 2*len(PlotSeries))
	for _, name := range PlotSeries {
		lines = append(lines, name, points(log, name))
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return fmt.Errorf("add plot lines: %w", err)
	}
	p.Legend.Top = true

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

func points(log []Record, name string) plotter.XYs {
	values := Column(log, name)
	pts := make(plotter.XYs, len(log))
	for i, rec := range log {
		pts[i].X = float64(rec.Generation)
		pts[i].Y = values[i]
	}
	return pts
}
