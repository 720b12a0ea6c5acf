package report

import (
	"fmt"
	"os"
	"path"

	"github.com/zeu5/impact-eval/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// SeriesPlotter draws the cumulative reward and the normalized delay of every
// experiment into plotPath
func SeriesPlotter(plotPath string) types.Comparator {
	return func(names []string, ds []types.DataSet) error {
		if err := os.MkdirAll(plotPath, os.ModePerm); err != nil {
			return err
		}
		rewards := newPlot("Cumulative reward", "Reward")
		delays := newPlot("Normalized delay", "Delay")
		for i := 0; i < len(names); i++ {
			series, ok := ds[i].(*Series)
			if !ok {
				return fmt.Errorf("dataset %s: unexpected type %T", names[i], ds[i])
			}
			if err := addLine(rewards, names[i], i, series.Cumulative()); err != nil {
				return err
			}
			if err := addLine(delays, names[i], i, series.NormalizedDelays); err != nil {
				return err
			}
		}
		if err := rewards.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, "cumulative_reward.png")); err != nil {
			return err
		}
		return delays.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, "normalized_delay.png"))
	}
}

func newPlot(title, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Timestep"
	p.Y.Label.Text = yLabel
	return p
}

func addLine(p *plot.Plot, name string, i int, values []float64) error {
	points := make(plotter.XYs, len(values))
	for j, v := range values {
		points[j] = plotter.XY{
			X: float64(j + 1),
			Y: v,
		}
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	line.Color = plotutil.Color(i)
	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}
