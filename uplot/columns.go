// Public domain.

package uplot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/soniakeys/uastro/table"
)

// ColumnPlotOptions control PlotColumns.
type ColumnPlotOptions struct {
	// Selected limits plotting to the named columns.  Nil plots all
	// numeric columns.
	Selected []string

	// Highlight marks the row with this index with a larger glyph.
	// Nil means no highlight.
	Highlight *int

	// Units maps column names to a unit shown in the axis label.
	Units map[string]string

	// Overwrite replots columns whose plot file already exists.
	Overwrite bool
}

// PlotColumns writes one value-versus-row-number scatter plot per
// numeric column of t into plotDir, named <nameSeed>_<column>.png.
// Existing plot files are kept unless o.Overwrite is set.  Columns that
// do not parse as numeric are quietly skipped.
func PlotColumns(t *table.Table, plotDir, nameSeed string, o ColumnPlotOptions) error {
	if err := os.MkdirAll(plotDir, 0755); err != nil {
		return err
	}
	sel := map[string]bool{}
	for _, s := range o.Selected {
		sel[s] = true
	}
	for _, name := range t.ColNames() {
		if o.Selected != nil && !sel[name] {
			continue
		}
		fn := filepath.Join(plotDir, fmt.Sprintf("%s_%s.png", nameSeed, name))
		if _, err := os.Stat(fn); err == nil && !o.Overwrite {
			continue
		}
		vals, err := t.Floats(name)
		if err != nil {
			continue
		}
		if err = plotColumn(vals, name, o, fn); err != nil {
			return err
		}
	}
	return nil
}

func plotColumn(vals []float64, name string, o ColumnPlotOptions, fn string) error {
	p := plot.New()
	label := name
	if u, ok := o.Units[name]; ok {
		label = fmt.Sprintf("%s (%s)", name, u)
	}
	p.Title.Text = label
	p.X.Label.Text = "row"
	p.Y.Label.Text = label

	xy := make(plotter.XYs, len(vals))
	for i, v := range vals {
		xy[i].X = float64(i)
		xy[i].Y = v
	}
	s, err := plotter.NewScatter(xy)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = color.RGBA{B: 0xff, A: 0xff}
	s.GlyphStyle.Radius = vg.Points(3)
	p.Add(s)

	if o.Highlight != nil && *o.Highlight >= 0 && *o.Highlight < len(vals) {
		hx := *o.Highlight
		hs, err := plotter.NewScatter(plotter.XYs{
			{X: float64(hx), Y: vals[hx]}})
		if err != nil {
			return err
		}
		hs.GlyphStyle.Color = color.RGBA{G: 0xc0, A: 0xff}
		hs.GlyphStyle.Radius = vg.Points(8)
		p.Add(hs)
	}
	return p.Save(6*vg.Inch, 6*vg.Inch, fn)
}
