// Public domain.

// Package uplot wraps recurring plotting tasks: histograms with fitted
// Gaussians and quick per-column plots of tables.  Plots are written as
// image files with gonum plot.
package uplot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// fill colors cycled through by multi-histogram plots
var fillColors = []color.Color{
	color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80},
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0x80},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0x80},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0x80},
}

// HistOptions control HistogramGaussFit and Histograms.
type HistOptions struct {
	Labels []string // legend labels, "data N" by default
	Title  string
	XLabel string // "value" by default
	Bins   int    // histogram bin count, 20 by default

	// Normalize plots probability density instead of counts.
	Normalize bool

	// NoFit suppresses the fitted Gaussian overlay.
	NoFit bool

	// SeparatePanels writes one file per data set instead of overlaying
	// all sets in one plot.
	SeparatePanels bool
}

func (o *HistOptions) label(i int) string {
	if i < len(o.Labels) {
		return o.Labels[i]
	}
	return fmt.Sprintf("data %d", i)
}

func (o *HistOptions) bins() int {
	if o.Bins > 0 {
		return o.Bins
	}
	return 20
}

// HistogramGaussFit plots histograms of one or more data sets with
// fitted normal distributions overlaid and writes them below outDir
// with names derived from nameSeed.  The written file names are
// returned.
func HistogramGaussFit(data [][]float64, outDir, nameSeed string, o HistOptions) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}
	if o.SeparatePanels {
		var files []string
		for i, d := range data {
			p, err := histPanel([][]float64{d}, []string{o.label(i)}, &o)
			if err != nil {
				return nil, err
			}
			fn := filepath.Join(outDir,
				fmt.Sprintf("%s_%s_hist.png", nameSeed, o.label(i)))
			if err = p.Save(6*vg.Inch, 5*vg.Inch, fn); err != nil {
				return nil, err
			}
			files = append(files, fn)
		}
		return files, nil
	}
	labels := make([]string, len(data))
	for i := range data {
		labels[i] = o.label(i)
	}
	p, err := histPanel(data, labels, &o)
	if err != nil {
		return nil, err
	}
	fn := filepath.Join(outDir, nameSeed+"_hist.png")
	if err = p.Save(8*vg.Inch, 6*vg.Inch, fn); err != nil {
		return nil, err
	}
	return []string{fn}, nil
}

// Histograms plots overlaid histograms without fits.
func Histograms(data [][]float64, outDir, nameSeed string, o HistOptions) ([]string, error) {
	o.NoFit = true
	return HistogramGaussFit(data, outDir, nameSeed, o)
}

func histPanel(data [][]float64, labels []string, o *HistOptions) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = o.Title
	if o.XLabel != "" {
		p.X.Label.Text = o.XLabel
	} else {
		p.X.Label.Text = "value"
	}
	if o.Normalize {
		p.Y.Label.Text = "Probability"
	} else {
		p.Y.Label.Text = "N"
	}
	for i, d := range data {
		if len(d) == 0 {
			return nil, fmt.Errorf("uplot: data set %d is empty", i)
		}
		h, err := plotter.NewHist(plotter.Values(d), o.bins())
		if err != nil {
			return nil, err
		}
		h.FillColor = fillColors[i%len(fillColors)]
		if o.Normalize {
			h.Normalize(1)
		}
		p.Add(h)
		label := labels[i]
		mu, sigma := stat.MeanStdDev(d, nil)
		if !o.NoFit && sigma > 0 {
			f := fitFunction(d, mu, sigma, o)
			p.Add(f)
			label = fmt.Sprintf("%s: mu=%1.3f±%1.3f", labels[i], mu, sigma)
			p.Legend.Add(label, f)
		} else {
			p.Legend.Add(label, h)
		}
	}
	p.Legend.Top = true
	return p, nil
}

// fitFunction returns the fitted normal pdf, scaled to the histogram
// counts when the plot is not normalized.
func fitFunction(d []float64, mu, sigma float64, o *HistOptions) *plotter.Function {
	normFact := 1.0
	if !o.Normalize {
		min, max := d[0], d[0]
		for _, v := range d {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		binWidth := (max - min) / float64(o.bins())
		normFact = float64(len(d)) * binWidth
	}
	n := distuv.Normal{Mu: mu, Sigma: sigma}
	f := plotter.NewFunction(func(x float64) float64 {
		return n.Prob(x) * normFact
	})
	f.Color = color.Black
	f.Width = vg.Points(2)
	return f
}
