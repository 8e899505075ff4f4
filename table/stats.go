// Public domain.

package table

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ColumnStats holds basic statistics of a numeric column.
type ColumnStats struct {
	Name              string
	Mean, Median, Std float64
}

// Stats computes mean, median and standard deviation of the named column.
func (t *Table) Stats(name string) (ColumnStats, error) {
	f, err := t.Floats(name)
	if err != nil {
		return ColumnStats{}, err
	}
	if len(f) == 0 {
		return ColumnStats{}, fmt.Errorf("table: column %q is empty", name)
	}
	s := ColumnStats{Name: name}
	s.Mean = stat.Mean(f, nil)
	s.Std = stat.StdDev(f, nil)
	sorted := append([]float64{}, f...)
	sort.Float64s(sorted)
	s.Median = stat.Quantile(.5, stat.Empirical, sorted, nil)
	return s, nil
}

// PrintColumnStatistics prints mean, median and standard deviation for
// every column of the table that parses as numeric.  Non-numeric columns
// are quietly skipped.
func (t *Table) PrintColumnStatistics(w io.Writer) {
	for _, name := range t.names {
		s, err := t.Stats(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "Mean %s : %3.3f   median %3.3f   std %3.3f\n",
			s.Name, s.Mean, s.Median, s.Std)
	}
}
