// Public domain.

// Package table implements a small column oriented table.
//
// It covers the needs of the archive and plotting helpers: reading and
// writing delimited text files, pulling columns out as float64 slices,
// and simple row filtering.  It is not a data frame library.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
)

// A Table holds named columns of equal length.  Cell values are kept as
// strings as read; use Floats to interpret a column numerically.
type Table struct {
	names []string
	cols  [][]string
}

// New creates an empty table with the given column names.
func New(names ...string) *Table {
	t := &Table{names: append([]string{}, names...)}
	t.cols = make([][]string, len(t.names))
	return t
}

// ColNames returns the column names in order.
func (t *Table) ColNames() []string {
	return append([]string{}, t.names...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0])
}

func (t *Table) index(name string) int {
	for i, n := range t.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Column returns the values of the named column, or an error if no such
// column exists.
func (t *Table) Column(name string) ([]string, error) {
	x := t.index(name)
	if x < 0 {
		return nil, fmt.Errorf("table: no column %q", name)
	}
	return t.cols[x], nil
}

// Floats returns the named column parsed as float64s.  Any cell that
// does not parse is an error.
func (t *Table) Floats(name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	f := make([]float64, len(c))
	for i, s := range c {
		f[i], err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("table: column %q row %d: %v", name, i, err)
		}
	}
	return f, nil
}

// AddColumn appends a column.  The column length must match the table
// unless the table has no columns yet.
func (t *Table) AddColumn(name string, values []string) error {
	if len(t.cols) > 0 && len(values) != t.Len() {
		return fmt.Errorf("table: column %q has %d values, want %d",
			name, len(values), t.Len())
	}
	if t.index(name) >= 0 {
		return fmt.Errorf("table: column %q already present", name)
	}
	t.names = append(t.names, name)
	t.cols = append(t.cols, append([]string{}, values...))
	return nil
}

// AddFloatColumn appends a column of float64s formatted with %g.
func (t *Table) AddFloatColumn(name string, values []float64) error {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return t.AddColumn(name, s)
}

// RemoveColumn removes the named column.  Removing a missing column is
// not an error.
func (t *Table) RemoveColumn(name string) {
	x := t.index(name)
	if x < 0 {
		return
	}
	t.names = append(t.names[:x], t.names[x+1:]...)
	t.cols = append(t.cols[:x], t.cols[x+1:]...)
}

// AppendRow appends a row of values, one per column.
func (t *Table) AppendRow(values ...string) error {
	if len(values) != len(t.names) {
		return fmt.Errorf("table: row has %d values, want %d",
			len(values), len(t.names))
	}
	for i, v := range values {
		t.cols[i] = append(t.cols[i], v)
	}
	return nil
}

// Row returns row i as a slice of values in column order.
func (t *Table) Row(i int) []string {
	r := make([]string, len(t.cols))
	for j, c := range t.cols {
		r[j] = c[i]
	}
	return r
}

// RemoveRows removes the rows at the given indexes.  Indexes out of range
// are ignored; duplicates are harmless.
func (t *Table) RemoveRows(rows []int) {
	if len(rows) == 0 {
		return
	}
	drop := make(map[int]bool, len(rows))
	for _, r := range rows {
		if r >= 0 && r < t.Len() {
			drop[r] = true
		}
	}
	for j, c := range t.cols {
		kept := c[:0]
		for i, v := range c {
			if !drop[i] {
				kept = append(kept, v)
			}
		}
		t.cols[j] = kept
	}
}

// Filter removes all rows for which keep returns false.  Keep receives
// the row index.
func (t *Table) Filter(keep func(row int) bool) {
	var drop []int
	for i := 0; i < t.Len(); i++ {
		if !keep(i) {
			drop = append(drop, i)
		}
	}
	t.RemoveRows(drop)
}

// ReadCSV reads a delimited table with a header row.  A zero delim means
// comma.  Lines beginning with # are skipped.
func ReadCSV(r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	if delim != 0 {
		cr.Comma = delim
	}
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("table: no header row")
	}
	hdr := rows[0]
	for i, h := range hdr {
		hdr[i] = strings.TrimSpace(h)
	}
	t := New(hdr...)
	for _, row := range rows[1:] {
		if len(row) != len(hdr) {
			return nil, fmt.Errorf("table: row has %d fields, want %d",
				len(row), len(hdr))
		}
		for i, v := range row {
			t.cols[i] = append(t.cols[i], strings.TrimSpace(v))
		}
	}
	return t, nil
}

// ReadCSVFile reads a delimited table from a file.
func ReadCSVFile(path string, delim rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f, delim)
}

// WriteCSV writes the table with a header row.  A zero delim means comma.
func (t *Table) WriteCSV(w io.Writer, delim rune) error {
	cw := csv.NewWriter(w)
	if delim != 0 {
		cw.Comma = delim
	}
	if err := cw.Write(t.names); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		if err := cw.Write(t.Row(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the table to a file, creating or truncating it.
func (t *Table) WriteCSVFile(path string, delim rune) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.WriteCSV(f, delim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Fprint writes the table in aligned columns for reading by eye.
// MaxRows > 0 limits output to the first maxRows rows, with a trailing
// note on how many were left out.
func (t *Table) Fprint(w io.Writer, maxRows int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.names, "\t"))
	n := t.Len()
	if maxRows > 0 && maxRows < n {
		n = maxRows
	}
	for i := 0; i < n; i++ {
		fmt.Fprintln(tw, strings.Join(t.Row(i), "\t"))
	}
	if n < t.Len() {
		fmt.Fprintf(tw, "... %d more rows\n", t.Len()-n)
	}
	return tw.Flush()
}
