// Public domain.

package table_test

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soniakeys/uastro/table"
)

const sample = `# comment line
name,ra,dec,mag
a,10.5,-3.25,12.1
b,11.0,-3.5,13.4
c,11.5,-3.75,11.9
`

func TestReadCSV(t *testing.T) {
	tb, err := table.ReadCSV(strings.NewReader(sample), ',')
	if err != nil {
		t.Fatal(err)
	}
	if g := tb.Len(); g != 3 {
		t.Fatalf("Len() = %d, want 3", g)
	}
	want := []string{"name", "ra", "dec", "mag"}
	got := tb.ColNames()
	if len(got) != len(want) {
		t.Fatalf("ColNames() = %v, want %v", got, want)
	}
	for i, n := range want {
		if got[i] != n {
			t.Fatalf("ColNames() = %v, want %v", got, want)
		}
	}
	ra, err := tb.Floats("ra")
	if err != nil {
		t.Fatal(err)
	}
	if ra[1] != 11 {
		t.Fatalf("ra[1] = %g, want 11", ra[1])
	}
	if _, err = tb.Floats("name"); err == nil {
		t.Fatal("Floats(name) should not parse")
	}
	if _, err = tb.Column("nope"); err == nil {
		t.Fatal("Column(nope) should fail")
	}
}

func TestRoundTrip(t *testing.T) {
	tb, err := table.ReadCSV(strings.NewReader(sample), ',')
	if err != nil {
		t.Fatal(err)
	}
	fn := filepath.Join(t.TempDir(), "t.csv")
	if err = tb.WriteCSVFile(fn, ','); err != nil {
		t.Fatal(err)
	}
	tb2, err := table.ReadCSVFile(fn, ',')
	if err != nil {
		t.Fatal(err)
	}
	if tb2.Len() != tb.Len() {
		t.Fatalf("round trip Len() = %d, want %d", tb2.Len(), tb.Len())
	}
	for i := 0; i < tb.Len(); i++ {
		r1 := tb.Row(i)
		r2 := tb2.Row(i)
		for j := range r1 {
			if r1[j] != r2[j] {
				t.Fatalf("row %d = %v, want %v", i, r2, r1)
			}
		}
	}
}

func TestRemoveRows(t *testing.T) {
	tb, _ := table.ReadCSV(strings.NewReader(sample), ',')
	tb.RemoveRows([]int{0, 2, 99})
	if tb.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tb.Len())
	}
	if r := tb.Row(0); r[0] != "b" {
		t.Fatalf("remaining row = %v, want b", r)
	}
}

func TestFilter(t *testing.T) {
	tb, _ := table.ReadCSV(strings.NewReader(sample), ',')
	mag, _ := tb.Floats("mag")
	tb.Filter(func(row int) bool { return mag[row] < 13 })
	if tb.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tb.Len())
	}
}

func TestAddColumn(t *testing.T) {
	tb, _ := table.ReadCSV(strings.NewReader(sample), ',')
	err := tb.AddFloatColumn("plx", []float64{1.5, 2.5, 3.5})
	if err != nil {
		t.Fatal(err)
	}
	if err = tb.AddColumn("plx", []string{"x", "y", "z"}); err == nil {
		t.Fatal("duplicate column should fail")
	}
	if err = tb.AddColumn("short", []string{"x"}); err == nil {
		t.Fatal("mismatched column length should fail")
	}
	tb.RemoveColumn("plx")
	if _, err = tb.Column("plx"); err == nil {
		t.Fatal("plx should be gone")
	}
}

func TestAddColumnEmptyTable(t *testing.T) {
	// columns declared but no rows yet: new columns must stay empty too
	tb := table.New("a")
	if err := tb.AddColumn("b", []string{"x"}); err == nil {
		t.Fatal("ragged column accepted")
	}
	if err := tb.AddColumn("b", nil); err != nil {
		t.Fatal(err)
	}
	if tb.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", tb.Len())
	}
	// a table with no columns at all takes a first column of any length
	tb = table.New()
	if err := tb.AddColumn("a", []string{"1", "2"}); err != nil {
		t.Fatal(err)
	}
	if tb.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tb.Len())
	}
}

func TestStats(t *testing.T) {
	tb := table.New("v")
	for _, s := range []string{"1", "2", "3", "4", "5"} {
		if err := tb.AppendRow(s); err != nil {
			t.Fatal(err)
		}
	}
	s, err := tb.Stats("v")
	if err != nil {
		t.Fatal(err)
	}
	if s.Mean != 3 {
		t.Errorf("Mean = %g, want 3", s.Mean)
	}
	if s.Median != 3 {
		t.Errorf("Median = %g, want 3", s.Median)
	}
	if want := math.Sqrt(2.5); math.Abs(s.Std-want) > 1e-12 {
		t.Errorf("Std = %g, want %g", s.Std, want)
	}
}

func TestFprint(t *testing.T) {
	tb, _ := table.ReadCSV(strings.NewReader(sample), ',')
	var b strings.Builder
	if err := tb.Fprint(&b, 2); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "name") {
		t.Errorf("header line %q", lines[0])
	}
	if !strings.Contains(lines[3], "1 more rows") {
		t.Errorf("trailer line %q", lines[3])
	}
	if strings.Contains(out, "c,") {
		t.Error("row past maxRows printed")
	}
}

func TestPrintColumnStatistics(t *testing.T) {
	tb, _ := table.ReadCSV(strings.NewReader(sample), ',')
	var b strings.Builder
	tb.PrintColumnStatistics(&b)
	out := b.String()
	if strings.Contains(out, "name") {
		t.Error("non-numeric column should be skipped")
	}
	if !strings.Contains(out, "Mean ra") {
		t.Errorf("missing ra stats in %q", out)
	}
}
