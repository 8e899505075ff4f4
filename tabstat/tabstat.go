/*
Command tabstat prints basic statistics of the columns of a delimited
table, and optionally plots each column against row number.

Usage:

	tabstat [options] <csvfile>

Mean, median and standard deviation are printed for every column that
parses as numeric; other columns are skipped.

Options:

	-d <delim>    field delimiter (default ,)
	-head <n>     also print the first n rows of the table
	-p <dir>      also write per-column plots into this directory
	-v            display version and copyright

-------------
Public domain.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/soniakeys/exit"

	"github.com/soniakeys/uastro/table"
	"github.com/soniakeys/uastro/uplot"
)

const versionString = "tabstat version 0.3"
const copyrightString = "Public domain."

func main() {
	defer exit.Handler()

	delim := flag.String("d", ",", "field delimiter")
	head := flag.Int("head", 0, "print the first `n` rows")
	plotDir := flag.String("p", "", "directory for per-column plots")
	vers := flag.Bool("v", false, "display version and copyright")
	flag.Usage = func() {
		os.Stderr.WriteString(
			"Usage: tabstat [options] <csvfile>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *vers {
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	if len(*delim) != 1 {
		exit.Log("delimiter must be a single character")
	}

	fn := flag.Arg(0)
	t, err := table.ReadCSVFile(fn, rune((*delim)[0]))
	if err != nil {
		exit.Log(err)
	}
	if *head > 0 {
		if err = t.Fprint(os.Stdout, *head); err != nil {
			exit.Log(err)
		}
		fmt.Println()
	}
	t.PrintColumnStatistics(os.Stdout)

	if *plotDir != "" {
		seed := strings.TrimSuffix(filepath.Base(fn), filepath.Ext(fn))
		err = uplot.PlotColumns(t, *plotDir, seed, uplot.ColumnPlotOptions{})
		if err != nil {
			exit.Log(err)
		}
	}
}
