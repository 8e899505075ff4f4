/*
Command conesearch retrieves Gaia sources within a circular sky region
and caches them as a CSV table.

Usage:

	conesearch [options] <ra> <dec>

Ra and dec are the search center in ICRS degrees.

Options:

	-r <radius>     search radius in degrees (default 0.1)
	-o <dir>        output directory for the result table (default .)
	-cat <catalog>  archive table to query (default gaiadr1.gaia_source)
	-t <tag>        tag distinguishing cached result files
	-f              force a fresh query even if a cached result exists
	-login          open an authenticated archive session first
	-creds <file>   credentials file for -login (default ~/.uastro.yaml)
	-v              display version and copyright

-------------
Public domain.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/soniakeys/exit"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/uastro/archive"
)

const versionString = "conesearch version 0.3"
const copyrightString = "Public domain."

func main() {
	defer exit.Handler()

	radius := flag.Float64("r", .1, "search radius in degrees")
	outDir := flag.String("o", ".", "output directory")
	catalog := flag.String("cat", "", "archive table to query")
	tag := flag.String("t", "", "tag for cached result files")
	force := flag.Bool("f", false, "force a fresh query")
	login := flag.Bool("login", false, "open an authenticated archive session")
	creds := flag.String("creds", archive.DefaultCredentialsPath(),
		"credentials file for -login")
	vers := flag.Bool("v", false, "display version and copyright")
	flag.Usage = func() {
		os.Stderr.WriteString(`
Usage: conesearch [options] <ra> <dec>    retrieve Gaia sources around ra, dec
       conesearch -v                      display version and copyright

Options:
       -r <radius-deg>
       -o <output-dir>
       -cat <catalog>
       -t <tag>
       -f
       -login
       -creds <file>
`)
	}
	flag.Parse()
	if *vers {
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	}
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	ra, err := strconv.ParseFloat(flag.Arg(0), 64)
	if err != nil {
		exit.Log("ra: ", err)
	}
	dec, err := strconv.ParseFloat(flag.Arg(1), 64)
	if err != nil {
		exit.Log("dec: ", err)
	}

	s := &archive.ConeSearch{
		RA:        unit.AngleFromDeg(ra),
		Dec:       unit.AngleFromDeg(dec),
		Radius:    unit.AngleFromDeg(*radius),
		OutDir:    *outDir,
		Catalog:   *catalog,
		Tag:       *tag,
		Overwrite: *force,
	}
	c := archive.NewGacs()
	c.Verbose = true
	if *login {
		cr, err := archive.LoadCredentials(*creds)
		if err != nil {
			exit.Log(err)
		}
		if err = c.Login(cr.Gacs.User, cr.Gacs.Password); err != nil {
			exit.Log(err)
		}
	}
	t, cat, err := c.GaiaSources(s)
	if err != nil {
		exit.Log(err)
	}
	fmt.Printf("center %v %v\n",
		sexa.FmtRA(unit.RAFromDeg(ra)), sexa.FmtAngle(unit.AngleFromDeg(dec)))
	fmt.Printf("%d sources, %d columns, cached in %s\n",
		len(cat), len(t.ColNames()), s.CacheFile())
}
