/*
Command sexbatch runs SExtractor, optionally with a PSFEx model, over a
list of FITS images.

Usage:

	sexbatch [options] <fits-file>...

Catalogs are written next to the input images unless -o names an output
directory.  Images whose catalog already exists are skipped unless
-overwrite is given.

Options:

	-c <dir>       directory with SExtractor configuration files (required)
	-s <dir>       directory with the sex and psfex executables
	-prefix <p>    configuration file prefix (default "default")
	-o <dir>       output directory
	-e <n>         FITS extension to process
	-w <image>     weight image for the final run
	-psfex         fit a PSF model with PSFEx before the final run
	-overwrite     redo images whose catalog exists
	-v             display version and copyright

-------------
Public domain.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/soniakeys/exit"

	"github.com/soniakeys/uastro/sextract"
)

const versionString = "sexbatch version 0.3"
const copyrightString = "Public domain."

func main() {
	defer exit.Handler()

	configDir := flag.String("c", "", "configuration directory")
	sourceDir := flag.String("s", "", "executable directory")
	prefix := flag.String("prefix", "", "configuration file prefix")
	outDir := flag.String("o", "", "output directory")
	ext := flag.Int("e", -1, "FITS extension")
	weight := flag.String("w", "", "weight image")
	psfex := flag.Bool("psfex", false, "use a PSFEx model")
	overwrite := flag.Bool("overwrite", false, "redo existing catalogs")
	vers := flag.Bool("v", false, "display version and copyright")
	flag.Usage = func() {
		os.Stderr.WriteString(
			"Usage: sexbatch [options] <fits-file>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *vers {
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *configDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	r := &sextract.Runner{
		ConfigDir:    *configDir,
		SourceDir:    *sourceDir,
		ConfigPrefix: *prefix,
		OutDir:       *outDir,
		Weight:       *weight,
		UsePSFEx:     *psfex,
		Overwrite:    *overwrite,
		Verbose:      true,
	}
	if *ext >= 0 {
		r.FitsExtension = ext
	}
	if err := r.Run(context.Background(), flag.Args()); err != nil {
		exit.Log(err)
	}
}
