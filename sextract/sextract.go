// Public domain.

// Package sextract wraps the SExtractor and PSFEx source extraction
// executables.
//
// A Runner describes where the executables and their configuration
// files live and how images should be processed.  Run then drives the
// extraction of a list of FITS images, skipping images whose catalogs
// already exist.  In PSFEx mode each image goes through three steps: a
// preparatory SExtractor run, a PSF fit with PSFEx, and a final
// SExtractor run using the fitted PSF.
package sextract

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// check image prefixes produced by the PSFEx step
var checkImagePrefixes = []string{
	"psf_prototype", "psf_samples", "psf_residuals", "psf_snapshots"}

// A Runner holds the configuration of a source extraction pass.
type Runner struct {
	// ConfigDir contains the parameter and configuration files.  Files
	// are looked up as <prefix>.sex_config, <prefix>.sex_param,
	// <prefix>*.sex_conv, and in PSFEx mode additionally
	// <prefix>_prepare_for_psfex.sex_config,
	// <prefix>_prepare_for_psfex.sex_param and <prefix>.psfex_config.
	ConfigDir string

	// SourceDir contains the sex and psfex executables.  Empty means
	// they are found on PATH.
	SourceDir string

	// ConfigPrefix defaults to "default".
	ConfigPrefix string

	// OutDir receives catalogs and other products.  Empty means next to
	// the input images.
	OutDir string

	// FitsExtension selects one extension of multi-extension images.
	// Nil processes the primary HDU.
	FitsExtension *int

	// Weight is a weight image for the final PSFEx-mode run.  Empty
	// selects WEIGHT_TYPE NONE.
	Weight string

	// Saturation levels in ADU for the final and the preparatory runs.
	// Zero values select 60000 and 50000.
	SaturationLevel     float64
	PrepSaturationLevel float64

	UsePSFEx  bool
	Overwrite bool
	Verbose   bool
}

func (r *Runner) configPrefix() string {
	if r.ConfigPrefix != "" {
		return r.ConfigPrefix
	}
	return "default"
}

func (r *Runner) saturation() float64 {
	if r.SaturationLevel > 0 {
		return r.SaturationLevel
	}
	return 60000
}

func (r *Runner) prepSaturation() float64 {
	if r.PrepSaturationLevel > 0 {
		return r.PrepSaturationLevel
	}
	return 50000
}

// executable returns the path of an executable in SourceDir, or the
// bare name for a PATH lookup.
func (r *Runner) executable(name string) string {
	if r.SourceDir == "" {
		return name
	}
	return filepath.Join(r.SourceDir, name)
}

// convFilter locates the convolution filter for source detection.
func (r *Runner) convFilter() (string, error) {
	m, err := filepath.Glob(
		filepath.Join(r.ConfigDir, r.configPrefix()+"*.sex_conv"))
	if err != nil {
		return "", err
	}
	if len(m) == 0 {
		return "", fmt.Errorf("sextract: no %s*.sex_conv in %s",
			r.configPrefix(), r.ConfigDir)
	}
	return m[0], nil
}

func (r *Runner) extensionSuffix() string {
	if r.FitsExtension == nil {
		return ""
	}
	return fmt.Sprintf("[%d]", *r.FitsExtension)
}

// Products are the output file names derived from one input image.
type Products struct {
	Catalog     string // .cat
	PrepCatalog string // _prep.cat
	PSF         string // _prep.psf
	PSFExXML    string // _psfex.xml
	PrepXML     string // _prepsfex.xml
	SexXML      string // _sex.xml
}

// ProductsFor returns the products of one image in the output
// directory.
func (r *Runner) ProductsFor(image string) Products {
	outDir := r.OutDir
	if outDir == "" {
		outDir = filepath.Dir(image)
	}
	o := filepath.Join(outDir, filepath.Base(image))
	repl := func(suffix string) string {
		return strings.TrimSuffix(o, ".fits") + suffix
	}
	return Products{
		Catalog:     repl(".cat"),
		PrepCatalog: repl("_prep.cat"),
		PSF:         repl("_prep.psf"),
		PSFExXML:    repl("_psfex.xml"),
		PrepXML:     repl("_prepsfex.xml"),
		SexXML:      repl("_sex.xml"),
	}
}

// Run extracts sources from each image in files.
func (r *Runner) Run(ctx context.Context, files []string) error {
	for _, file := range files {
		if r.Verbose {
			log.Printf("working on %s", file)
		}
		var err error
		if r.UsePSFEx {
			err = r.runPSFEx(ctx, file)
		} else {
			err = r.runPlain(ctx, file)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// runPlain performs a single SExtractor run on one image.
func (r *Runner) runPlain(ctx context.Context, file string) error {
	p := r.ProductsFor(file)
	if _, err := os.Stat(p.Catalog); err == nil && !r.Overwrite {
		return nil
	}
	conv, err := r.convFilter()
	if err != nil {
		return err
	}
	cfg := filepath.Join(r.ConfigDir, r.configPrefix()+".sex_config")
	return r.command(ctx, "sex",
		file+r.extensionSuffix(),
		"-c", cfg,
		"-CATALOG_NAME", p.Catalog,
		"-XML_NAME", p.SexXML,
		"-WEIGHT_TYPE", "NONE",
		"-FILTER_NAME", conv,
	)
}

// runPSFEx performs the three step extraction with a PSF model.
func (r *Runner) runPSFEx(ctx context.Context, file string) error {
	p := r.ProductsFor(file)
	if _, err := os.Stat(p.PSF); err == nil && !r.Overwrite {
		return nil
	}
	conv, err := r.convFilter()
	if err != nil {
		return err
	}
	prefix := r.configPrefix()
	prepCfg := filepath.Join(r.ConfigDir, prefix+"_prepare_for_psfex.sex_config")
	prepParam := filepath.Join(r.ConfigDir, prefix+"_prepare_for_psfex.sex_param")
	psfexCfg := filepath.Join(r.ConfigDir, prefix+".psfex_config")
	cfg := filepath.Join(r.ConfigDir, prefix+".sex_config")
	param := filepath.Join(r.ConfigDir, prefix+".sex_param")

	// preparatory catalog for the PSF fit
	err = r.command(ctx, "sex",
		file+r.extensionSuffix(),
		"-c", prepCfg,
		"-CATALOG_NAME", p.PrepCatalog,
		"-SATUR_LEVEL", fmt.Sprintf("%3.1f", r.prepSaturation()),
		"-XML_NAME", p.PrepXML,
		"-WEIGHT_TYPE", "NONE",
		"-PARAMETERS_NAME", prepParam,
		"-FILTER_NAME", conv,
	)
	if err != nil {
		return err
	}

	// compute the PSF with PSFEx
	outDir := filepath.Dir(p.Catalog)
	check := make([]string, len(checkImagePrefixes))
	for i, pre := range checkImagePrefixes {
		check[i] = filepath.Join(outDir, pre+"_"+filepath.Base(file))
	}
	err = r.command(ctx, "psfex",
		p.PrepCatalog,
		"-c", psfexCfg,
		"-XML_NAME", p.PSFExXML,
		"-CHECKIMAGE_NAME", strings.Join(check, ","),
	)
	if err != nil {
		return err
	}

	// final astrometry and photometry, now with the PSF model
	if r.Weight != "" {
		return r.command(ctx, "sex",
			file+r.extensionSuffix(),
			"-c", cfg,
			"-CATALOG_NAME", p.Catalog,
			"-PSF_NAME", p.PSF,
			"-XML_NAME", p.SexXML,
			"-WEIGHT_TYPE", "MAP_WEIGHT",
			"-WEIGHT_IMAGE", r.Weight,
			"-PARAMETERS_NAME", param,
			"-FILTER_NAME", conv,
			"-SATUR_LEVEL", fmt.Sprintf("%3.1f", r.saturation()),
		)
	}
	err = r.command(ctx, "sex",
		file+r.extensionSuffix(),
		"-c", cfg,
		"-CATALOG_NAME", p.Catalog,
		"-PSF_NAME", p.PSF,
		"-XML_NAME", p.SexXML,
		"-WEIGHT_TYPE", "NONE",
		"-PARAMETERS_NAME", param,
		"-FILTER_NAME", conv,
		"-SATUR_LEVEL", fmt.Sprintf("%3.1f", r.saturation()),
	)
	if err != nil {
		return err
	}
	// the preparatory catalog is only needed for the PSF fit
	os.Remove(p.PrepCatalog)
	return nil
}

// command runs one executable, wrapping any failure with the full
// command line.
func (r *Runner) command(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, r.executable(name), args...)
	if r.Verbose {
		log.Printf("executing %s", strings.Join(cmd.Args, " "))
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("sextract: %s: %v\n%s",
			strings.Join(cmd.Args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}
