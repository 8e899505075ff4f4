/*
Package uastro collects loosely related helpers for astronomical data
analysis.

Contents

	archive     clients for remote astronomical archives: the Gaia archive
	            (GACS), Vizier, Simbad, the exoplanet orbit database, and
	            MPC observatory codes
	casjobs     a client for the CasJobs batch query service, including
	            job-history inspection and status polling
	stats       closed form statistical tests: F-test probability, sigma
	            and fraction conversions, binomial confidence intervals
	astrom      sky geometry: convex hulls, ds9 region files, linear sky
	            motion fits, solar elongation, source density maps
	table       a small column oriented table with CSV I/O and statistics
	sextract    a wrapper around the SExtractor and PSFEx executables
	uplot       recurring plotting tasks: histograms with Gaussian fits,
	            table column plots

Commands conesearch, tabstat, and sexbatch expose common tasks on the
command line.

Archive queries follow a cache-or-fetch idiom throughout: if a named
result file already exists it is read back, otherwise the remote service
is queried and the result written before being returned.  Pass an
overwrite flag to force a fresh query.

---------
Public domain.
*/
package uastro

// Version of the uastro module.
const Version = "0.3"
