// Public domain.

package archive

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/soniakeys/uastro/table"
)

// EODUrl is the exoplanets.org CSV export of the exoplanet orbit
// database.
var EODUrl = "http://exoplanets.org/csv-files/exoplanets.csv"

// identifiers that Simbad cannot resolve usefully; matched exactly
var eodSkipNames = map[string]bool{
	"Qatar-1":      true,
	"Qatar-2":      true,
	"TYC":          true,
	"KIC":          true,
	"CoRoT 12":     true,
	"CoRoT-Exo 12": true,
}

// the Simbad entry for HD 114762 lacks the DR2 identifier
const hd114762DR2 = 3937211745904553600

// EODOptions control ExoplanetOrbitDatabase.
type EODOptions struct {
	Overwrite bool

	// KeepOnlyMostMassive keeps only the most massive planet of each
	// system.  Systems whose planets all lack a mass estimate are
	// dropped entirely.
	KeepOnlyMostMassive bool

	Verbose bool
}

// ExoplanetOrbitDatabase returns the exoplanet orbit database with a
// gaia_dr2_source_id column added by resolving each SIMBADNAME through
// Simbad.  Rows that resolve to no Gaia DR2 source are dropped.  The
// resolved table is cached in dataDir.
func ExoplanetOrbitDatabase(dataDir string, sim *SimbadClient, opt EODOptions) (*table.Table, error) {
	cacheFile := filepath.Join(dataDir, "exoplanet_orbit_database_table.csv")
	if _, err := os.Stat(cacheFile); err == nil && !opt.Overwrite {
		return table.ReadCSVFile(cacheFile, ',')
	}
	t, err := fetchEOD()
	if err != nil {
		return nil, err
	}
	if err = resolveGaiaIDs(t, sim, opt.Verbose); err != nil {
		return nil, err
	}
	if opt.KeepOnlyMostMassive {
		if err = keepMostMassive(t); err != nil {
			return nil, err
		}
	}
	if err = t.WriteCSVFile(cacheFile, ','); err != nil {
		return nil, err
	}
	return t, nil
}

func fetchEOD() (*table.Table, error) {
	resp, err := http.Get(EODUrl)
	if err != nil {
		return nil, fmt.Errorf("exoplanet orbit database: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exoplanet orbit database: %s", resp.Status)
	}
	t, err := table.ReadCSV(resp.Body, ',')
	if err != nil {
		return nil, fmt.Errorf("exoplanet orbit database: %w", err)
	}
	return t, nil
}

// resolveGaiaIDs adds the gaia_dr2_source_id column and drops rows
// without an id.
func resolveGaiaIDs(t *table.Table, sim *SimbadClient, verbose bool) error {
	names, err := t.Column("SIMBADNAME")
	if err != nil {
		return err
	}
	ids := make([]float64, len(names))
	idStrs := make([]string, len(names))
	for i, name := range names {
		var id int64
		if name != "" && !eodSkipNames[name] {
			if verbose {
				log.Printf("working on %s", name)
			}
			id, err = sim.GaiaDR2SourceID(name)
			if err != nil {
				// unresolvable names behave like missing ids
				id = 0
			}
			if strings.Contains(name, "114762") {
				id = hd114762DR2
			}
		}
		ids[i] = float64(id)
		idStrs[i] = strconv.FormatInt(id, 10)
	}
	if err = t.AddColumn("gaia_dr2_source_id", idStrs); err != nil {
		return err
	}
	t.Filter(func(row int) bool { return ids[row] != 0 })
	return nil
}

// keepMostMassive keeps, per Gaia source, only the row with the largest
// MASS.  Sources left with several rows of one identical mass value are
// dropped; among remaining ties, zero-mass rows are dropped.
func keepMostMassive(t *table.Table) error {
	ids, err := t.Column("gaia_dr2_source_id")
	if err != nil {
		return err
	}
	masses, err := t.Column("MASS")
	if err != nil {
		return err
	}
	mass := make([]float64, len(masses))
	for i, s := range masses {
		// a missing mass estimate counts as zero
		mass[i], _ = strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	// first pass: within each source, drop planets lighter than the
	// most massive one
	var drop []int
	for _, rows := range groupRows(ids) {
		if len(rows) == 1 {
			continue
		}
		max := mass[rows[0]]
		for _, r := range rows[1:] {
			if mass[r] > max {
				max = mass[r]
			}
		}
		for _, r := range rows {
			if mass[r] < max {
				drop = append(drop, r)
			}
		}
	}
	t.RemoveRows(drop)

	// second pass: sources still holding several rows are mass ties.
	// with only one distinct mass value there is nothing to choose
	// between, so the source goes; otherwise drop the zero-mass rows.
	ids, err = t.Column("gaia_dr2_source_id")
	if err != nil {
		return err
	}
	masses, err = t.Column("MASS")
	if err != nil {
		return err
	}
	mass = mass[:0]
	for _, s := range masses {
		m, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
		mass = append(mass, m)
	}
	drop = drop[:0]
	for _, rows := range groupRows(ids) {
		if len(rows) == 1 {
			continue
		}
		distinct := map[float64]bool{}
		for _, r := range rows {
			distinct[mass[r]] = true
		}
		if len(distinct) == 1 {
			drop = append(drop, rows...)
			continue
		}
		for _, r := range rows {
			if mass[r] == 0 {
				drop = append(drop, r)
			}
		}
	}
	t.RemoveRows(drop)
	return nil
}

func groupRows(keys []string) map[string][]int {
	g := make(map[string][]int)
	for i, k := range keys {
		g[k] = append(g[k], i)
	}
	return g
}
