// Public domain.

package archive

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/uastro/table"
)

// A ConeSearch retrieves all catalog sources within a circular sky
// region from the Gaia archive.
type ConeSearch struct {
	RA, Dec   unit.Angle // search center, ICRS
	Radius    unit.Angle
	OutDir    string
	Catalog   string // default "gaiadr1.gaia_source"
	Tag       string // distinguishes cache files for equal catalogs
	Overwrite bool
}

// ADQL returns the cone search query.
func (s *ConeSearch) ADQL() string {
	return fmt.Sprintf(
		"SELECT * FROM %s WHERE 1 = CONTAINS(POINT('ICRS', ra, dec),CIRCLE('ICRS', %v, %v, %v))",
		s.catalog(), s.RA.Deg(), s.Dec.Deg(), s.Radius.Deg())
}

func (s *ConeSearch) catalog() string {
	if s.Catalog != "" {
		return s.Catalog
	}
	return "gaiadr1.gaia_source"
}

// CacheFile returns the result file the search caches to, named for the
// catalog, tag and search area.
func (s *ConeSearch) CacheFile() string {
	area := s.Radius.Deg() * 2
	return filepath.Join(s.OutDir,
		fmt.Sprintf("%s_%s_gaia_query_result_area%2.3f.csv",
			s.catalog(), s.Tag, area*area))
}

// GaiaSources runs the cone search and returns the resulting table
// along with the source sky coordinates from its ra and dec columns.
func (c *GacsClient) GaiaSources(s *ConeSearch) (*table.Table, coord.EquaS, error) {
	if c.Verbose {
		log.Print(s.ADQL())
	}
	t, err := c.Query(s.ADQL(), s.CacheFile(), s.Overwrite)
	if err != nil {
		return nil, nil, err
	}
	cat, err := SkyCoords(t, "ra", "dec")
	if err != nil {
		return nil, nil, err
	}
	return t, cat, nil
}

// SkyCoords builds equatorial coordinates from two table columns holding
// degrees.
func SkyCoords(t *table.Table, raCol, decCol string) (coord.EquaS, error) {
	ra, err := t.Floats(raCol)
	if err != nil {
		return nil, err
	}
	dec, err := t.Floats(decCol)
	if err != nil {
		return nil, err
	}
	cat := make(coord.EquaS, len(ra))
	for i := range cat {
		cat[i] = coord.Equa{
			RA:  unit.RAFromDeg(ra[i]),
			Dec: unit.AngleFromDeg(dec[i]),
		}
	}
	return cat, nil
}
