// Public domain.

package archive

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/soniakeys/uastro/table"
)

// DefaultVizierSite is the CDS Strasbourg Vizier mirror.
const DefaultVizierSite = "http://cdsarc.u-strasbg.fr"

// A VizierQuery retrieves a Vizier catalog through the vizquery command
// line tool.
type VizierQuery struct {
	Catalog   string // Vizier catalog designation, e.g. "I/239/hip_main"
	Name      string // short name used for the cache files
	OutDir    string
	MaxRows   int    // default 1000000
	Site      string // default DefaultVizierSite
	Overwrite bool
}

func (q *VizierQuery) maxRows() int {
	if q.MaxRows > 0 {
		return q.MaxRows
	}
	return 1000000
}

func (q *VizierQuery) site() string {
	if q.Site != "" {
		return q.Site
	}
	return DefaultVizierSite
}

// QueryFile returns the path of the raw vizquery response cache.
func (q *VizierQuery) QueryFile() string {
	return filepath.Join(q.OutDir, q.Name+"_query.txt")
}

// Run runs vizquery, unless a cached response already exists, and
// returns the catalog as a table.
func (q *VizierQuery) Run() (*table.Table, error) {
	qf := q.QueryFile()
	if _, err := os.Stat(qf); err != nil || q.Overwrite {
		if err := q.fetch(qf); err != nil {
			return nil, err
		}
	}
	f, err := os.Open(qf)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseVizier(f)
}

// fetch invokes vizquery with its output directed to path.
func (q *VizierQuery) fetch(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	cmd := exec.Command("vizquery",
		"-mime=csv",
		"-site="+q.site(),
		"-source="+q.Catalog,
		"-out.all",
		fmt.Sprintf("-out.max=%d", q.maxRows()))
	cmd.Stdout = f
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("vizquery %s: %v: %s",
			q.Catalog, err, strings.TrimSpace(stderr.String()))
	}
	return f.Close()
}

// parseVizier reads the semicolon delimited vizquery csv response.
// The response carries # comment lines, then a header line, then two
// decoration lines (units and dashes) before the data.
func parseVizier(f *os.File) (*table.Table, error) {
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	var header []string
	var t *table.Table
	skip := 0
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		if header == nil {
			for _, h := range strings.Split(line, ";") {
				header = append(header, strings.TrimSpace(h))
			}
			t = table.New(header...)
			skip = 2 // unit and dash lines follow the header
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) != len(header) {
			continue // trailer lines
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if err := t.AppendRow(fields...); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("vizier: no header in %s", f.Name())
	}
	return t, nil
}
