// Public domain.

package archive

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultSimbadURL is the CDS Simbad sim-script endpoint.
const DefaultSimbadURL = "http://simbad.u-strasbg.fr/simbad/sim-script"

// A SimbadClient queries Simbad through its script interface.
type SimbadClient struct {
	BaseURL string // DefaultSimbadURL if empty

	HTTPClient *http.Client
}

func (c *SimbadClient) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultSimbadURL
}

func (c *SimbadClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// script runs a sim-script and returns the lines of its data section.
func (c *SimbadClient) script(script string) ([]string, error) {
	u := c.baseURL() + "?" + url.Values{"script": {script}}.Encode()
	resp, err := c.httpClient().Get(u)
	if err != nil {
		return nil, fmt.Errorf("simbad: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("simbad: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("simbad: %s", resp.Status)
	}
	s := string(body)
	if x := strings.Index(s, "::error::"); x >= 0 {
		return nil, fmt.Errorf("simbad: %s", firstDetailLine(s[x:]))
	}
	x := strings.Index(s, "::data::")
	if x < 0 {
		return nil, fmt.Errorf("simbad: no data section in response")
	}
	s = s[x:]
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

// firstDetailLine returns the first non-empty line after a sim-script
// section marker.
func firstDetailLine(s string) string {
	for _, l := range strings.Split(s, "\n")[1:] {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	return "query error"
}

// QueryObjectIDs returns all identifiers Simbad knows for an object.
func (c *SimbadClient) QueryObjectIDs(id string) ([]string, error) {
	script := "output console=off script=off\n" +
		"format object \"%IDLIST\"\n" +
		"query id " + id + "\n"
	return c.script(script)
}

// GaiaDR2SourceID resolves a Simbad identifier to a Gaia DR2 source id.
// Zero is returned, without error, when the object has no DR2 identifier.
func (c *SimbadClient) GaiaDR2SourceID(id string) (int64, error) {
	ids, err := c.QueryObjectIDs(id)
	if err != nil {
		return 0, err
	}
	for _, s := range ids {
		if rest, ok := strings.CutPrefix(s, "Gaia DR2 "); ok {
			return strconv.ParseInt(strings.TrimSpace(rest), 10, 64)
		}
	}
	return 0, nil
}

// Votable field names accepted by QueryObject, mapped to sim-script
// format codes.
var simbadFieldCodes = map[string]string{
	"ra(d)":    "%COO(d;A)",
	"dec(d)":   "%COO(d;D)",
	"pmra":     "%PM(A)",
	"pmdec":    "%PM(D)",
	"parallax": "%PLX(V)",
	"sptype":   "%SP(S)",
	"main_id":  "%MAIN_ID",
}

// DefaultSimbadFields are the fields Source.SetSimbadFields requests
// when given none.
var DefaultSimbadFields = []string{
	"ra(d)", "dec(d)", "pmdec", "pmra", "parallax", "sptype"}

// QueryObject returns the requested fields for one object.  Field names
// are the keys of simbadFieldCodes.
func (c *SimbadClient) QueryObject(id string, fields []string) (map[string]string, error) {
	codes := make([]string, len(fields))
	for i, f := range fields {
		code, ok := simbadFieldCodes[f]
		if !ok {
			return nil, fmt.Errorf("simbad: unknown field %q", f)
		}
		codes[i] = code
	}
	script := "output console=off script=off\n" +
		"format object \"" + strings.Join(codes, "|") + "\"\n" +
		"query id " + id + "\n"
	lines, err := c.script(script)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("simbad: no result for %q", id)
	}
	vals := strings.Split(lines[0], "|")
	if len(vals) != len(fields) {
		return nil, fmt.Errorf("simbad: got %d fields for %q, want %d",
			len(vals), id, len(fields))
	}
	m := make(map[string]string, len(fields))
	for i, f := range fields {
		m[f] = strings.TrimSpace(vals[i])
	}
	return m, nil
}

// A Source is an astronomical source with parameters retrieved from
// Simbad and cached on disk.
type Source struct {
	Identifier string
	Params     map[string]string
}

// NewSource returns a source with the given identifier and no
// parameters.
func NewSource(identifier string) *Source {
	return &Source{Identifier: identifier}
}

func (s *Source) String() string {
	return fmt.Sprintf("<Source id=%s>", s.Identifier)
}

// cacheFile used by SetSimbadFields.
func (s *Source) cacheFile(outDir string) string {
	return filepath.Join(outDir, s.Identifier+"_simbad_parameters.txt")
}

// SetSimbadFields fills the source parameters from Simbad, caching them
// in outDir.  A nil fields slice requests DefaultSimbadFields.
func (s *Source) SetSimbadFields(c *SimbadClient, simbadID, outDir string, overwrite bool, fields []string) error {
	if fields == nil {
		fields = DefaultSimbadFields
	}
	cf := s.cacheFile(outDir)
	if _, err := os.Stat(cf); err == nil && !overwrite {
		return s.readCache(cf)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	m, err := c.QueryObject(simbadID, fields)
	if err != nil {
		return err
	}
	s.Params = m
	return s.writeCache(cf, fields)
}

// Float returns a parameter as float64.
func (s *Source) Float(field string) (float64, error) {
	v, ok := s.Params[field]
	if !ok {
		return 0, fmt.Errorf("source %s: no field %q", s.Identifier, field)
	}
	return strconv.ParseFloat(v, 64)
}

func (s *Source) writeCache(path string, fields []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	var vals []string
	for _, fd := range fields {
		vals = append(vals, s.Params[fd])
	}
	fmt.Fprintln(f, strings.Join(fields, ","))
	fmt.Fprintln(f, strings.Join(vals, ","))
	return f.Close()
}

func (s *Source) readCache(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	lines := strings.SplitN(strings.TrimSpace(string(b)), "\n", 2)
	if len(lines) != 2 {
		return fmt.Errorf("source %s: bad cache file %s", s.Identifier, path)
	}
	names := strings.Split(lines[0], ",")
	vals := strings.Split(lines[1], ",")
	if len(names) != len(vals) {
		return fmt.Errorf("source %s: bad cache file %s", s.Identifier, path)
	}
	s.Params = make(map[string]string, len(names))
	for i, n := range names {
		s.Params[n] = vals[i]
	}
	return nil
}
