// Public domain.

package archive

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/soniakeys/uastro/table"
)

// DefaultGacsURL is the ESA Gaia archive TAP server.
const DefaultGacsURL = "https://gea.esac.esa.int/tap-server"

// A GacsClient runs ADQL queries against the Gaia archive (GACS).
// The zero value is usable for public queries against the default
// endpoint; call Login before using authenticated operations.
type GacsClient struct {
	BaseURL string // TAP server URL, DefaultGacsURL if empty
	Verbose bool

	hc *http.Client
}

// NewGacs returns a client for the default Gaia archive endpoint.
func NewGacs() *GacsClient {
	return &GacsClient{}
}

func (c *GacsClient) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultGacsURL
}

func (c *GacsClient) httpClient() *http.Client {
	if c.hc == nil {
		jar, _ := cookiejar.New(nil)
		c.hc = &http.Client{Jar: jar}
	}
	return c.hc
}

// Login opens an authenticated archive session.  The session cookie is
// kept in the client and used by subsequent requests.
func (c *GacsClient) Login(username, password string) error {
	resp, err := c.httpClient().PostForm(c.baseURL()+"/login", url.Values{
		"username": {username},
		"password": {password},
	})
	if err != nil {
		return fmt.Errorf("gacs login: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gacs login: %s", resp.Status)
	}
	return nil
}

// QueryToFile runs a synchronous ADQL query and streams the CSV result
// to the named file.
func (c *GacsClient) QueryToFile(query, path string) error {
	resp, err := c.httpClient().PostForm(c.baseURL()+"/tap/sync", url.Values{
		"REQUEST": {"doQuery"},
		"LANG":    {"ADQL"},
		"FORMAT":  {"csv"},
		"QUERY":   {query},
	})
	if err != nil {
		return fmt.Errorf("gacs query: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gacs query: %s: %s",
			resp.Status, strings.TrimSpace(string(body)))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err = io.Copy(f, resp.Body); err != nil {
		// a partial file would be mistaken for a cached result
		f.Close()
		os.Remove(path)
		return fmt.Errorf("gacs query: %w", err)
	}
	return f.Close()
}

// Query runs an ADQL query with a file cache.  If cacheFile exists and
// overwrite is false the file is read back without contacting the
// archive; otherwise the query runs and its result is written there
// first.
func (c *GacsClient) Query(query, cacheFile string, overwrite bool) (*table.Table, error) {
	if _, err := os.Stat(cacheFile); err != nil || overwrite {
		if err := c.QueryToFile(query, cacheFile); err != nil {
			return nil, err
		}
	}
	t, err := table.ReadCSVFile(cacheFile, ',')
	if err != nil {
		return nil, err
	}
	if c.Verbose {
		log.Printf("retrieved %d sources from Gaia catalog in this field", t.Len())
	}
	return t, nil
}

// UploadTable uploads a local votable as a user table named tableName in
// the authenticated user's schema.
func (c *GacsClient) UploadTable(tableName, votPath string) error {
	f, err := os.Open(votPath)
	if err != nil {
		return err
	}
	defer f.Close()
	var buf strings.Builder
	mw := multipart.NewWriter(&buf)
	if err = mw.WriteField("TABLE_NAME", tableName); err != nil {
		return err
	}
	fw, err := mw.CreateFormFile("FILE", filepath.Base(votPath))
	if err != nil {
		return err
	}
	if _, err = io.Copy(fw, f); err != nil {
		return err
	}
	if err = mw.Close(); err != nil {
		return err
	}
	resp, err := c.httpClient().Post(c.baseURL()+"/Upload",
		mw.FormDataContentType(), strings.NewReader(buf.String()))
	if err != nil {
		return fmt.Errorf("gacs upload %s: %w", tableName, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gacs upload %s: %s", tableName, resp.Status)
	}
	return nil
}

// DeleteTable removes a user table from the authenticated user's schema.
func (c *GacsClient) DeleteTable(tableName string) error {
	resp, err := c.httpClient().PostForm(c.baseURL()+"/Upload", url.Values{
		"TABLE_NAME":   {tableName},
		"DELETE_TABLE": {"TRUE"},
	})
	if err != nil {
		return fmt.Errorf("gacs delete %s: %w", tableName, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gacs delete %s: %s", tableName, resp.Status)
	}
	return nil
}

// A ListQuery crossmatches an uploaded list of target identifiers with a
// Gaia archive table on an identifier column.
type ListQuery struct {
	OutDir         string
	InputTable     string // path of a local votable with the identifiers
	InputTableName string // user table name for the upload
	GacsTable      string // e.g. "tgas_source"
	GacsIDColumn   string // e.g. "hip"
	InputIDColumn  string // e.g. "ID_HIP"
	DataRelease    string // ADQL schema, default "gaiadr2"
	Username       string // for the user_<name> schema reference
	OutFile        string // result file; derived from the inputs if empty
	Overwrite      bool
}

// ADQL returns the crossmatch query.
func (q *ListQuery) ADQL() string {
	dr := q.DataRelease
	if dr == "" {
		dr = "gaiadr2"
	}
	return fmt.Sprintf(`
    SELECT * FROM
    (select * FROM %s.%s) AS t
    INNER JOIN
    (select * FROM user_%s.%s) AS t2
    ON (t.%s = t2.%s)
    ;`, dr, q.GacsTable, q.Username, q.InputTableName,
		q.GacsIDColumn, q.InputIDColumn)
}

func (q *ListQuery) outFile() string {
	if q.OutFile != "" {
		return q.OutFile
	}
	return filepath.Join(q.OutDir, fmt.Sprintf("%s_%s_matched_on_%s.csv",
		q.GacsTable, q.InputTableName, q.GacsIDColumn))
}

// Run uploads the identifier list (replacing any previous copy when
// Overwrite is set) and runs the crossmatch, returning the matched
// table.  The client must be logged in.
func (c *GacsClient) Run(q *ListQuery) (*table.Table, error) {
	if q.Overwrite {
		// a previous copy may not exist; ignore the delete error
		c.DeleteTable(q.InputTableName)
		if err := c.UploadTable(q.InputTableName, q.InputTable); err != nil {
			return nil, err
		}
	} else if err := c.UploadTable(q.InputTableName, q.InputTable); err != nil {
		// most likely the table is already uploaded; the query decides
		if c.Verbose {
			log.Printf("upload of %s skipped: %v", q.InputTableName, err)
		}
	}
	return c.Query(q.ADQL(), q.outFile(), q.Overwrite)
}
