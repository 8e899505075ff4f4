// Public domain.

// Package casjobs implements a client for CasJobs batch query services,
// such as the one in front of the MAST and SDSS archives.
//
// CasJobs runs submitted SQL asynchronously.  A submitted query becomes a
// job with a numeric status code; finished jobs leave their result in a
// MyDB table which must be extracted and downloaded separately.  The
// client here covers job submission, job-history inspection, and the
// extract-and-download step, plus the polling logic in ExecuteQuery that
// ties them together.
package casjobs

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the GALEX/MAST CasJobs service endpoint.  See
// https://galex.stsci.edu/casjobs/download/casjobs.config.x for the
// corresponding client configuration.
const DefaultBaseURL = "http://mastweb.stsci.edu/gcasjobs/services/jobs.asmx"

// Status is a CasJobs job status code, from
// http://casjobs.sdss.org/casjobs/services/jobs.asmx?op=GetJobStatus.
type Status int

const (
	Ready Status = iota
	Started
	Canceling
	Cancelled
	Failed
	Finished
)

var statusNames = []string{
	"ready", "started", "canceling", "cancelled", "failed", "finished"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "status " + strconv.Itoa(int(s))
	}
	return statusNames[s]
}

// A Job is one entry of the CasJobs job history.
type Job struct {
	ID         int    `xml:"JobID"`
	Status     Status `xml:"Status"`
	Query      string `xml:"Query"`
	TaskName   string `xml:"TaskName"`
	TimeSubmit string `xml:"TimeSubmit"`
	OutputLoc  string `xml:"OutputLoc"`
}

// timeSubmit layouts seen from CasJobs services.
var timeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"1/2/2006 3:04:05 PM",
}

// SubmitMJD returns the job submission time as a modified Julian date,
// or 0 if the time string does not parse.
func (j *Job) SubmitMJD() float64 {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, j.TimeSubmit); err == nil {
			return mjd(t)
		}
	}
	return 0
}

// A Client issues requests against a CasJobs service.
type Client struct {
	BaseURL  string // service URL, DefaultBaseURL if empty
	UserID   string // CasJobs wsid
	Password string

	// HTTPClient may be set to control timeouts.  Nil means
	// http.DefaultClient.
	HTTPClient *http.Client

	// PollInterval is the delay between job status polls while waiting
	// for an extract job.  Zero means a 10 second default.
	PollInterval time.Duration

	Verbose bool
}

// New returns a client for the default MAST endpoint.
func New(userID, password string) *Client {
	return &Client{UserID: userID, Password: password}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultBaseURL
}

// call posts form values to a jobs.asmx method and decodes the XML
// response body into result, when result is non-nil.
func (c *Client) call(method string, params url.Values, result interface{}) error {
	params.Set("wsid", c.UserID)
	params.Set("pw", c.Password)
	resp, err := c.httpClient().PostForm(c.baseURL()+"/"+method, params)
	if err != nil {
		return fmt.Errorf("casjobs %s: %w", method, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("casjobs %s: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("casjobs %s: %s: %s",
			method, resp.Status, strings.TrimSpace(string(body)))
	}
	if result == nil {
		return nil
	}
	if err = xml.Unmarshal(body, result); err != nil {
		return fmt.Errorf("casjobs %s: %w", method, err)
	}
	return nil
}

// scalar response body such as <long>12345</long> or <int>5</int>
type xmlScalar struct {
	Value string `xml:",chardata"`
}

type xmlJobs struct {
	Jobs []Job `xml:"CJJob"`
}

// Jobs returns the job history, most recent submission first.  The
// service reports oldest first; the order is reversed here.
func (c *Client) Jobs() ([]Job, error) {
	var v xmlJobs
	err := c.call("GetJobs", url.Values{
		"conditions":    {""},
		"includeSystem": {"false"},
	}, &v)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(v.Jobs)-1; i < j; i, j = i+1, j-1 {
		v.Jobs[i], v.Jobs[j] = v.Jobs[j], v.Jobs[i]
	}
	return v.Jobs, nil
}

// JobStatus returns the current status code of a job.
func (c *Client) JobStatus(jobID int) (Status, error) {
	var v xmlScalar
	err := c.call("GetJobStatus",
		url.Values{"jobId": {strconv.Itoa(jobID)}}, &v)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.Value))
	if err != nil {
		return 0, fmt.Errorf("casjobs GetJobStatus: %v", err)
	}
	return Status(n), nil
}

// Submit submits a query to run in the given context, returning the
// job ID.
func (c *Client) Submit(query, context string) (int, error) {
	var v xmlScalar
	err := c.call("SubmitJob", url.Values{
		"qry":      {query},
		"context":  {context},
		"taskname": {"uastro"},
		"estimate": {"30"},
	}, &v)
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(strings.TrimSpace(v.Value))
	if err != nil {
		return 0, fmt.Errorf("casjobs SubmitJob: %v", err)
	}
	return id, nil
}

// DropTable drops a MyDB table.
func (c *Client) DropTable(table string) error {
	return c.call("ExecuteQuickJob", url.Values{
		"qry":      {"DROP TABLE " + table},
		"context":  {"MYDB"},
		"taskname": {"uastro drop"},
		"isSystem": {"false"},
	}, nil)
}

// RequestOutput submits an extract job for a MyDB table.  Format is a
// CasJobs output type such as "FITS" or "CSV".
func (c *Client) RequestOutput(table, format string) (int, error) {
	var v xmlScalar
	err := c.call("SubmitExtractJob", url.Values{
		"tableName": {table},
		"type":      {format},
	}, &v)
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(strings.TrimSpace(v.Value))
	if err != nil {
		return 0, fmt.Errorf("casjobs SubmitExtractJob: %v", err)
	}
	return id, nil
}

// RequestAndGetOutput extracts a MyDB table and downloads the result to
// outFile.  It blocks, polling the extract job until it finishes.
func (c *Client) RequestAndGetOutput(table, format, outFile string) error {
	id, err := c.RequestOutput(table, format)
	if err != nil {
		return err
	}
	iv := c.PollInterval
	if iv == 0 {
		iv = 10 * time.Second
	}
	for {
		st, err := c.JobStatus(id)
		if err != nil {
			return err
		}
		switch st {
		case Finished:
			return c.downloadOutput(id, outFile)
		case Cancelled, Failed:
			return fmt.Errorf("casjobs: extract job %d %s", id, st)
		}
		time.Sleep(iv)
	}
}

// downloadOutput locates the output URL of a finished extract job in the
// job history and downloads it.
func (c *Client) downloadOutput(jobID int, outFile string) error {
	jobs, err := c.Jobs()
	if err != nil {
		return err
	}
	var loc string
	for i := range jobs {
		if jobs[i].ID == jobID {
			loc = jobs[i].OutputLoc
			break
		}
	}
	if loc == "" {
		return fmt.Errorf("casjobs: no output location for job %d", jobID)
	}
	resp, err := c.httpClient().Get(loc)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("casjobs: download %s: %s", loc, resp.Status)
	}
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if _, err = io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(outFile)
		return fmt.Errorf("casjobs: download %s: %w", loc, err)
	}
	return f.Close()
}
