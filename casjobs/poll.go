// Public domain.

package casjobs

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// JD of MJD 0
const jMod = 2400000.5

func mjd(t time.Time) float64 {
	return julian.TimeToJD(t) - jMod
}

// FindLatest returns the index in jobs of the most recent job whose
// query matches the given query, comparing with surrounding white space
// trimmed.  Ok is false if the query was never submitted.  When several
// jobs match, the one with the largest submission time wins.
//
// Jobs is expected most-recent-first, as returned by Client.Jobs.
func FindLatest(query string, jobs []Job, verbose bool) (index int, ok bool) {
	q := strings.TrimSpace(query)
	var matches []int
	for i := range jobs {
		if strings.TrimSpace(jobs[i].Query) == q {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return 0, false
	}
	if verbose {
		log.Printf("query has already been submitted %d times", len(matches))
	}
	index = matches[0]
	best := jobs[index].SubmitMJD()
	for _, x := range matches[1:] {
		if t := jobs[x].SubmitMJD(); t > best {
			best = t
			index = x
		}
	}
	if verbose {
		log.Printf("most recent submission on %s", jobs[index].TimeSubmit)
	}
	return index, true
}

// Inspect fetches the job history and returns the most recent job
// matching the query.  Ok is false if the query was never submitted.
func (c *Client) Inspect(query string) (job Job, ok bool, err error) {
	jobs, err := c.Jobs()
	if err != nil {
		return Job{}, false, err
	}
	x, ok := FindLatest(query, jobs, c.Verbose)
	if !ok {
		return Job{}, false, nil
	}
	return jobs[x], true, nil
}

// A QuerySpec describes one query to drive through the CasJobs queue
// with ExecuteQuery.
type QuerySpec struct {
	Query     string
	TableName string // MyDB output table named in the query
	OutFile   string // local file for the downloaded result
	Context   string // database context, e.g. "TwoMassNew"

	// Overwrite forces resubmission even when a finished copy of the
	// query exists.
	Overwrite bool

	// Download controls whether a finished result is downloaded.  When
	// false a finished query is only reported as ready.
	Download bool
}

// ExecuteQuery advances a query through the CasJobs queue by one step
// and reports whether its output is ready.
//
// If the query has never been submitted, or its last submission was
// canceled or failed, it is (re)submitted and false is returned.  If the
// last submission is still queued or running, false is returned.  If it
// finished, the output table is downloaded to q.OutFile (when q.Download
// is set) and true is returned.  q.Overwrite forces resubmission
// regardless of history.
//
// Before any submission the output table is dropped, ignoring errors
// from the drop: the table usually does not exist yet.
func (c *Client) ExecuteQuery(q QuerySpec) (ready bool, err error) {
	if c.Verbose {
		log.Print(q.Query)
	}
	jobs, err := c.Jobs()
	if err != nil {
		return false, err
	}

	submit := q.Overwrite
	ready = true

	x, found := FindLatest(q.Query, jobs, c.Verbose)
	if found {
		st := jobs[x].Status
		if c.Verbose {
			log.Printf("status is %d=%s", int(st), st)
		}
		switch {
		case st == Ready || st == Started:
			if c.Verbose {
				log.Print("query has not finished")
			}
			ready = false
		case st == Finished && !q.Overwrite:
			if !q.Download {
				log.Print("query has finished and is ready for download")
				break
			}
			if c.Verbose {
				log.Print("query has finished, downloading the data")
			}
			err = c.RequestAndGetOutput(q.TableName, "FITS", q.OutFile)
			if err != nil {
				return false, fmt.Errorf(
					"casjobs table download failed: %w\ncheck that table %s is not empty",
					err, q.TableName)
			}
		default: // canceling, cancelled, failed
			submit = true
		}
	} else {
		// query has never been submitted
		submit = true
	}

	if submit {
		// if the table already exists, drop it
		c.DropTable(q.TableName)
		if _, err = c.Submit(q.Query, q.Context); err != nil {
			return false, err
		}
		if c.Verbose {
			log.Print("submitted job")
		}
		ready = false
	}
	return ready, nil
}
