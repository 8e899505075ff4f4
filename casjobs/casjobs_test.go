// Public domain.

package casjobs_test

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soniakeys/uastro/casjobs"
)

func TestStatusString(t *testing.T) {
	cases := []struct {
		st   casjobs.Status
		want string
	}{
		{casjobs.Ready, "ready"},
		{casjobs.Started, "started"},
		{casjobs.Canceling, "canceling"},
		{casjobs.Cancelled, "cancelled"},
		{casjobs.Failed, "failed"},
		{casjobs.Finished, "finished"},
		{casjobs.Status(9), "status 9"},
	}
	for _, c := range cases {
		if g := c.st.String(); g != c.want {
			t.Errorf("Status(%d).String() = %q, want %q", int(c.st), g, c.want)
		}
	}
}

func TestSubmitMJD(t *testing.T) {
	j := casjobs.Job{TimeSubmit: "2015-01-01T00:00:00"}
	if g := j.SubmitMJD(); g != 57023 {
		t.Errorf("SubmitMJD = %g, want 57023", g)
	}
	j.TimeSubmit = "1/1/2015 12:00:00 PM"
	if g := j.SubmitMJD(); g != 57023.5 {
		t.Errorf("SubmitMJD = %g, want 57023.5", g)
	}
	j.TimeSubmit = "not a time"
	if g := j.SubmitMJD(); g != 0 {
		t.Errorf("SubmitMJD = %g, want 0", g)
	}
}

func TestFindLatest(t *testing.T) {
	jobs := []casjobs.Job{
		{ID: 4, Query: "select b from y", TimeSubmit: "2015-02-01T00:00:00"},
		{ID: 3, Query: "select a from x", TimeSubmit: "2015-01-20T00:00:00"},
		{ID: 2, Query: "  select a from x\n", TimeSubmit: "2015-01-25T00:00:00"},
		{ID: 1, Query: "select a from x", TimeSubmit: "2015-01-10T00:00:00"},
	}
	if _, ok := casjobs.FindLatest("select c from z", jobs, false); ok {
		t.Error("unsubmitted query reported found")
	}
	x, ok := casjobs.FindLatest("select b from y", jobs, false)
	if !ok || jobs[x].ID != 4 {
		t.Errorf("single match: got index %d ok %t", x, ok)
	}
	// three matches, middle one most recent, white space ignored
	x, ok = casjobs.FindLatest(" select a from x ", jobs, false)
	if !ok {
		t.Fatal("query not found")
	}
	if jobs[x].ID != 2 {
		t.Errorf("most recent match has ID %d, want 2", jobs[x].ID)
	}
}

func TestFindLatestVerbose(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	jobs := []casjobs.Job{
		{ID: 1, Query: "select a from x", TimeSubmit: "2015-01-01T00:00:00"},
	}
	// the submission count is reported even for a single match
	if _, ok := casjobs.FindLatest("select a from x", jobs, true); !ok {
		t.Fatal("query not found")
	}
	if !strings.Contains(buf.String(), "submitted 1 times") {
		t.Errorf("log output %q missing submission count", buf.String())
	}
}

// fakeService emulates just enough of a jobs.asmx endpoint.
type fakeService struct {
	jobs       []casjobs.Job // oldest first, as the real service reports
	calls      []string
	nextID     int
	dataURL    string
	failOutput bool // answer output downloads with a server error
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/GetJobs", func(w http.ResponseWriter, r *http.Request) {
		f.calls = append(f.calls, "GetJobs")
		fmt.Fprint(w, "<ArrayOfCJJob>")
		for _, j := range f.jobs {
			fmt.Fprintf(w, "<CJJob><JobID>%d</JobID><Status>%d</Status>"+
				"<Query>%s</Query><TaskName>%s</TaskName>"+
				"<TimeSubmit>%s</TimeSubmit><OutputLoc>%s</OutputLoc></CJJob>",
				j.ID, int(j.Status), j.Query, j.TaskName, j.TimeSubmit, j.OutputLoc)
		}
		fmt.Fprint(w, "</ArrayOfCJJob>")
	})
	mux.HandleFunc("/GetJobStatus", func(w http.ResponseWriter, r *http.Request) {
		f.calls = append(f.calls, "GetJobStatus")
		fmt.Fprintf(w, "<int>%d</int>", int(casjobs.Finished))
	})
	mux.HandleFunc("/SubmitJob", func(w http.ResponseWriter, r *http.Request) {
		f.calls = append(f.calls, "SubmitJob "+r.FormValue("qry"))
		f.nextID++
		fmt.Fprintf(w, "<long>%d</long>", f.nextID)
	})
	mux.HandleFunc("/SubmitExtractJob", func(w http.ResponseWriter, r *http.Request) {
		f.calls = append(f.calls, "SubmitExtractJob "+r.FormValue("tableName"))
		f.nextID++
		f.jobs = append(f.jobs, casjobs.Job{
			ID:        f.nextID,
			Status:    casjobs.Finished,
			TaskName:  "extract",
			OutputLoc: f.dataURL,
		})
		fmt.Fprintf(w, "<long>%d</long>", f.nextID)
	})
	mux.HandleFunc("/ExecuteQuickJob", func(w http.ResponseWriter, r *http.Request) {
		f.calls = append(f.calls, "ExecuteQuickJob "+r.FormValue("qry"))
		fmt.Fprint(w, "<string>ok</string>")
	})
	mux.HandleFunc("/output", func(w http.ResponseWriter, r *http.Request) {
		f.calls = append(f.calls, "download")
		if f.failOutput {
			http.Error(w, "no output produced", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "table data")
	})
	return mux
}

func newFake(t *testing.T, jobs []casjobs.Job) (*fakeService, *casjobs.Client) {
	f := &fakeService{jobs: jobs, nextID: 100}
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	f.dataURL = srv.URL + "/output"
	c := casjobs.New("wsid", "pw")
	c.BaseURL = srv.URL
	c.PollInterval = time.Millisecond
	return f, c
}

func (f *fakeService) called(prefix string) bool {
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

const testQuery = "select ra, dec into mydb.res from catalog"

func TestExecuteQueryNew(t *testing.T) {
	f, c := newFake(t, nil)
	ready, err := c.ExecuteQuery(casjobs.QuerySpec{
		Query: testQuery, TableName: "res", Context: "TwoMassNew",
	})
	if err != nil {
		t.Fatal(err)
	}
	if ready {
		t.Error("fresh submission reported ready")
	}
	if !f.called("ExecuteQuickJob DROP TABLE res") {
		t.Error("output table not dropped before submission")
	}
	if !f.called("SubmitJob " + testQuery) {
		t.Errorf("query not submitted; calls: %v", f.calls)
	}
}

func TestExecuteQueryRunning(t *testing.T) {
	f, c := newFake(t, []casjobs.Job{
		{ID: 1, Status: casjobs.Started, Query: testQuery},
	})
	ready, err := c.ExecuteQuery(casjobs.QuerySpec{Query: testQuery, TableName: "res"})
	if err != nil {
		t.Fatal(err)
	}
	if ready {
		t.Error("running query reported ready")
	}
	if f.called("SubmitJob") {
		t.Error("running query resubmitted")
	}
}

func TestExecuteQueryFailed(t *testing.T) {
	f, c := newFake(t, []casjobs.Job{
		{ID: 1, Status: casjobs.Failed, Query: testQuery},
	})
	ready, err := c.ExecuteQuery(casjobs.QuerySpec{Query: testQuery, TableName: "res"})
	if err != nil {
		t.Fatal(err)
	}
	if ready {
		t.Error("failed query reported ready")
	}
	if !f.called("SubmitJob") {
		t.Error("failed query not resubmitted")
	}
}

func TestExecuteQueryFinished(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "res.fits")
	f, c := newFake(t, []casjobs.Job{
		{ID: 1, Status: casjobs.Finished, Query: testQuery},
	})
	ready, err := c.ExecuteQuery(casjobs.QuerySpec{
		Query: testQuery, TableName: "res", OutFile: outFile, Download: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !ready {
		t.Error("finished query not reported ready")
	}
	if !f.called("SubmitExtractJob res") {
		t.Errorf("extract job not submitted; calls: %v", f.calls)
	}
	b, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "table data" {
		t.Errorf("downloaded %q", b)
	}
}

func TestExecuteQueryDownloadFailed(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "res.fits")
	f, c := newFake(t, []casjobs.Job{
		{ID: 1, Status: casjobs.Finished, Query: testQuery},
	})
	f.failOutput = true
	_, err := c.ExecuteQuery(casjobs.QuerySpec{
		Query: testQuery, TableName: "res", OutFile: outFile, Download: true,
	})
	if err == nil {
		t.Fatal("failed download not reported")
	}
	if !strings.Contains(err.Error(), "check that table res is not empty") {
		t.Errorf("error %q missing the empty-table hint", err)
	}
	if _, err := os.Stat(outFile); err == nil {
		t.Error("output file created for a failed download")
	}
}

func TestExecuteQueryFinishedNoDownload(t *testing.T) {
	f, c := newFake(t, []casjobs.Job{
		{ID: 1, Status: casjobs.Finished, Query: testQuery},
	})
	ready, err := c.ExecuteQuery(casjobs.QuerySpec{Query: testQuery, TableName: "res"})
	if err != nil {
		t.Fatal(err)
	}
	if !ready {
		t.Error("finished query not reported ready")
	}
	if f.called("SubmitExtractJob") {
		t.Error("extract requested without Download")
	}
}

func TestExecuteQueryOverwrite(t *testing.T) {
	f, c := newFake(t, []casjobs.Job{
		{ID: 1, Status: casjobs.Finished, Query: testQuery},
	})
	ready, err := c.ExecuteQuery(casjobs.QuerySpec{
		Query: testQuery, TableName: "res", Overwrite: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if ready {
		t.Error("overwrite resubmission reported ready")
	}
	if !f.called("SubmitJob") {
		t.Error("overwrite did not resubmit")
	}
}

func TestInspect(t *testing.T) {
	_, c := newFake(t, []casjobs.Job{
		{ID: 1, Status: casjobs.Started, Query: "old query",
			TimeSubmit: "2015-01-01T00:00:00"},
		{ID: 2, Status: casjobs.Finished, Query: testQuery,
			TimeSubmit: "2015-01-02T00:00:00"},
	})
	j, ok, err := c.Inspect(testQuery)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || j.ID != 2 {
		t.Errorf("Inspect: ok %t job %+v", ok, j)
	}
	if _, ok, err = c.Inspect("never run"); err != nil || ok {
		t.Errorf("Inspect(never run): ok %t err %v", ok, err)
	}
}
