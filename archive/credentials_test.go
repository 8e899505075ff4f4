// Public domain.

package archive_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soniakeys/uastro/archive"
)

func TestLoadCredentials(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "creds.yaml")
	err := os.WriteFile(fn, []byte(`gacs:
  user: jdoe
  password: hunter2
casjobs:
  user: "1234567"
  password: secret
`), 0600)
	if err != nil {
		t.Fatal(err)
	}
	c, err := archive.LoadCredentials(fn)
	if err != nil {
		t.Fatal(err)
	}
	if c.Gacs.User != "jdoe" || c.Gacs.Password != "hunter2" {
		t.Errorf("gacs account %+v", c.Gacs)
	}
	if c.CasJobs.User != "1234567" || c.CasJobs.Password != "secret" {
		t.Errorf("casjobs account %+v", c.CasJobs)
	}
	if _, err = archive.LoadCredentials(fn + ".missing"); err == nil {
		t.Error("missing file should fail")
	}
}

func TestDefaultCredentialsPath(t *testing.T) {
	p := archive.DefaultCredentialsPath()
	if !strings.HasSuffix(p, ".uastro.yaml") {
		t.Errorf("path = %s", p)
	}
}
