// Public domain.

package archive

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// An Account holds a user and password for one archive service.
type Account struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Credentials holds accounts for the services that need them.
type Credentials struct {
	Gacs    Account `yaml:"gacs"`
	CasJobs Account `yaml:"casjobs"`
}

// DefaultCredentialsPath returns ~/.uastro.yaml.
func DefaultCredentialsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".uastro.yaml"
	}
	return filepath.Join(home, ".uastro.yaml")
}

// LoadCredentials reads a YAML credentials file.
func LoadCredentials(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Credentials
	if err = yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
