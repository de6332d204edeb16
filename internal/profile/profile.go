package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where communitymap stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string
	// InstanceURL is the public url of this instance, used in the RSS feed
	InstanceURL string

	// Secret signs admin session tokens. Generated at startup when empty.
	Secret string
	// AdminPasswordHash is the bcrypt hash of the admin password. Admin
	// endpoints are disabled when empty.
	AdminPasswordHash string
}

// IsDev returns true unless the profile runs in prod mode.
func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAdminEnabled returns true if the admin API can issue sessions.
func (p *Profile) IsAdminEnabled() bool {
	return p.AdminPasswordHash != ""
}

// FromEnv loads configuration overrides from COMMUNITYMAP_* environment
// variables. Empty values are skipped so defaults take effect.
func (p *Profile) FromEnv() {
	if v := os.Getenv("COMMUNITYMAP_SECRET"); v != "" {
		p.Secret = v
	}
	if v := os.Getenv("COMMUNITYMAP_ADMIN_PASSWORD_HASH"); v != "" {
		p.AdminPasswordHash = v
	}
	if v := os.Getenv("COMMUNITYMAP_INSTANCE_URL"); v != "" {
		p.InstanceURL = v
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

// Validate normalizes the profile and fills driver-dependent defaults.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unsupported driver %q: only 'sqlite' and 'postgres' are supported", p.Driver)
	}

	if p.Mode == "prod" && p.Data == "" {
		p.Data = "/var/opt/communitymap"
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir

	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("communitymap_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("postgres driver requires a DSN")
	}

	return nil
}
