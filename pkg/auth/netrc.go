package auth

import (
	"os"
	"path/filepath"

	"github.com/bgentry/go-netrc/netrc"

	"github.com/caroline-insar/caroline-download/pkg/errors"
)

// EarthdataHost is the Earthdata Login host ASF redirects downloads to.
const EarthdataHost = "urs.earthdata.nasa.gov"

// DefaultNetrcPath returns ~/.netrc, or "" if the home directory is unknown.
func DefaultNetrcPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".netrc")
}

// FromNetrc reads credentials for machine from the netrc file at path. A
// "default" entry is used when the machine has no entry of its own.
func FromNetrc(path, machine string) (BasicAuth, error) {
	m, err := netrc.FindMachine(path, machine)
	if err != nil {
		return BasicAuth{}, errors.Wrapf(errors.ErrInvalidCredentials, "read %s: %v", path, err)
	}
	if m == nil || m.Login == "" {
		return BasicAuth{}, errors.Wrapf(errors.ErrInvalidCredentials, "no entry for %s in %s", machine, path)
	}
	return BasicAuth{Username: m.Login, Password: m.Password}, nil
}

// Resolve picks the authentication for Earthdata Login: a token when one is
// given, else the netrc entry for EarthdataHost. It returns nil, nil when
// neither is available so anonymous access can still be attempted.
func Resolve(token, netrcPath string) (Authenticator, error) {
	if token != "" {
		return BearerAuth{Token: token}, nil
	}
	if netrcPath == "" {
		netrcPath = DefaultNetrcPath()
		if netrcPath == "" {
			return nil, nil
		}
		if _, err := os.Stat(netrcPath); os.IsNotExist(err) {
			return nil, nil
		}
	}
	a, err := FromNetrc(netrcPath, EarthdataHost)
	if err != nil {
		return nil, err
	}
	return a, nil
}
