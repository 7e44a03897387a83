// Package auth provides authentication for requests to Earthdata Login
// protected downloads.
package auth

import (
	"net/http"
	"strings"
)

// Domains lists the domains whose hosts receive Earthdata credentials: the
// ASF download hosts below asf.alaska.edu (datapool.asf.alaska.edu,
// sentinel1.asf.alaska.edu) and Earthdata Login below earthdata.nasa.gov
// (urs.earthdata.nasa.gov). Signed S3 or CloudFront URLs the archive
// redirects to never see them.
var Domains = []string{"asf.alaska.edu", "earthdata.nasa.gov"}

// InDomain reports whether host equals one of domains or is a subdomain of
// one. host must not carry a port, see url.URL.Hostname.
func InDomain(host string, domains []string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	for _, d := range domains {
		d = strings.ToLower(d)
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// Authenticator defines the interface for applying authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request) error
	Type() Type
}

// BasicAuth holds Earthdata Login username and password, usually from the
// urs.earthdata.nasa.gov entry in .netrc. URS checks them when ASF redirects
// a download to /oauth/authorize; the resulting session cookie then carries
// the download.
type BasicAuth struct {
	Username string
	Password string
}

// BearerAuth holds an Earthdata Login user token. The token is checked by
// the ASF download host itself, so it must be sent with the initial request
// to datapool.asf.alaska.edu and not only to URS.
type BearerAuth struct {
	Token string
}

// Type represents the type of authentication.
type Type string

// Authentication types.
const (
	BasicAuthType  Type = "basic"
	BearerAuthType Type = "bearer"
)

// Apply sets the basic auth header.
func (b BasicAuth) Apply(req *http.Request) error {
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}

// Type returns BasicAuthType.
func (b BasicAuth) Type() Type { return BasicAuthType }

// Apply sets the bearer token header.
func (b BearerAuth) Apply(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}

// Type returns BearerAuthType.
func (b BearerAuth) Type() Type { return BearerAuthType }
