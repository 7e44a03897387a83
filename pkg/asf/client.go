// Package asf talks to the Alaska Satellite Facility search API and downloads
// products through Earthdata Login.
package asf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/caroline-insar/caroline-download/pkg/auth"
	"github.com/caroline-insar/caroline-download/pkg/errors"
	"github.com/caroline-insar/caroline-download/pkg/product"
)

// DefaultSearchURL is the ASF search API endpoint.
const DefaultSearchURL = "https://api.daac.asf.alaska.edu/services/search/param"

const (
	defaultTimeout   = 5 * time.Minute
	defaultUserAgent = "caroline-download/1.0"
	maxRedirects     = 10
	errorBodyLimit   = 512
)

// Options configure a Client.
type Options struct {
	SearchURL string
	Timeout   time.Duration // search requests only; downloads are bounded by ctx
	UserAgent string
	Auth      auth.Authenticator

	// AuthDomains lists the domains whose hosts, subdomains included,
	// receive credentials. Defaults to auth.Domains.
	AuthDomains []string

	// Transport is used for all requests. Defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

// Client implements product search and download against ASF.
type Client struct {
	searchURL   string
	userAgent   string
	auth        auth.Authenticator
	authDomains []string
	search      *http.Client
	downloader  *http.Client
}

// NewClient creates a Client. Zero options select the public ASF endpoint.
func NewClient(opts Options) (*Client, error) {
	if opts.SearchURL == "" {
		opts.SearchURL = DefaultSearchURL
	}
	if _, err := url.Parse(opts.SearchURL); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigValidation, "search url %q: %v", opts.SearchURL, err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if len(opts.AuthDomains) == 0 {
		opts.AuthDomains = auth.Domains
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "create cookie jar")
	}

	c := &Client{
		searchURL:   opts.SearchURL,
		userAgent:   opts.UserAgent,
		auth:        opts.Auth,
		authDomains: opts.AuthDomains,
		search:      &http.Client{Transport: opts.Transport, Timeout: opts.Timeout, Jar: jar},
	}
	c.downloader = &http.Client{Transport: opts.Transport, Jar: jar, CheckRedirect: c.checkRedirect}
	return c, nil
}

// SearchByID looks up a product by its scene name.
func (c *Client) SearchByID(ctx context.Context, id string) ([]product.Descriptor, error) {
	params := url.Values{}
	params.Set("product_list", id)
	return c.doSearch(ctx, params)
}

// SearchByQuery runs a geo/temporal search.
func (c *Client) SearchByQuery(ctx context.Context, q product.Query) ([]product.Descriptor, error) {
	return c.doSearch(ctx, QueryValues(q))
}

// QueryValues encodes q as search API parameters.
func QueryValues(q product.Query) url.Values {
	params := url.Values{}
	if q.Dataset != "" {
		params.Set("dataset", q.Dataset)
	}
	if !q.Start.IsZero() {
		params.Set("start", q.Start.UTC().Format(time.RFC3339))
	}
	if !q.End.IsZero() {
		params.Set("end", q.End.UTC().Format(time.RFC3339))
	}
	if q.IntersectsWith != "" {
		params.Set("intersectsWith", q.IntersectsWith)
	}
	if len(q.RelativeOrbits) > 0 {
		params.Set("relativeOrbit", strings.Join(lo.Map(q.RelativeOrbits, func(o int, _ int) string {
			return strconv.Itoa(o)
		}), ","))
	}
	if q.ProcessingLevel != "" {
		params.Set("processingLevel", q.ProcessingLevel)
	}
	return params
}

func (c *Client) doSearch(ctx context.Context, params url.Values) ([]product.Descriptor, error) {
	params.Set("output", "geojson")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrSearchFailed, "create request: %v", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.search.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrSearchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, errors.Wrapf(errors.ErrSearchFailed, "unexpected status code: %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var fc FeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, errors.Wrapf(errors.ErrSearchFailed, "decode response: %v", err)
	}

	out := make([]product.Descriptor, 0, len(fc.Features))
	for _, raw := range fc.Features {
		d, err := Descriptor(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// MetadataJSON returns the GeoJSON feature the archive reported for p.
func (c *Client) MetadataJSON(p product.Descriptor) ([]byte, error) {
	if len(p.Metadata) == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidMetadata, "no metadata for %s", p.ID)
	}
	return p.Metadata, nil
}

func (c *Client) applyAuth(req *http.Request) error {
	if c.auth == nil || !auth.InDomain(req.URL.Hostname(), c.authDomains) {
		return nil
	}
	return c.auth.Apply(req)
}

// checkRedirect re-applies credentials when a download is redirected within
// the auth domains and strips them everywhere else.
func (c *Client) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if !auth.InDomain(req.URL.Hostname(), c.authDomains) {
		req.Header.Del("Authorization")
		return nil
	}
	return c.applyAuth(req)
}
