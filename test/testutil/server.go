// Package testutil provides a fake ASF archive for tests.
package testutil

import (
	"crypto/md5" //nolint:gosec // the archive publishes MD5 digests
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

const (
	searchPath    = "/services/search/param"
	downloadPath  = "/download/"
	authorizePath = "/urs/authorize"
	sessionCookie = "urs_session"
)

// Product is a scene served by the fake archive.
type Product struct {
	SceneName       string
	FileName        string
	PathNumber      int
	FlightDirection string
	Polarization    string
	StartTime       time.Time
	Content         []byte
	Checksum        string // defaults to the MD5 of Content
}

// ASFServer is an httptest server mimicking the ASF search API and the
// Earthdata Login protected download endpoint.
type ASFServer struct {
	*httptest.Server

	mu         sync.Mutex
	products   []Product
	queries    []url.Values
	downloads  map[string]int
	failSearch int
	username   string
	password   string
	token      string
}

// NewASFServer starts a fake archive that is closed when the test ends.
func NewASFServer(t *testing.T) *ASFServer {
	t.Helper()
	s := &ASFServer{downloads: make(map[string]int)}

	mux := http.NewServeMux()
	mux.HandleFunc(searchPath, s.handleSearch)
	mux.HandleFunc(downloadPath, s.handleDownload)
	mux.HandleFunc(authorizePath, s.handleAuthorize)

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// SearchURL is the search endpoint of the fake archive.
func (s *ASFServer) SearchURL() string {
	return s.URL + searchPath
}

// Host is the host name clients must send credentials to.
func (s *ASFServer) Host() string {
	u, _ := url.Parse(s.URL)
	return u.Hostname()
}

// AddProduct registers a product and returns its GeoJSON feature.
func (s *ASFServer) AddProduct(p Product) json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Checksum == "" {
		sum := md5.Sum(p.Content) //nolint:gosec // see import
		p.Checksum = hex.EncodeToString(sum[:])
	}
	s.products = append(s.products, p)
	return s.feature(p)
}

// RequireAuth protects downloads the way ASF does. A request carrying the
// bearer token is served directly by the download host. Any other request
// is redirected to a URS style authorize endpoint that accepts only the
// basic auth credentials and answers with a session cookie.
func (s *ASFServer) RequireAuth(username, password, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username, s.password, s.token = username, password, token
}

// FailNextSearches makes the next n search requests fail with status 500.
func (s *ASFServer) FailNextSearches(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSearch = n
}

// Queries returns the parameters of every search request received.
func (s *ASFServer) Queries() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.queries)
}

// Downloads returns how often fileName was served.
func (s *ASFServer) Downloads(fileName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.downloads[fileName]
}

func (s *ASFServer) feature(p Product) json.RawMessage {
	f := map[string]interface{}{
		"type": "Feature",
		"geometry": map[string]interface{}{
			"type":        "Polygon",
			"coordinates": [][][]float64{{{4, 52}, {5, 52}, {5, 53}, {4, 53}, {4, 52}}},
		},
		"properties": map[string]interface{}{
			"sceneName":       p.SceneName,
			"fileID":          p.SceneName + "-SLC",
			"fileName":        p.FileName,
			"pathNumber":      p.PathNumber,
			"flightDirection": p.FlightDirection,
			"polarization":    p.Polarization,
			"md5sum":          p.Checksum,
			"url":             s.URL + downloadPath + p.FileName,
			"bytes":           len(p.Content),
			"processingLevel": "SLC",
			"startTime":       p.StartTime.UTC().Format("2006-01-02T15:04:05.000Z"),
			"platform":        "Sentinel-1A",
		},
	}
	data, _ := json.Marshal(f)
	return data
}

func (s *ASFServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	s.queries = append(s.queries, q)
	if s.failSearch > 0 {
		s.failSearch--
		s.mu.Unlock()
		http.Error(w, `{"error":{"type":"INTERNAL","report":"search backend unavailable"}}`, http.StatusInternalServerError)
		return
	}
	matches := s.match(q)
	features := make([]json.RawMessage, 0, len(matches))
	for _, p := range matches {
		features = append(features, s.feature(p))
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/geo+json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"type":     "FeatureCollection",
		"features": features,
	})
}

func (s *ASFServer) match(q url.Values) []Product {
	var out []Product
	if id := q.Get("product_list"); id != "" {
		for _, p := range s.products {
			if p.SceneName == id {
				out = append(out, p)
			}
		}
		return out
	}

	start, _ := time.Parse(time.RFC3339, q.Get("start"))
	end, _ := time.Parse(time.RFC3339, q.Get("end"))
	var orbits []int
	if v := q.Get("relativeOrbit"); v != "" {
		for _, o := range strings.Split(v, ",") {
			n, err := strconv.Atoi(o)
			if err == nil {
				orbits = append(orbits, n)
			}
		}
	}

	for _, p := range s.products {
		if !start.IsZero() && p.StartTime.Before(start) {
			continue
		}
		if !end.IsZero() && p.StartTime.After(end) {
			continue
		}
		if len(orbits) > 0 && !slices.Contains(orbits, p.PathNumber) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *ASFServer) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, downloadPath)

	if s.requiresAuth() && !s.bearerAuthorized(r) {
		if c, err := r.Cookie(sessionCookie); err != nil || c.Value != "ok" {
			http.Redirect(w, r, authorizePath+"?file="+url.QueryEscape(name), http.StatusFound)
			return
		}
	}

	s.mu.Lock()
	idx := slices.IndexFunc(s.products, func(p Product) bool { return p.FileName == name })
	if idx < 0 {
		s.mu.Unlock()
		http.NotFound(w, r)
		return
	}
	content := s.products[idx].Content
	s.downloads[name]++
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	_, _ = w.Write(content)
}

func (s *ASFServer) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "ok", Path: "/"})
	http.Redirect(w, r, downloadPath+r.URL.Query().Get("file"), http.StatusFound)
}

func (s *ASFServer) requiresAuth() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username != "" || s.token != ""
}

func (s *ASFServer) bearerAuthorized(r *http.Request) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && r.Header.Get("Authorization") == "Bearer "+s.token
}

func (s *ASFServer) authorized(r *http.Request) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, pass, ok := r.BasicAuth()
	return ok && s.username != "" && user == s.username && pass == s.password
}
