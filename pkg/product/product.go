// Package product describes Sentinel-1 products as reported by the remote
// archive and maps them onto the local storage layout.
package product

import (
	"encoding/json"
	"time"
)

// OrbitDirection is the satellite travel direction reported by the archive.
type OrbitDirection string

const (
	Ascending  OrbitDirection = "ASCENDING"
	Descending OrbitDirection = "DESCENDING"
)

// String returns the underlying string value.
func (d OrbitDirection) String() string {
	return string(d)
}

// Descriptor holds the attributes the archive reports for one scene.
type Descriptor struct {
	ID              string // scene name
	FileName        string // archive file name, e.g. S1A_IW_SLC__1SDV_20190103T170131_..._519D.zip
	RelativeOrbit   int    // track
	OrbitDirection  OrbitDirection
	Polarization    string // may contain '+' separators, e.g. VV+VH
	Checksum        string // hex digest published by the archive
	URL             string
	Bytes           int64
	ProcessingLevel string
	StartTime       time.Time

	// Metadata is the archive's full metadata document for the scene.
	Metadata json.RawMessage
}

// StoragePath returns the canonical directory for the product below base.
func (d Descriptor) StoragePath(base string) (string, error) {
	return ComposePath(base, d.FileName, d.RelativeOrbit, string(d.OrbitDirection), d.Polarization)
}

// Query is a geo/temporal search against the archive.
type Query struct {
	Dataset         string
	Start           time.Time
	End             time.Time
	IntersectsWith  string // WKT geometry
	RelativeOrbits  []int
	ProcessingLevel string
}
