package asf

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/caroline-insar/caroline-download/pkg/errors"
	"github.com/caroline-insar/caroline-download/pkg/product"
)

// FeatureCollection is the GeoJSON document returned by the search API.
type FeatureCollection struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

// Feature is a single scene in a FeatureCollection.
type Feature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties Properties      `json:"properties"`
}

// Properties holds the scene attributes used for downloading.
type Properties struct {
	SceneName       string `json:"sceneName"`
	FileID          string `json:"fileID"`
	FileName        string `json:"fileName"`
	PathNumber      *int   `json:"pathNumber"`
	FlightDirection string `json:"flightDirection"`
	Polarization    string `json:"polarization"`
	Md5sum          string `json:"md5sum"`
	URL             string `json:"url"`
	Bytes           int64  `json:"bytes"`
	ProcessingLevel string `json:"processingLevel"`
	StartTime       string `json:"startTime"`
	Platform        string `json:"platform"`
}

var startTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseStartTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range startTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Descriptor converts a raw GeoJSON feature into a product descriptor. The
// raw feature is kept as the descriptor's metadata.
func Descriptor(raw json.RawMessage) (product.Descriptor, error) {
	var f Feature
	if err := json.Unmarshal(raw, &f); err != nil {
		return product.Descriptor{}, errors.Wrapf(errors.ErrInvalidMetadata, "decode feature: %v", err)
	}
	p := f.Properties

	if p.FileName == "" || p.URL == "" {
		return product.Descriptor{}, errors.Wrapf(errors.ErrInvalidMetadata, "feature %q lacks fileName or url", p.SceneName)
	}
	if p.PathNumber == nil {
		return product.Descriptor{}, errors.Wrapf(errors.ErrInvalidMetadata, "feature %q lacks pathNumber", p.SceneName)
	}

	d := product.Descriptor{
		ID:              p.SceneName,
		FileName:        p.FileName,
		RelativeOrbit:   *p.PathNumber,
		OrbitDirection:  product.OrbitDirection(strings.ToUpper(p.FlightDirection)),
		Polarization:    p.Polarization,
		Checksum:        p.Md5sum,
		URL:             p.URL,
		Bytes:           p.Bytes,
		ProcessingLevel: p.ProcessingLevel,
		Metadata:        append(json.RawMessage(nil), raw...),
	}
	if d.ID == "" {
		d.ID = strings.TrimSuffix(p.FileName, ".zip")
	}
	if p.StartTime != "" {
		t, err := parseStartTime(p.StartTime)
		if err != nil {
			return product.Descriptor{}, errors.Wrapf(errors.ErrInvalidMetadata, "feature %q startTime: %v", d.ID, err)
		}
		d.StartTime = t
	}
	return d, nil
}
