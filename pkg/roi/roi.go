// Package roi reads the region of interest used to restrict geo searches.
package roi

import (
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"github.com/caroline-insar/caroline-download/pkg/errors"
)

// ReadWKT reads a WKT geometry from path. Line breaks are removed so the
// string can be passed to the archive as a single query parameter.
func ReadWKT(path string) (string, error) {
	if path == "" {
		return "", errors.Wrap(errors.ErrInvalidROI, "no roi file configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidROI, "read %s: %v", path, err)
	}

	s := strings.TrimSpace(strings.NewReplacer("\r", "", "\n", "").Replace(string(data)))
	if _, err := Parse(s); err != nil {
		return "", errors.Wrapf(err, "%s", path)
	}
	return s, nil
}

// Parse validates s as a WKT geometry and returns it.
func Parse(s string) (orb.Geometry, error) {
	if s == "" {
		return nil, errors.Wrap(errors.ErrInvalidROI, "empty geometry")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidROI, "%v", err)
	}
	return g, nil
}
