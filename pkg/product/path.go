package product

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caroline-insar/caroline-download/pkg/errors"
)

// Fixed offsets into Sentinel-1 file names:
//
//	S1A_IW_SLC__1SDV_20190103T170131_20190103T170159_025316_02CD10_519D.zip
//	    |----------| |------|
//	    dataset      date
const (
	datasetStart  = 4
	datasetEnd    = 16
	dateStart     = 17
	dateEnd       = 25
	minNameLength = dateEnd

	dateLayout = "20060102"
)

var directionSegments = map[OrbitDirection]string{
	Ascending:  "asc",
	Descending: "dsc",
}

// ComposePath maps a product's descriptive fields to its storage directory:
//
//	base/s1_<asc|dsc>_t<orbit>/<dataset>_<polarization>/<yyyymmdd>
//
// The orbit is zero padded to three digits and never truncated. Every '+' is
// removed from the polarization. File names that do not follow the
// Sentinel-1 naming convention fail with ErrInvalidMetadata rather than
// producing a wrong path.
func ComposePath(base, fileName string, relativeOrbit int, orbitDirection, polarization string) (string, error) {
	direction, ok := directionSegments[OrbitDirection(orbitDirection)]
	if !ok {
		return "", errors.Wrapf(errors.ErrInvalidMetadata, "unknown orbit direction %q", orbitDirection)
	}
	if relativeOrbit < 0 {
		return "", errors.Wrapf(errors.ErrInvalidMetadata, "negative relative orbit %d", relativeOrbit)
	}
	if err := ValidateFileName(fileName); err != nil {
		return "", err
	}

	track := fmt.Sprintf("s1_%s_t%03d", direction, relativeOrbit)
	dataset := fileName[datasetStart:datasetEnd] + "_" + strings.ReplaceAll(polarization, "+", "")
	date := fileName[dateStart:dateEnd]

	return filepath.Join(base, track, dataset, date), nil
}

// ValidateFileName checks that fileName carries a dataset and an acquisition
// date at the offsets ComposePath relies on.
func ValidateFileName(fileName string) error {
	if len(fileName) < minNameLength {
		return errors.Wrapf(errors.ErrInvalidMetadata, "file name %q shorter than %d characters", fileName, minNameLength)
	}
	if fileName[datasetStart-1] != '_' || fileName[datasetEnd] != '_' {
		return errors.Wrapf(errors.ErrInvalidMetadata, "file name %q does not follow the Sentinel-1 naming convention", fileName)
	}
	if _, err := time.Parse(dateLayout, fileName[dateStart:dateEnd]); err != nil {
		return errors.Wrapf(errors.ErrInvalidMetadata, "file name %q has no acquisition date at offset %d", fileName, dateStart)
	}
	return nil
}
