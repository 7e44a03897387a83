// Package archive inspects downloaded product archives without extracting
// them to disk.
package archive

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"

	"github.com/caroline-insar/caroline-download/pkg/errors"
)

// ManifestName is the file every SAFE product directory must contain.
const ManifestName = "manifest.safe"

// Inspector checks the structure of SAFE product archives.
type Inspector struct{}

// NewInspector creates a new Inspector instance.
func NewInspector() *Inspector {
	return &Inspector{}
}

// SAFEDir returns the directory name a product zip is expected to contain,
// e.g. S1A_..._519D.zip holds S1A_..._519D.SAFE.
func SAFEDir(zipPath string) string {
	base := filepath.Base(zipPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".SAFE"
}

// InspectSAFE verifies that zipPath is a readable archive holding a
// non-empty <stem>.SAFE/manifest.safe. Structural problems wrap
// errors.ErrArchiveInvalid; a file that cannot be read at all wraps
// errors.ErrIO.
func (i *Inspector) InspectSAFE(ctx context.Context, zipPath string) error {
	manifest, err := i.ReadManifest(ctx, zipPath)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(manifest))) == 0 {
		return errors.Wrapf(errors.ErrArchiveInvalid, "%s: empty %s", zipPath, ManifestName)
	}
	return nil
}

// ReadManifest returns the content of the product's manifest.safe.
func (i *Inspector) ReadManifest(ctx context.Context, zipPath string) ([]byte, error) {
	if _, err := os.Stat(zipPath); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrIO, err)
	}

	fsys, err := archives.FileSystem(ctx, zipPath, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrArchiveInvalid, "open %s: %v", zipPath, err)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	name := path.Join(SAFEDir(zipPath), ManifestName)
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrArchiveInvalid, "%s: %s: %v", zipPath, name, err)
	}
	return data, nil
}

// List returns the names of all regular files in the archive.
func (i *Inspector) List(ctx context.Context, zipPath string) ([]string, error) {
	fsys, err := archives.FileSystem(ctx, zipPath, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrArchiveInvalid, "open %s: %v", zipPath, err)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	var names []string
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrArchiveInvalid, "walk %s: %v", zipPath, err)
	}
	return names, nil
}
