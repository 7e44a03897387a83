// Package fsutil holds the file system helpers shared by the download engine,
// the archive client and the CLI.
package fsutil

import (
	"os"
	"path/filepath"
)

// EnsureDir creates path and its parents with DirModeDefault. It fails if
// path exists and is not a directory.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DirModeDefault)
}

// EnsureFileDir creates the parent directory of filePath.
func EnsureFileDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}
