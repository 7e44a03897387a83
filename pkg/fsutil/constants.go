package fsutil

// File and directory permission constants used for everything written below
// the download base directory.
const (
	// FileModeDefault is used for products and sidecar files: -rw-r--r--.
	FileModeDefault = 0o644
	// FileModeSecure is used for files that may hold credentials: -rw-r-----.
	FileModeSecure = 0o640

	// DirModeDefault is used for the storage path directories: drwxr-xr-x.
	DirModeDefault = 0o755
)
