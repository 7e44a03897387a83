package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRegularFile(t *testing.T) {
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "product.zip")
	require.NoError(t, os.WriteFile(file, []byte("zip"), 0o644))

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "existing file", path: file, expected: true},
		{name: "missing file", path: filepath.Join(tempDir, "missing.zip"), expected: false},
		{name: "directory", path: tempDir, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := IsRegularFile(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestMove_TempDownloadIntoStoragePath(t *testing.T) {
	base := t.TempDir()
	partial := filepath.Join(base, ".download-1234.part")
	target := filepath.Join(base, "s1_dsc_t037", "IW_SLC__1SDV_VVVH", "20240110", "S1A_X.zip")

	require.NoError(t, os.WriteFile(partial, []byte("PK\x03\x04"), 0o600))
	require.NoError(t, Move(partial, target))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "PK\x03\x04", string(data))
	assert.NoFileExists(t, partial)
}

func TestMove_ReplacesExistingProduct(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("rename over an existing file differs on Windows")
	}
	base := t.TempDir()
	partial := filepath.Join(base, "new.part")
	target := filepath.Join(base, "S1A_X.zip")
	require.NoError(t, os.WriteFile(target, []byte("stale"), FileModeDefault))
	require.NoError(t, os.WriteFile(partial, []byte("fresh"), 0o600))

	srcInfo, err := os.Stat(partial)
	require.NoError(t, err)

	require.NoError(t, Move(partial, target))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))

	dstInfo, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, srcInfo.Mode(), dstInfo.Mode())
}

func TestMove_Errors(t *testing.T) {
	tempDir := t.TempDir()

	err := Move(filepath.Join(tempDir, "missing.part"), filepath.Join(tempDir, "S1A_X.zip"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat source")

	err = Move("", "S1A_X.zip")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source and destination paths cannot be empty")

	err = Move("S1A_X.part", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source and destination paths cannot be empty")

	err = Move(tempDir, filepath.Join(tempDir, "elsewhere"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestIsCrossFilesystemError(t *testing.T) {
	assert.False(t, isCrossFilesystemError(nil))
	assert.False(t, isCrossFilesystemError(errors.New("regular error")))
	assert.True(t, isCrossFilesystemError(errors.New("rename a b: invalid cross-device link")))
}

func TestCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "S1A_X.zip")
	dst := filepath.Join(dir, "copy.zip")
	require.NoError(t, os.WriteFile(src, []byte("product bytes"), FileModeDefault))

	require.NoError(t, Copy(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "product bytes", string(data))
	assert.FileExists(t, src, "copy keeps the source")

	assert.Error(t, Copy(filepath.Join(dir, "missing.zip"), dst))
}

func TestWriteFileAtomic(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "product.json")

	require.NoError(t, WriteFileAtomic(target, []byte(`{"a":1}`), FileModeDefault))
	require.NoError(t, WriteFileAtomic(target, []byte(`{"a":2}`), FileModeDefault))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(data))

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	err = WriteFileAtomic(filepath.Join(tempDir, "missing", "x.json"), []byte("{}"), FileModeDefault)
	assert.Error(t, err)
}
