// Package checksum verifies downloaded products against the digest published
// by the archive.
package checksum

import (
	"crypto/md5" //nolint:gosec // the archive publishes MD5 digests
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/caroline-insar/caroline-download/pkg/errors"
)

// Algorithm names a digest algorithm the archive may publish.
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA256 Algorithm = "sha256"
)

// ChunkSize bounds the memory used while hashing, regardless of file size.
const ChunkSize = 8192

var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, ChunkSize)
		return &b
	},
}

// Verify reports whether the MD5 digest of the file at path equals
// expectedHex. Comparison is done on lowercase hex on both sides.
func Verify(path, expectedHex string) (bool, error) {
	return VerifyWith(MD5, path, expectedHex)
}

// VerifyWith is Verify for an explicit algorithm.
func VerifyWith(algorithm Algorithm, path, expectedHex string) (bool, error) {
	got, err := Sum(algorithm, path)
	if err != nil {
		return false, err
	}
	return got == normalizeHex(expectedHex), nil
}

// Sum returns the lowercase hex digest of the file at path.
func Sum(algorithm Algorithm, path string) (string, error) {
	h, err := newHash(algorithm)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(errors.ErrIO, "open %s for checksum: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	bufp := bufferPool.Get().(*[]byte)
	defer bufferPool.Put(bufp)

	if _, err := io.CopyBuffer(h, struct{ io.Reader }{f}, *bufp); err != nil {
		return "", errors.Wrapf(errors.ErrIO, "hashing %s: %v", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ParseAlgorithm maps a configuration value onto an Algorithm. The empty
// string selects MD5.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case "", MD5:
		return MD5, nil
	case SHA256:
		return SHA256, nil
	default:
		return "", errors.Wrapf(errors.ErrUnsupportedChecksum, "%q", s)
	}
}

func newHash(algorithm Algorithm) (hash.Hash, error) {
	switch algorithm {
	case MD5, "":
		return md5.New(), nil //nolint:gosec // see import
	case SHA256:
		return sha256.New(), nil
	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedChecksum, "%q", string(algorithm))
	}
}

func normalizeHex(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
