package asf

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/caroline-insar/caroline-download/pkg/errors"
	"github.com/caroline-insar/caroline-download/pkg/fsutil"
	"github.com/caroline-insar/caroline-download/pkg/product"
)

// Fetch downloads p into dir/p.FileName. The body is written to a temporary
// file in dir first and only moved into place once complete, so an
// interrupted download never leaves a file that looks finished.
func (c *Client) Fetch(ctx context.Context, p product.Descriptor, dir string) error {
	if p.URL == "" {
		return errors.Wrapf(errors.ErrDownloadFailed, "%s has no url", p.ID)
	}
	target := filepath.Join(dir, p.FileName)

	resp, err := c.doRequest(ctx, p.URL)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	tmpPath, written, err := writeBodyToTemp(resp.Body, dir)
	if err != nil {
		return err
	}
	if p.Bytes > 0 && written != p.Bytes {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(errors.ErrDownloadFailed, "%s: got %d bytes, expected %d", p.FileName, written, p.Bytes)
	}

	if err := fsutil.Move(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: could not finalize file: %w", errors.ErrIO, err)
	}
	if err := os.Chmod(target, fsutil.FileModeDefault); err != nil {
		return fmt.Errorf("%w: could not set permissions: %w", errors.ErrIO, err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDownloadFailed, "failed to create request: %v", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if err := c.applyAuth(req); err != nil {
		return nil, err
	}

	resp, err := c.downloader.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrDownloadFailed, err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return resp, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		_ = resp.Body.Close()
		return nil, errors.Wrapf(errors.ErrInvalidCredentials, "unexpected status code: %d", resp.StatusCode)
	default:
		_ = resp.Body.Close()
		return nil, errors.Wrapf(errors.ErrDownloadFailed, "unexpected status code: %d", resp.StatusCode)
	}
}

func writeBodyToTemp(body io.Reader, dir string) (string, int64, error) {
	tmp, err := os.CreateTemp(dir, "dl-*.tmp")
	if err != nil {
		return "", 0, fmt.Errorf("%w: could not create temp file: %w", errors.ErrIO, err)
	}
	tmpPath := tmp.Name()

	written, err := io.Copy(tmp, body)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", 0, fmt.Errorf("%w: could not write file: %w", errors.ErrDownloadFailed, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", 0, fmt.Errorf("%w: could not sync file: %w", errors.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", 0, fmt.Errorf("%w: could not close file: %w", errors.ErrIO, err)
	}
	return tmpPath, written, nil
}
