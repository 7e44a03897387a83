// Package download decides, per product, whether to skip, fetch or replace
// the local copy and carries the fetch through verification and metadata
// writing.
package download

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/caroline-insar/caroline-download/pkg/checksum"
	"github.com/caroline-insar/caroline-download/pkg/errors"
	"github.com/caroline-insar/caroline-download/pkg/fsutil"
	"github.com/caroline-insar/caroline-download/pkg/hooks"
	"github.com/caroline-insar/caroline-download/pkg/product"
)

// Engine applies the download decision to products. Inspector and Hooks are
// optional.
type Engine struct {
	Fetcher   ProductFetcher
	Inspector ArchiveInspector
	Hooks     HookRunner

	once  sync.Once
	locks *pathLocks
}

// NewEngine constructs an Engine. inspector and hookRunner may be nil.
func NewEngine(fetcher ProductFetcher, inspector ArchiveInspector, hookRunner HookRunner) *Engine {
	return &Engine{
		Fetcher:   fetcher,
		Inspector: inspector,
		Hooks:     hookRunner,
	}
}

// FetchAll runs DecideAndFetch for every product on a pool of
// cfg.Concurrency workers. Results are returned in input order and a failure
// of one product never affects the others.
func (e *Engine) FetchAll(ctx context.Context, cfg Config, products []product.Descriptor) []Result {
	results := make([]Result, len(products))
	if len(products) == 0 {
		return results
	}

	workers := min(cfg.concurrency(), len(products))
	tasks := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				results[i] = e.DecideAndFetch(ctx, cfg, products[i])
			}
		}()
	}

	for i := range products {
		tasks <- i
	}
	close(tasks)
	wg.Wait()
	return results
}

// DecideAndFetch processes a single product.
func (e *Engine) DecideAndFetch(ctx context.Context, cfg Config, p product.Descriptor) Result {
	res := Result{Descriptor: p, DryRun: cfg.DryRun}

	dir, err := p.StoragePath(cfg.BaseDirectory)
	if err != nil {
		return fail(res, err)
	}
	target := filepath.Join(dir, p.FileName)
	res.Path = target

	mu := e.pathLock(target)
	mu.Lock()
	defer mu.Unlock()

	exists, err := fsutil.IsRegularFile(target)
	if err != nil {
		return fail(res, fmt.Errorf("%w: stat %s: %w", errors.ErrIO, target, err))
	}

	res.Outcome = Fetched
	if exists {
		if !cfg.Force {
			res.Outcome = Skipped
			return res
		}
		res.Outcome = Replaced
		if !cfg.DryRun {
			if err := os.Remove(target); err != nil {
				return fail(res, fmt.Errorf("%w: remove %s: %w", errors.ErrIO, target, err))
			}
		}
	}

	if cfg.DryRun {
		return res
	}

	if err := fsutil.EnsureDir(dir); err != nil {
		return fail(res, fmt.Errorf("%w: create %s: %w", errors.ErrIO, dir, err))
	}

	if err := e.Fetcher.Fetch(ctx, p, dir); err != nil {
		return fail(res, err)
	}

	if ok, err := e.verify(ctx, cfg, p, target); err != nil {
		return fail(res, err)
	} else if !ok {
		res.Outcome = VerificationFailed
		res.Err = e.runHook(hooks.VerificationFailed, cfg, p, target)
		return res
	}

	if err := e.writeSidecar(p, target); err != nil {
		return fail(res, err)
	}

	if err := e.runHook(hooks.PostDownload, cfg, p, target); err != nil {
		return fail(res, err)
	}
	return res
}

// verify returns false, nil when the file is present but not acceptable.
func (e *Engine) verify(ctx context.Context, cfg Config, p product.Descriptor, target string) (bool, error) {
	if cfg.Verify {
		ok, err := checksum.VerifyWith(cfg.ChecksumAlgorithm, target, p.Checksum)
		if err != nil || !ok {
			return false, err
		}
	}
	if cfg.InspectArchive && e.Inspector != nil {
		if err := e.Inspector.InspectSAFE(ctx, target); err != nil {
			if errors.Is(err, errors.ErrArchiveInvalid) {
				return false, nil
			}
			return false, err
		}
	}
	return true, nil
}

func (e *Engine) writeSidecar(p product.Descriptor, target string) error {
	raw, err := e.Fetcher.MetadataJSON(p)
	if err != nil {
		return errors.Wrapf(err, "metadata for %s", p.ID)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("%w: metadata for %s is not valid JSON: %w", errors.ErrInvalidMetadata, p.ID, err)
	}
	buf.WriteByte('\n')

	if err := fsutil.WriteFileAtomic(SidecarPath(target), buf.Bytes(), fsutil.FileModeDefault); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrIO, err)
	}
	return nil
}

func (e *Engine) runHook(hookType hooks.HookType, cfg Config, p product.Descriptor, target string) error {
	if e.Hooks == nil {
		return nil
	}
	return e.Hooks.Execute(hookType, hooks.HookContext{
		ProductName:     p.ID,
		ProductPath:     target,
		TargetDirectory: filepath.Dir(target),
		Checksum:        p.Checksum,
		DryRun:          cfg.DryRun,
	})
}

func (e *Engine) pathLock(path string) *sync.Mutex {
	e.once.Do(func() { e.locks = newPathLocks() })
	return e.locks.get(path)
}

// SidecarPath returns the metadata file location for a product file: the
// same path with its extension replaced by ".json".
func SidecarPath(target string) string {
	return strings.TrimSuffix(target, filepath.Ext(target)) + ".json"
}

func fail(res Result, err error) Result {
	res.Outcome = Error
	res.Err = err
	return res
}
