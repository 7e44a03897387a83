// Package hooks runs user supplied Tengo scripts after a product has been
// downloaded or has failed verification.
package hooks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/caroline-insar/caroline-download/pkg/errors"
)

// HookFileExtension is the extension of hook script files.
const HookFileExtension = ".tengo"

// LoadFromDir registers every <hook-type>.tengo file found in dir. Files with
// other names are ignored. A missing directory is not an error.
func LoadFromDir(manager HookManager, dir string) error {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(ErrHookLoad, "read hooks directory %s: %v", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != HookFileExtension {
			continue
		}

		hookType := HookType(strings.TrimSuffix(entry.Name(), HookFileExtension))
		if !hookType.valid() {
			continue
		}

		hookPath := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(hookPath)
		if err != nil {
			return errors.Wrapf(ErrHookLoad, "read %s: %v", hookPath, err)
		}

		if err := manager.AddHook(Hook{Type: hookType, Content: string(content)}); err != nil {
			return errors.Wrapf(err, "error adding hook %s", hookType)
		}
	}

	return nil
}

// HookTemplate generates a template for a hook script.
func HookTemplate(hookType HookType) string {
	switch hookType {
	case PostDownload:
		return `// Post-download hook
// This script runs after a product was downloaded and verified.
// Available variables:
// - productName: string - scene name of the product
// - productPath: string - path of the downloaded zip file
// - targetDirectory: string - directory holding the product and its metadata
// - checksum: string - checksum published by the archive
// - dryRun: bool - always false for post-download
// - vars: map - custom variables from the configuration
// Assign err (err = "reason") to mark the product as failed.

/*
fmt := import("fmt")
fmt.println("downloaded ", productName)
*/`

	case VerificationFailed:
		return `// Verification-failed hook
// This script runs when a downloaded product did not pass verification.
// Available variables: same as post-download hook

/*
os := import("os")
os.remove(productPath)
*/`

	default:
		return "// Unknown hook type: " + string(hookType)
	}
}
