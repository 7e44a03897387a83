//go:generate mockgen -destination=./mocks/download.go . ProductFetcher,ArchiveInspector,HookRunner

package download

import (
	"context"

	"github.com/caroline-insar/caroline-download/pkg/hooks"
	"github.com/caroline-insar/caroline-download/pkg/product"
)

// ProductFetcher is the part of the product repository the engine needs.
type ProductFetcher interface {
	// Fetch downloads the product file into dir, naming it p.FileName.
	Fetch(ctx context.Context, p product.Descriptor, dir string) error

	// MetadataJSON returns the archive's metadata document for p.
	MetadataJSON(p product.Descriptor) ([]byte, error)
}

// ArchiveInspector checks the structure of a downloaded product archive.
type ArchiveInspector interface {
	InspectSAFE(ctx context.Context, zipPath string) error
}

// HookRunner executes user scripts around downloads.
type HookRunner interface {
	Execute(hookType hooks.HookType, hctx hooks.HookContext) error
}
