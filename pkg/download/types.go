package download

import (
	"github.com/caroline-insar/caroline-download/pkg/checksum"
	"github.com/caroline-insar/caroline-download/pkg/product"
)

// Outcome classifies what happened to one product.
type Outcome int

const (
	// Skipped means the target file already existed and force was off.
	Skipped Outcome = iota
	// Replaced means an existing file was removed and fetched again.
	Replaced
	// Fetched means the product was not present and was downloaded.
	Fetched
	// VerificationFailed means the file was downloaded but did not match
	// the published checksum or is not a valid SAFE archive.
	VerificationFailed
	// Error means the product could not be processed.
	Error
)

var outcomeNames = map[Outcome]string{
	Skipped:            "skipped",
	Replaced:           "replaced",
	Fetched:            "fetched",
	VerificationFailed: "verification_failed",
	Error:              "error",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "unknown"
}

// Outcomes lists every outcome in declaration order.
func Outcomes() []Outcome {
	return []Outcome{Skipped, Replaced, Fetched, VerificationFailed, Error}
}

// Result reports the decision taken for one product.
type Result struct {
	Outcome    Outcome
	Descriptor product.Descriptor
	Path       string // target file, empty if the storage path could not be composed
	DryRun     bool
	Err        error
}

// Config controls the engine for a single run.
type Config struct {
	BaseDirectory     string
	Force             bool
	DryRun            bool
	Verify            bool
	ChecksumAlgorithm checksum.Algorithm
	InspectArchive    bool
	Concurrency       int
}

func (c Config) concurrency() int {
	if c.Concurrency <= 0 {
		return 1
	}
	return c.Concurrency
}
