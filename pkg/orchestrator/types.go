//go:generate mockgen -destination=./mocks/orchestrator.go . ProductSearcher,Downloader

package orchestrator

import (
	"context"
	"time"

	"github.com/caroline-insar/caroline-download/pkg/download"
	"github.com/caroline-insar/caroline-download/pkg/product"
	"github.com/samber/lo"
)

// ProductSearcher is the search side of the product repository.
type ProductSearcher interface {
	SearchByID(ctx context.Context, id string) ([]product.Descriptor, error)
	SearchByQuery(ctx context.Context, q product.Query) ([]product.Descriptor, error)
}

// Downloader applies the download decision to a batch of products.
type Downloader interface {
	FetchAll(ctx context.Context, cfg download.Config, products []product.Descriptor) []download.Result
}

// GeoSearch describes an area and period to download.
type GeoSearch struct {
	Dataset        string
	Start          time.Time
	End            time.Time
	ROIWKTFile     string
	RelativeOrbits []int
	ProductType    string
}

// Event phases.
const (
	PhaseSearching   = "searching"
	PhaseQueryFailed = "query-failed"
	PhaseWarning     = "warning"
	PhaseProduct     = "product"
	PhaseDone        = "done"
)

// Event represents a progress notification.
type Event struct {
	Phase   string // searching|query-failed|warning|product|done
	ID      string // product id or query description
	Msg     string
	Outcome download.Outcome // set for PhaseProduct
	Err     error
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// Summary aggregates the outcome of a run.
type Summary struct {
	Outcomes      map[download.Outcome]int
	Queries       int
	FailedQueries int
	Products      int
	DryRun        int
}

// Count returns how many products ended with o.
func (s Summary) Count(o download.Outcome) int {
	return s.Outcomes[o]
}

// Failed reports whether anything in the run did not succeed.
func (s Summary) Failed() bool {
	return s.FailedQueries > 0 || s.Count(download.Error) > 0 || s.Count(download.VerificationFailed) > 0
}

func (s *Summary) addResults(results []download.Result) {
	if s.Outcomes == nil {
		s.Outcomes = make(map[download.Outcome]int)
	}
	for outcome, n := range lo.CountValuesBy(results, func(r download.Result) download.Outcome { return r.Outcome }) {
		s.Outcomes[outcome] += n
	}
	s.Products += len(results)
	s.DryRun += lo.CountBy(results, func(r download.Result) bool { return r.DryRun && r.Outcome != download.Skipped && r.Outcome != download.Error })
}
