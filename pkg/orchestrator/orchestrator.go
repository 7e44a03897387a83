// Package orchestrator turns product and geo searches into batches for the
// download engine and aggregates what happened.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/caroline-insar/caroline-download/pkg/download"
	"github.com/caroline-insar/caroline-download/pkg/errors"
	"github.com/caroline-insar/caroline-download/pkg/interval"
	"github.com/caroline-insar/caroline-download/pkg/product"
	"github.com/caroline-insar/caroline-download/pkg/roi"
)

// Orchestrator ties the product repository and the download engine together.
type Orchestrator struct {
	Search ProductSearcher
	DL     Downloader
	Hooks  Hooks // Hooks for progress and event notifications
}

// New constructs an Orchestrator. Hooks can be empty if no event handling is
// needed.
func New(search ProductSearcher, dl Downloader, hooks Hooks) *Orchestrator {
	return &Orchestrator{
		Search: search,
		DL:     dl,
		Hooks:  hooks,
	}
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Run performs the product search (if productID is set) and then the geo
// search (if geo is set). Per-product and per-query failures are recorded in
// the summary; only failures that invalidate the whole run are returned.
// Once searching has started, a PhaseDone event always ends the run and
// carries the error of an aborted one.
func (o *Orchestrator) Run(ctx context.Context, cfg download.Config, geo *GeoSearch, productID string) (Summary, error) {
	summary := Summary{Outcomes: make(map[download.Outcome]int)}

	if geo == nil && productID == "" {
		return summary, errors.ErrNoSearch
	}
	if o.Search == nil || o.DL == nil {
		return summary, fmt.Errorf("orchestrator is not configured")
	}

	if productID != "" {
		if err := o.runProductSearch(ctx, cfg, productID, &summary); err != nil {
			emit(o.Hooks, Event{Phase: PhaseDone, Msg: "download aborted", Err: err})
			return summary, err
		}
	}

	if geo != nil {
		if err := o.runGeoSearch(ctx, cfg, *geo, &summary); err != nil {
			emit(o.Hooks, Event{Phase: PhaseDone, Msg: "download aborted", Err: err})
			return summary, err
		}
	}

	emit(o.Hooks, Event{Phase: PhaseDone, Msg: "download done"})
	return summary, nil
}

func (o *Orchestrator) runProductSearch(ctx context.Context, cfg download.Config, id string, summary *Summary) error {
	emit(o.Hooks, Event{Phase: PhaseSearching, ID: id, Msg: "product search"})
	summary.Queries++

	found, err := o.Search.SearchByID(ctx, id)
	if err != nil {
		summary.FailedQueries++
		emit(o.Hooks, Event{Phase: PhaseQueryFailed, ID: id, Msg: "product search failed", Err: err})
		return nil
	}

	switch {
	case len(found) > 1:
		return errors.Wrapf(errors.ErrUnexpectedMultipleMatches, "%d products for %s", len(found), id)
	case len(found) == 0:
		emit(o.Hooks, Event{Phase: PhaseWarning, ID: id, Msg: "product search returned no products"})
		return nil
	}

	o.download(ctx, cfg, found, summary)
	return nil
}

func (o *Orchestrator) runGeoSearch(ctx context.Context, cfg download.Config, geo GeoSearch, summary *Summary) error {
	wkt, err := roi.ReadWKT(geo.ROIWKTFile)
	if err != nil {
		return err
	}

	for _, iv := range interval.SplitMonthly(geo.Start, geo.End) {
		if err := ctx.Err(); err != nil {
			return err
		}

		q := product.Query{
			Dataset:         geo.Dataset,
			Start:           iv.Start,
			End:             iv.End,
			IntersectsWith:  wkt,
			RelativeOrbits:  geo.RelativeOrbits,
			ProcessingLevel: geo.ProductType,
		}
		label := fmt.Sprintf("%s..%s", iv.Start.Format("2006-01-02"), iv.End.Format("2006-01-02"))

		emit(o.Hooks, Event{Phase: PhaseSearching, ID: label, Msg: "geo search"})
		summary.Queries++

		found, err := o.Search.SearchByQuery(ctx, q)
		if err != nil {
			summary.FailedQueries++
			emit(o.Hooks, Event{Phase: PhaseQueryFailed, ID: label, Msg: "geo search failed", Err: err})
			continue
		}
		if len(found) == 0 {
			emit(o.Hooks, Event{Phase: PhaseWarning, ID: label, Msg: "geo search returned no products"})
			continue
		}

		o.download(ctx, cfg, found, summary)
	}
	return nil
}

func (o *Orchestrator) download(ctx context.Context, cfg download.Config, products []product.Descriptor, summary *Summary) {
	results := o.DL.FetchAll(ctx, cfg, products)
	summary.addResults(results)
	for _, r := range results {
		emit(o.Hooks, Event{
			Phase:   PhaseProduct,
			ID:      r.Descriptor.ID,
			Msg:     r.Path,
			Outcome: r.Outcome,
			Err:     r.Err,
		})
	}
}
