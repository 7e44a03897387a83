package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/caroline-insar/caroline-download/pkg/download"
	"github.com/caroline-insar/caroline-download/pkg/errors"
	ocmocks "github.com/caroline-insar/caroline-download/pkg/orchestrator/mocks"
	"github.com/caroline-insar/caroline-download/pkg/product"
)

const testROI = "POLYGON((4 52, 5 52, 5 53, 4 53, 4 52))"

func writeROI(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roi.wkt")
	require.NoError(t, os.WriteFile(path, []byte(testROI+"\n"), 0o644))
	return path
}

func descriptor(id string) product.Descriptor {
	return product.Descriptor{ID: id, FileName: id + ".zip"}
}

// resultsFor reports every product with the given outcome.
func resultsFor(outcome download.Outcome, dryRun bool) func(context.Context, download.Config, []product.Descriptor) []download.Result {
	return func(_ context.Context, _ download.Config, ps []product.Descriptor) []download.Result {
		out := make([]download.Result, len(ps))
		for i, p := range ps {
			out[i] = download.Result{Outcome: outcome, Descriptor: p, DryRun: dryRun}
		}
		return out
	}
}

func TestRun_ProductSearch(t *testing.T) {
	ctrl := gomock.NewController(t)
	search := ocmocks.NewMockProductSearcher(ctrl)
	dl := ocmocks.NewMockDownloader(ctrl)
	cfg := download.Config{BaseDirectory: "/data", Verify: true}

	p := descriptor("S1A_X")
	search.EXPECT().SearchByID(gomock.Any(), "S1A_X").Return([]product.Descriptor{p}, nil)
	dl.EXPECT().FetchAll(gomock.Any(), cfg, []product.Descriptor{p}).DoAndReturn(resultsFor(download.Fetched, false))

	var events []Event
	orch := New(search, dl, Hooks{OnEvent: func(e Event) { events = append(events, e) }})

	summary, err := orch.Run(context.Background(), cfg, nil, "S1A_X")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Queries)
	assert.Equal(t, 1, summary.Products)
	assert.Equal(t, 1, summary.Count(download.Fetched))
	assert.False(t, summary.Failed())

	require.NotEmpty(t, events)
	assert.Equal(t, PhaseSearching, events[0].Phase)
	assert.Contains(t, events, Event{Phase: PhaseProduct, ID: "S1A_X", Outcome: download.Fetched})
	assert.Equal(t, PhaseDone, events[len(events)-1].Phase)
}

func TestRun_ProductSearchMultipleMatchesAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	search := ocmocks.NewMockProductSearcher(ctrl)
	dl := ocmocks.NewMockDownloader(ctrl)

	search.EXPECT().SearchByID(gomock.Any(), "S1A_X").Return([]product.Descriptor{descriptor("a"), descriptor("b")}, nil)
	dl.EXPECT().FetchAll(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// the geo search must not run either
	geo := &GeoSearch{ROIWKTFile: writeROI(t), Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}

	var events []Event
	orch := New(search, dl, Hooks{OnEvent: func(e Event) { events = append(events, e) }})
	_, err := orch.Run(context.Background(), download.Config{}, geo, "S1A_X")
	assert.ErrorIs(t, err, errors.ErrUnexpectedMultipleMatches)

	require.Len(t, events, 2)
	assert.Equal(t, PhaseSearching, events[0].Phase)
	assert.Equal(t, PhaseDone, events[1].Phase)
	assert.ErrorIs(t, events[1].Err, errors.ErrUnexpectedMultipleMatches)
}

func TestRun_ProductSearchNoMatchWarns(t *testing.T) {
	ctrl := gomock.NewController(t)
	search := ocmocks.NewMockProductSearcher(ctrl)
	dl := ocmocks.NewMockDownloader(ctrl)
	search.EXPECT().SearchByID(gomock.Any(), "S1A_X").Return(nil, nil)

	var warned bool
	orch := New(search, dl, Hooks{OnEvent: func(e Event) {
		if e.Phase == PhaseWarning {
			warned = true
		}
	}})

	summary, err := orch.Run(context.Background(), download.Config{}, nil, "S1A_X")
	require.NoError(t, err)
	assert.True(t, warned)
	assert.Zero(t, summary.Products)
}

func TestRun_ProductSearchFailureIsCounted(t *testing.T) {
	ctrl := gomock.NewController(t)
	search := ocmocks.NewMockProductSearcher(ctrl)
	dl := ocmocks.NewMockDownloader(ctrl)
	search.EXPECT().SearchByID(gomock.Any(), "S1A_X").Return(nil, errors.Wrap(errors.ErrSearchFailed, "status 500"))

	orch := New(search, dl, Hooks{})
	summary, err := orch.Run(context.Background(), download.Config{}, nil, "S1A_X")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.FailedQueries)
	assert.True(t, summary.Failed())
}

func TestRun_GeoSearchIteratesMonths(t *testing.T) {
	ctrl := gomock.NewController(t)
	search := ocmocks.NewMockProductSearcher(ctrl)
	dl := ocmocks.NewMockDownloader(ctrl)
	cfg := download.Config{BaseDirectory: "/data", DryRun: true}

	geo := &GeoSearch{
		Dataset:        "SENTINEL-1",
		Start:          time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		End:            time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		ROIWKTFile:     writeROI(t),
		RelativeOrbits: []int{88},
		ProductType:    "SLC",
	}

	var queries []product.Query
	gomock.InOrder(
		search.EXPECT().SearchByQuery(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q product.Query) ([]product.Descriptor, error) {
				queries = append(queries, q)
				return []product.Descriptor{descriptor("jan-1"), descriptor("jan-2")}, nil
			}),
		search.EXPECT().SearchByQuery(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q product.Query) ([]product.Descriptor, error) {
				queries = append(queries, q)
				return nil, errors.Wrap(errors.ErrSearchFailed, "status 502")
			}),
		search.EXPECT().SearchByQuery(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q product.Query) ([]product.Descriptor, error) {
				queries = append(queries, q)
				return []product.Descriptor{descriptor("mar-1")}, nil
			}),
	)
	dl.EXPECT().FetchAll(gomock.Any(), cfg, gomock.Len(2)).DoAndReturn(resultsFor(download.Fetched, true))
	dl.EXPECT().FetchAll(gomock.Any(), cfg, gomock.Len(1)).DoAndReturn(resultsFor(download.Skipped, true))

	orch := New(search, dl, Hooks{})
	summary, err := orch.Run(context.Background(), cfg, geo, "")
	require.NoError(t, err)

	require.Len(t, queries, 3)
	for _, q := range queries {
		assert.Equal(t, "SENTINEL-1", q.Dataset)
		assert.Equal(t, testROI, q.IntersectsWith)
		assert.Equal(t, []int{88}, q.RelativeOrbits)
		assert.Equal(t, "SLC", q.ProcessingLevel)
	}
	assert.True(t, queries[0].Start.Equal(geo.Start))
	assert.True(t, queries[0].End.Equal(time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC)))
	assert.True(t, queries[1].End.Equal(time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC)))
	assert.True(t, queries[2].End.Equal(geo.End))

	assert.Equal(t, 3, summary.Queries)
	assert.Equal(t, 1, summary.FailedQueries)
	assert.Equal(t, 3, summary.Products)
	assert.Equal(t, 2, summary.Count(download.Fetched))
	assert.Equal(t, 1, summary.Count(download.Skipped))
	assert.Equal(t, 2, summary.DryRun)
}

func TestRun_GeoSearchInvalidROIAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	search := ocmocks.NewMockProductSearcher(ctrl)
	dl := ocmocks.NewMockDownloader(ctrl)

	roiPath := filepath.Join(t.TempDir(), "roi.wkt")
	require.NoError(t, os.WriteFile(roiPath, []byte("not a geometry"), 0o644))
	geo := &GeoSearch{ROIWKTFile: roiPath, Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}

	var last Event
	orch := New(search, dl, Hooks{OnEvent: func(e Event) { last = e }})
	_, err := orch.Run(context.Background(), download.Config{}, geo, "")
	assert.ErrorIs(t, err, errors.ErrInvalidROI)
	assert.Equal(t, PhaseDone, last.Phase)
	assert.ErrorIs(t, last.Err, errors.ErrInvalidROI)
}

func TestRun_BothSearches(t *testing.T) {
	ctrl := gomock.NewController(t)
	search := ocmocks.NewMockProductSearcher(ctrl)
	dl := ocmocks.NewMockDownloader(ctrl)

	gomock.InOrder(
		search.EXPECT().SearchByID(gomock.Any(), "S1A_X").Return([]product.Descriptor{descriptor("S1A_X")}, nil),
		search.EXPECT().SearchByQuery(gomock.Any(), gomock.Any()).Return([]product.Descriptor{descriptor("S1A_X")}, nil),
	)
	dl.EXPECT().FetchAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(resultsFor(download.Fetched, false))
	dl.EXPECT().FetchAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(resultsFor(download.Skipped, false))

	geo := &GeoSearch{ROIWKTFile: writeROI(t), Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)}

	orch := New(search, dl, Hooks{})
	summary, err := orch.Run(context.Background(), download.Config{}, geo, "S1A_X")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Queries)
	assert.Equal(t, 2, summary.Products)
	assert.Equal(t, 1, summary.Count(download.Fetched))
	assert.Equal(t, 1, summary.Count(download.Skipped))
}

func TestRun_NothingToDo(t *testing.T) {
	orch := New(nil, nil, Hooks{})
	_, err := orch.Run(context.Background(), download.Config{}, nil, "")
	assert.ErrorIs(t, err, errors.ErrNoSearch)
}

func TestRun_NotConfigured(t *testing.T) {
	orch := &Orchestrator{}
	_, err := orch.Run(context.Background(), download.Config{}, nil, "S1A_X")
	assert.Error(t, err)
}

func TestSummary_Failed(t *testing.T) {
	s := Summary{}
	s.addResults([]download.Result{{Outcome: download.Fetched}, {Outcome: download.Skipped}})
	assert.False(t, s.Failed())

	s.addResults([]download.Result{{Outcome: download.VerificationFailed}})
	assert.True(t, s.Failed())
	assert.Equal(t, 3, s.Products)
}
