package pipeline

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gpuradar/gpuradar/internal/catalog"
	"github.com/gpuradar/gpuradar/internal/extract"
	"github.com/gpuradar/gpuradar/internal/filter"
	"github.com/gpuradar/gpuradar/internal/ingest"
	"github.com/gpuradar/gpuradar/internal/validate"
)

// fakeSource serves scripted ads per term and page. The page body is
// just "term:page"; parsing decodes it back.
type fakeSource struct {
	pages map[string][][]ingest.RawAd
}

func (s *fakeSource) PageURL(term string, page int) string {
	return fmt.Sprintf("https://market.test/q-%s/?page=%d", term, page)
}

func (s *fakeSource) ParsePage(body []byte) ([]ingest.RawAd, bool, error) {
	var term string
	var page int
	if _, err := fmt.Sscanf(string(body), "%s %d", &term, &page); err != nil {
		return nil, false, err
	}
	pages := s.pages[term]
	if page > len(pages) {
		return nil, false, nil
	}
	return pages[page-1], page < len(pages), nil
}

var pageURLRe = regexp.MustCompile(`q-([^/]+)/\?page=(\d+)`)

type fakeFetcher struct {
	fetched []string
	fail    map[string]error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (ingest.Response, error) {
	if err := ctx.Err(); err != nil {
		return ingest.Response{}, err
	}
	f.fetched = append(f.fetched, url)
	if err, ok := f.fail[url]; ok {
		return ingest.Response{}, err
	}
	m := pageURLRe.FindStringSubmatch(url)
	if m == nil {
		return ingest.Response{}, fmt.Errorf("unexpected url %s", url)
	}
	term := m[1]
	page, _ := strconv.Atoi(m[2])
	return ingest.Response{
		URL:        url,
		StatusCode: 200,
		Body:       []byte(fmt.Sprintf("%s %d", term, page)),
	}, nil
}

func ad(title string, price float64, url string) ingest.RawAd {
	return ingest.RawAd{Title: title, Price: price, URL: url}
}

func newOrchestrator(t *testing.T, src ingest.Source, fetcher ingest.Fetcher, opts Options) *Orchestrator {
	t.Helper()
	store := catalog.NewStore()
	logger := zap.NewNop()
	o := New(
		fetcher,
		src,
		extract.New(store, logger),
		validate.New(store),
		filter.New(filter.DefaultConfig(), logger),
		opts,
		systemClock{},
		logger,
	)
	o.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return o
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func TestRunCollectsAndFilters(t *testing.T) {
	t.Parallel()
	src := &fakeSource{pages: map[string][][]ingest.RawAd{
		"rtx": {
			{
				ad("RTX 3060 12GB", 800, "https://market.test/ad/1"),
				ad("RTX 3060 12GB", 850, "https://market.test/ad/2"),
				ad("RTX 3060 12GB продавам", 900, "https://market.test/ad/3"),
			},
			{
				ad("RTX 3060 12GB спешно", 200, "https://market.test/ad/4"),
				ad("GTX 1018 4GB", 300, "https://market.test/ad/5"),
				ad("Геймърски компютър RTX 3060", 1500, "https://market.test/ad/6"),
			},
		},
		"gtx": {
			{
				// Duplicate of ad/1, found under another term.
				ad("RTX 3060 12GB", 800, "https://market.test/ad/1"),
				ad("GTX 1060 6GB", 350, "https://market.test/ad/7"),
			},
		},
	}}

	opts := DefaultOptions()
	opts.SearchTerms = []string{"rtx", "gtx"}
	opts.MaxPages = 5
	opts.PageDelay = 0

	o := newOrchestrator(t, src, &fakeFetcher{}, opts)
	result, err := o.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Observations["RTX 3060 12GB"], 3)
	require.Len(t, result.Observations["GTX 1060 6GB"], 1)
	require.Equal(t, 1, result.Duplicates)
	require.NotEmpty(t, result.RunID)
	require.False(t, result.FinishedAt.Before(result.StartedAt))

	byCategory := result.Stats.ByCategory
	require.Equal(t, 1, byCategory[ingest.CategoryStatisticalLow])
	require.Equal(t, 1, byCategory[ingest.CategoryTypo])
	require.Equal(t, 1, byCategory[ingest.CategoryFullComputer])
	require.Equal(t, 4, result.Stats.TotalKept)
	require.Equal(t, 3, result.Stats.TotalFiltered)
	require.Len(t, result.Rejected, 3)
}

func TestRunEmptyPageCutoff(t *testing.T) {
	t.Parallel()
	src := &fakeSource{pages: map[string][][]ingest.RawAd{}}

	opts := DefaultOptions()
	opts.SearchTerms = []string{"rtx"}
	opts.AllPages = true
	opts.EmptyPageCutoff = 3
	opts.PageDelay = 0

	fetcher := &fakeFetcher{}
	o := newOrchestrator(t, src, fetcher, opts)
	result, err := o.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, fetcher.fetched, 3)
	require.Equal(t, 3, result.PagesFetched)
	require.Empty(t, result.Observations)
}

func TestRunFetchFailuresCountTowardCutoff(t *testing.T) {
	t.Parallel()
	src := &fakeSource{pages: map[string][][]ingest.RawAd{}}

	opts := DefaultOptions()
	opts.SearchTerms = []string{"rtx"}
	opts.AllPages = true
	opts.EmptyPageCutoff = 2
	opts.PageDelay = 0

	fetcher := &fakeFetcher{fail: map[string]error{
		"https://market.test/q-rtx/?page=1": errors.New("boom"),
		"https://market.test/q-rtx/?page=2": errors.New("boom"),
	}}
	o := newOrchestrator(t, src, fetcher, opts)
	result, err := o.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, result.PagesFetched)
}

func TestRunCanceledContextReturnsPartialResult(t *testing.T) {
	t.Parallel()
	src := &fakeSource{pages: map[string][][]ingest.RawAd{
		"rtx": {{ad("RTX 3060 12GB", 800, "https://market.test/ad/1")}},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := newOrchestrator(t, src, &fakeFetcher{}, DefaultOptions())
	result, err := o.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	require.Equal(t, 0, result.PagesFetched)
}

func TestDeduper(t *testing.T) {
	t.Parallel()
	d := NewDeduper()

	require.True(t, d.MarkIfNew("https://market.test/ad/1"))
	require.False(t, d.MarkIfNew("https://market.test/ad/1"))
	require.True(t, d.MarkIfNew("https://market.test/ad/2"))
	require.False(t, d.MarkIfNew(""))
}
