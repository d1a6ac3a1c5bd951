// Package pipeline orchestrates an ingestion run: fetch result pages
// per search term, extract and validate model mentions, deduplicate
// across terms, then run the statistical filter over the collected
// observations.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gpuradar/gpuradar/internal/clock"
	"github.com/gpuradar/gpuradar/internal/extract"
	"github.com/gpuradar/gpuradar/internal/filter"
	"github.com/gpuradar/gpuradar/internal/ingest"
	"github.com/gpuradar/gpuradar/internal/metrics"
	"github.com/gpuradar/gpuradar/internal/validate"
)

// Options bound one run.
type Options struct {
	SearchTerms []string
	// MaxPages caps pages per term; ignored when AllPages is set.
	MaxPages int
	AllPages bool
	// EmptyPageCutoff stops a term after this many consecutive pages
	// with no listings or failed fetches.
	EmptyPageCutoff int
	// PageDelay is the pause between pages of one term.
	PageDelay time.Duration
}

// DefaultOptions mirrors a cautious interactive run.
func DefaultOptions() Options {
	return Options{
		SearchTerms:     []string{"видео карта", "rtx", "gtx", "radeon rx"},
		MaxPages:        3,
		EmptyPageCutoff: 3,
		PageDelay:       10 * time.Second,
	}
}

// Orchestrator wires the run.
type Orchestrator struct {
	fetcher   ingest.Fetcher
	source    ingest.Source
	extractor *extract.Extractor
	validator *validate.Validator
	filter    *filter.Filter
	opts      Options
	logger    *zap.Logger
	clk       clock.Clock
	sleep     func(ctx context.Context, d time.Duration) error
}

// New builds an Orchestrator.
func New(
	fetcher ingest.Fetcher,
	source ingest.Source,
	extractor *extract.Extractor,
	validator *validate.Validator,
	f *filter.Filter,
	opts Options,
	clk clock.Clock,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		fetcher:   fetcher,
		source:    source,
		extractor: extractor,
		validator: validator,
		filter:    f,
		opts:      opts,
		logger:    logger,
		clk:       clk,
		sleep:     sleepWithContext,
	}
}

// Run executes one full ingestion pass. The context is checked between
// pages and terms; cancellation returns the work done so far together
// with the context error.
func (o *Orchestrator) Run(ctx context.Context) (*ingest.Result, error) {
	result := &ingest.Result{
		RunID:     uuid.NewString(),
		StartedAt: o.clk.Now(),
	}
	logger := o.logger.With(zap.String("run_id", result.RunID))

	deduper := NewDeduper()
	tracker := NewRejectionTracker()
	collected := make(map[string][]ingest.PriceObservation)

	var runErr error

terms:
	for _, term := range o.opts.SearchTerms {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		logger.Info("scanning search term", zap.String("term", term))

		pages, err := o.scanTerm(ctx, term, deduper, tracker, collected, result, logger)
		result.PagesFetched += pages
		if err != nil {
			runErr = err
			break terms
		}
	}

	o.finish(result, collected, tracker, logger)
	if runErr != nil {
		metrics.CountRun("error")
		return result, runErr
	}
	metrics.CountRun("ok")
	return result, nil
}

// scanTerm walks result pages for one term until the page cap, the
// empty-page cutoff or the marketplace's last page. Fetch and parse
// failures count toward the cutoff instead of aborting the run.
func (o *Orchestrator) scanTerm(
	ctx context.Context,
	term string,
	deduper *Deduper,
	tracker *RejectionTracker,
	collected map[string][]ingest.PriceObservation,
	result *ingest.Result,
	logger *zap.Logger,
) (int, error) {
	consecutiveEmpty := 0
	fetched := 0

	for page := 1; ; page++ {
		if !o.opts.AllPages && page > o.opts.MaxPages {
			logger.Debug("page cap reached", zap.String("term", term), zap.Int("max_pages", o.opts.MaxPages))
			return fetched, nil
		}
		if consecutiveEmpty >= o.opts.EmptyPageCutoff {
			logger.Info("no more results", zap.String("term", term), zap.Int("empty_pages", consecutiveEmpty))
			return fetched, nil
		}
		if err := ctx.Err(); err != nil {
			return fetched, err
		}
		if page > 1 && o.opts.PageDelay > 0 {
			if err := o.sleep(ctx, o.opts.PageDelay); err != nil {
				return fetched, err
			}
		}

		pageURL := o.source.PageURL(term, page)
		resp, err := o.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return fetched, ctx.Err()
			}
			logger.Warn("page fetch failed",
				zap.String("url", pageURL), zap.Error(err))
			consecutiveEmpty++
			continue
		}
		fetched++

		ads, hasNext, err := o.source.ParsePage(resp.Body)
		if err != nil {
			logger.Warn("page parse failed",
				zap.String("url", pageURL), zap.Error(err))
			consecutiveEmpty++
			continue
		}
		if len(ads) == 0 {
			consecutiveEmpty++
			logger.Debug("empty page",
				zap.String("term", term), zap.Int("page", page))
			continue
		}
		consecutiveEmpty = 0

		accepted := 0
		for _, ad := range ads {
			if o.processAd(ad, deduper, tracker, collected, result) {
				accepted++
			}
		}
		logger.Info("page complete",
			zap.String("term", term),
			zap.Int("page", page),
			zap.Int("ads", len(ads)),
			zap.Int("accepted", accepted))

		if !hasNext {
			logger.Debug("last page reached", zap.String("term", term), zap.Int("page", page))
			return fetched, nil
		}
	}
}

// processAd runs one listing through the precheck, extraction and
// validation stages. Returns true when an observation was collected.
func (o *Orchestrator) processAd(
	ad ingest.RawAd,
	deduper *Deduper,
	tracker *RejectionTracker,
	collected map[string][]ingest.PriceObservation,
	result *ingest.Result,
) bool {
	fullText := ad.Title + " " + ad.Description

	// Whole-machine listings would otherwise surface as confusing
	// missing-VRAM rejections after extraction.
	if term, ok := filter.MatchFullComputer(fullText); ok {
		tracker.Reject(ingest.RejectionRecord{
			Title:    ad.Title,
			Price:    ad.Price,
			URL:      ad.URL,
			Reason:   fmt.Sprintf("bundled system listing: %q", term),
			Category: ingest.CategoryFullComputer,
		})
		metrics.CountListing("rejected")
		return false
	}

	model, rej := o.extractor.Extract(ad.Title, ad.Description)
	if rej != nil {
		tracker.Reject(ingest.RejectionRecord{
			Title:    ad.Title,
			Price:    ad.Price,
			URL:      ad.URL,
			Model:    rej.Model,
			Reason:   rej.Reason,
			Category: rej.Category,
		})
		if model == "" {
			metrics.CountListing("rejected")
			return false
		}
		// The VRAM figure was discarded but the base model survives.
	}
	if model == "" {
		metrics.CountListing("skipped")
		return false
	}

	outcome := o.validator.Validate(model)
	if !outcome.Accepted() {
		tracker.Reject(ingest.RejectionRecord{
			Title:    ad.Title,
			Price:    ad.Price,
			URL:      ad.URL,
			Model:    outcome.Base,
			Reason:   outcome.Reason,
			Category: outcome.Category,
		})
		metrics.CountListing("rejected")
		return false
	}

	if !deduper.MarkIfNew(ad.URL) {
		result.Duplicates++
		metrics.CountDuplicate()
		metrics.CountListing("skipped")
		return false
	}

	collected[outcome.Model] = append(collected[outcome.Model], ingest.PriceObservation{
		Model:       outcome.Model,
		Price:       ad.Price,
		URL:         ad.URL,
		Title:       ad.Title,
		Description: ad.Description,
	})
	metrics.CountListing("kept")
	return true
}

// finish runs the statistical filter over everything collected and
// folds both rejection sources into the final result.
func (o *Orchestrator) finish(
	result *ingest.Result,
	collected map[string][]ingest.PriceObservation,
	tracker *RejectionTracker,
	logger *zap.Logger,
) {
	kept, filterStats, filterRejected := o.filter.Apply(collected)

	stats := ingest.NewFilterStats()
	stats.Merge(tracker.Stats())
	stats.Merge(filterStats)

	result.Observations = kept
	result.Stats = stats
	result.Rejected = append(tracker.Records(), filterRejected...)
	result.FinishedAt = o.clk.Now()

	logger.Info("run complete",
		zap.Int("models", len(kept)),
		zap.Int("observations", result.TotalObservations()),
		zap.Int("filtered", stats.TotalFiltered),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("pages", result.PagesFetched))
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
