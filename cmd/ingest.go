package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gpuradar/gpuradar/internal/catalog"
	"github.com/gpuradar/gpuradar/internal/clock"
	"github.com/gpuradar/gpuradar/internal/config"
	"github.com/gpuradar/gpuradar/internal/extract"
	"github.com/gpuradar/gpuradar/internal/fetch"
	"github.com/gpuradar/gpuradar/internal/filter"
	"github.com/gpuradar/gpuradar/internal/ingest"
	"github.com/gpuradar/gpuradar/internal/metrics"
	"github.com/gpuradar/gpuradar/internal/pipeline"
	"github.com/gpuradar/gpuradar/internal/ratelimit"
	"github.com/gpuradar/gpuradar/internal/source/olx"
	"github.com/gpuradar/gpuradar/internal/storage/postgres"
	"github.com/gpuradar/gpuradar/internal/validate"
)

func newIngestCmd() *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Runs one full ingestion pass",
		Long: `Scans the configured search terms page by page, extracts and validates
model names, filters outliers and prints the cleaned per-model price
summary. When a database DSN is configured the kept observations replace
the previous run's rows and the rejection audit trail is appended.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIngest(cmd.Context(), metricsAddr)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run (e.g. :9102)")
	return cmd
}

func runIngest(parent context.Context, metricsAddr string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if metricsAddr != "" {
		serveMetrics(metricsAddr, logger)
	}

	// A run with no connectivity would only produce noise, so check
	// the exit IP before touching the target. A failed Tor probe with
	// working direct connectivity downgrades the run to no proxy.
	proxyURL := ""
	if len(cfg.Proxy.URLs) > 0 {
		proxyURL = cfg.Proxy.URLs[0]
	}
	check := fetch.NewConnectivityCheck(fetch.ProxyMode(cfg.Proxy.Mode), proxyURL, logger)
	mode, err := check.Run(ctx)
	if err != nil {
		return err
	}
	cfg.Proxy.Mode = string(mode)

	orch, store, err := buildPipeline(cfg, logger)
	if err != nil {
		return err
	}

	result, runErr := orch.Run(ctx)

	// Partial data from an interrupted run is still valid per model
	// group, so the summary and persistence run regardless.
	printSummary(result, store)

	if cfg.DB.DSN != "" {
		if err := persist(ctx, cfg, logger, result); err != nil {
			return err
		}
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			logger.Warn("Run interrupted, partial results reported", zap.Error(runErr))
			return nil
		}
		return fmt.Errorf("ingestion run: %w", runErr)
	}
	return nil
}

// buildPipeline wires the fetch, extract, validate and filter stages
// into one orchestrator from loaded configuration.
func buildPipeline(cfg config.Config, logger *zap.Logger) (*pipeline.Orchestrator, *catalog.Store, error) {
	clk := clock.System{}
	maxCalls, window := cfg.RateLimiterSettings()
	limiter := ratelimit.New(maxCalls, window, clk)

	var rotator fetch.Rotator
	if fetch.ProxyMode(cfg.Proxy.Mode) == fetch.ProxyTor {
		tor := fetch.NewTorRotator(logger)
		if len(cfg.Proxy.TorControlPorts) > 0 {
			tor.ControlPorts = cfg.Proxy.TorControlPorts
		}
		rotator = tor
	}

	fetcher, err := fetch.New(cfg.FetchSettings(), limiter, rotator, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init fetcher: %w", err)
	}

	store := catalog.NewStore()
	orch := pipeline.New(
		fetcher,
		olx.New(),
		extract.New(store, logger),
		validate.New(store),
		filter.New(cfg.FilterSettings(), logger),
		cfg.PipelineOptions(),
		clk,
		logger,
	)
	return orch, store, nil
}

func persist(ctx context.Context, cfg config.Config, logger *zap.Logger, result *ingest.Result) error {
	// Persistence gets its own deadline so a hung database does not pin
	// an otherwise finished run.
	dbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Minute)
	defer cancel()

	store, err := postgres.NewListingStore(dbCtx, postgres.ListingStoreConfig{DSN: cfg.DB.DSN})
	if err != nil {
		return fmt.Errorf("init listing store: %w", err)
	}
	defer store.Close()

	if err := store.ReplaceListings(dbCtx, result); err != nil {
		return fmt.Errorf("store listings: %w", err)
	}
	if err := store.RecordRejections(dbCtx, result); err != nil {
		return fmt.Errorf("store rejections: %w", err)
	}
	logger.Info("Persisted run",
		zap.String("run_id", result.RunID),
		zap.Int("listings", result.TotalObservations()),
		zap.Int("rejections", len(result.Rejected)))

	models := make([]string, 0, len(result.Observations))
	for model := range result.Observations {
		models = append(models, model)
	}
	sort.Strings(models)
	for _, model := range models {
		stats, err := store.PriceStats(dbCtx, model)
		if err != nil {
			logger.Warn("Price stats query failed", zap.String("model", model), zap.Error(err))
			break
		}
		logger.Info("Stored price stats",
			zap.String("model", stats.Model),
			zap.Int64("count", stats.Count),
			zap.Float64("min", stats.Min),
			zap.Float64("median", stats.Median),
			zap.Float64("max", stats.Max))
	}
	return nil
}

func printSummary(result *ingest.Result, store *catalog.Store) {
	fmt.Printf("Run %s: %d pages, %d observations kept, %d filtered, %d duplicates\n",
		result.RunID, result.PagesFetched, result.TotalObservations(),
		result.Stats.TotalFiltered, result.Duplicates)

	models := make([]string, 0, len(result.Observations))
	for model := range result.Observations {
		models = append(models, model)
	}
	sort.Strings(models)
	for _, model := range models {
		obs := result.Observations[model]
		if ref, ok := pipeline.ReferencePrice(obs); ok {
			fmt.Printf("  %-22s %3d listings, reference price %.0f\n", model, len(obs), ref)
		}
	}

	ranking := pipeline.ValueRanking(result.Observations, store)
	if len(ranking) > 0 {
		fmt.Println("Best value (FPS per unit):")
		for i, entry := range ranking {
			if i == 10 {
				break
			}
			fmt.Printf("  %2d. %-22s %.3f (min price %.0f)\n", i+1, entry.Model, entry.Value, entry.MinPrice)
		}
	}

	if len(result.Stats.ByCategory) > 0 {
		fmt.Println("Rejections by category:")
		cats := make([]string, 0, len(result.Stats.ByCategory))
		for cat := range result.Stats.ByCategory {
			cats = append(cats, string(cat))
		}
		sort.Strings(cats)
		for _, cat := range cats {
			fmt.Printf("  %-26s %d\n", cat, result.Stats.ByCategory[ingest.RejectionCategory(cat)])
		}
	}
}

func serveMetrics(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Metrics server stopped", zap.Error(err))
		}
	}()
	logger.Info("Serving metrics", zap.String("addr", addr))
}
