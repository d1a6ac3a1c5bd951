// Package postgres provides Postgres-backed persistence for run results.
//
// Expected schema:
//
//	CREATE TABLE listings (
//		run_id      TEXT             NOT NULL,
//		model       TEXT             NOT NULL,
//		price       DOUBLE PRECISION NOT NULL,
//		url         TEXT             NOT NULL,
//		title       TEXT             NOT NULL,
//		ingested_at TIMESTAMPTZ      NOT NULL
//	);
//
//	CREATE TABLE rejections (
//		run_id      TEXT             NOT NULL,
//		model       TEXT             NOT NULL,
//		price       DOUBLE PRECISION NOT NULL,
//		url         TEXT             NOT NULL,
//		title       TEXT             NOT NULL,
//		category    TEXT             NOT NULL,
//		reason      TEXT             NOT NULL,
//		ingested_at TIMESTAMPTZ      NOT NULL
//	);
package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gpuradar/gpuradar/internal/ingest"
)

// ListingStoreConfig controls the Postgres connection pool used for listings.
type ListingStoreConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// ListingStore writes kept observations and rejection audit rows into Postgres.
type ListingStore struct {
	pool db
}

// NewListingStore creates a Postgres-backed ListingStore using the provided config.
func NewListingStore(ctx context.Context, cfg ListingStoreConfig) (*ListingStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db.dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &ListingStore{pool: pool}, nil
}

// NewListingStoreWithPool constructs a store from an existing pool (primarily for testing).
func NewListingStoreWithPool(pool db) (*ListingStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return &ListingStore{pool: pool}, nil
}

// Close releases the underlying pool resources.
func (s *ListingStore) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

var listingColumns = []string{"run_id", "model", "price", "url", "title", "ingested_at"}

// ReplaceListings swaps the listings table contents for the kept observations
// of the given run. The delete and bulk copy run in one transaction so readers
// never observe a partially loaded run.
func (s *ListingStore) ReplaceListings(ctx context.Context, res *ingest.Result) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("listing store is not configured")
	}
	if res == nil || res.RunID == "" {
		return fmt.Errorf("run id is required")
	}

	rows := make([][]any, 0, res.TotalObservations())
	for _, model := range sortedModels(res.Observations) {
		for _, obs := range res.Observations[model] {
			rows = append(rows, []any{res.RunID, obs.Model, obs.Price, obs.URL, obs.Title, res.FinishedAt})
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin listings tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DELETE FROM listings"); err != nil {
		return fmt.Errorf("clear listings: %w", err)
	}
	if len(rows) > 0 {
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"listings"}, listingColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("copy listings: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit listings: %w", err)
	}
	return nil
}

var rejectionColumns = []string{"run_id", "model", "price", "url", "title", "category", "reason", "ingested_at"}

// RecordRejections appends the run's rejection audit rows. Unlike listings,
// rejections accumulate across runs.
func (s *ListingStore) RecordRejections(ctx context.Context, res *ingest.Result) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("listing store is not configured")
	}
	if res == nil || res.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	if len(res.Rejected) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(res.Rejected))
	for _, rec := range res.Rejected {
		rows = append(rows, []any{res.RunID, rec.Model, rec.Price, rec.URL, rec.Title, string(rec.Category), rec.Reason, res.FinishedAt})
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin rejections tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"rejections"}, rejectionColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy rejections: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit rejections: %w", err)
	}
	return nil
}

// PriceStats summarizes the stored prices for one canonical model.
type PriceStats struct {
	Model  string
	Count  int64
	Min    float64
	Median float64
	Max    float64
}

const priceStatsQuery = `
SELECT
	COUNT(*),
	COALESCE(MIN(price), 0),
	COALESCE(PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY price), 0),
	COALESCE(MAX(price), 0)
FROM listings
WHERE model = $1`

// PriceStats returns price aggregates for the given model from the latest load.
func (s *ListingStore) PriceStats(ctx context.Context, model string) (PriceStats, error) {
	if s == nil || s.pool == nil {
		return PriceStats{}, fmt.Errorf("listing store is not configured")
	}
	stats := PriceStats{Model: model}
	row := s.pool.QueryRow(ctx, priceStatsQuery, model)
	if err := row.Scan(&stats.Count, &stats.Min, &stats.Median, &stats.Max); err != nil {
		return PriceStats{}, fmt.Errorf("query price stats: %w", err)
	}
	return stats, nil
}

func sortedModels(byModel map[string][]ingest.PriceObservation) []string {
	models := make([]string, 0, len(byModel))
	for model := range byModel {
		models = append(models, model)
	}
	sort.Strings(models)
	return models
}
