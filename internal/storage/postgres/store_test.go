package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/gpuradar/gpuradar/internal/ingest"
)

func testResult() *ingest.Result {
	return &ingest.Result{
		RunID: "run-1",
		Observations: map[string][]ingest.PriceObservation{
			"RTX 3060": {
				{Model: "RTX 3060", Price: 700, URL: "https://www.olx.bg/d/ad/a", Title: "RTX 3060"},
				{Model: "RTX 3060", Price: 750, URL: "https://www.olx.bg/d/ad/b", Title: "rtx 3060 12gb"},
			},
			"GTX 1060 6GB": {
				{Model: "GTX 1060 6GB", Price: 200, URL: "https://www.olx.bg/d/ad/c", Title: "gtx1060"},
			},
		},
		Rejected: []ingest.RejectionRecord{
			{Title: "rtx 3060 спешно", Price: 150, URL: "https://www.olx.bg/d/ad/d", Model: "RTX 3060", Reason: "price far below median with urgency keyword", Category: ingest.CategoryStatisticalLow},
		},
		FinishedAt: time.Unix(1700000000, 0).UTC(),
	}
}

func TestReplaceListingsSwapsTableInOneTx(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewListingStoreWithPool(mock)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM listings").
		WillReturnResult(pgxmock.NewResult("DELETE", 5))
	mock.ExpectCopyFrom(pgx.Identifier{"listings"}, listingColumns).
		WillReturnResult(3)
	mock.ExpectCommit()

	require.NoError(t, store.ReplaceListings(context.Background(), testResult()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceListingsRequiresRunID(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewListingStoreWithPool(mock)
	require.NoError(t, err)

	err = store.ReplaceListings(context.Background(), &ingest.Result{})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRejectionsAppendsRows(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewListingStoreWithPool(mock)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCopyFrom(pgx.Identifier{"rejections"}, rejectionColumns).
		WillReturnResult(1)
	mock.ExpectCommit()

	require.NoError(t, store.RecordRejections(context.Background(), testResult()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRejectionsSkipsEmptyRuns(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewListingStoreWithPool(mock)
	require.NoError(t, err)

	res := testResult()
	res.Rejected = nil
	require.NoError(t, store.RecordRejections(context.Background(), res))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPriceStatsQueriesAggregates(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewListingStoreWithPool(mock)
	require.NoError(t, err)

	rows := pgxmock.NewRows([]string{"count", "min", "median", "max"}).
		AddRow(int64(3), 650.0, 700.0, 750.0)
	mock.ExpectQuery("SELECT").WithArgs("RTX 3060").WillReturnRows(rows)

	stats, err := store.PriceStats(context.Background(), "RTX 3060")
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.Count)
	require.Equal(t, 650.0, stats.Min)
	require.Equal(t, 700.0, stats.Median)
	require.Equal(t, 750.0, stats.Max)
	require.NoError(t, mock.ExpectationsWereMet())
}
