package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/common"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

func testReceipt(date time.Time, category string, amount, gst, qst float64) *model.Receipt {
	return &model.Receipt{
		ID:       uuid.New().String(),
		Date:     date,
		Vendor:   "Petro-Canada",
		Category: category,
		Amount:   amount,
		GST:      gst,
		QST:      qst,
	}
}

func TestSaveAndGetReceipt(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	receipt := testReceipt(time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), "fuel", 62.50, 2.72, 5.42)
	receipt.DocumentID = "doc-1"
	require.NoError(t, store.SaveReceipt(ctx, receipt))

	got, err := store.GetReceipt(ctx, receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Petro-Canada", got.Vendor)
	assert.Equal(t, "fuel", got.Category)
	assert.InDelta(t, 62.50, got.Amount, 0.001)
	assert.Equal(t, "doc-1", got.DocumentID)
}

func TestGetReceipt_NotFound(t *testing.T) {
	store := newTestStorage(t)
	_, err := store.GetReceipt(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveReceipt_Validation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.SaveReceipt(ctx, nil), ErrNilParameter)

	bad := testReceipt(time.Now(), "fuel", -5, 0, 0)
	assert.ErrorIs(t, store.SaveReceipt(ctx, bad), ErrInvalidReceipt)

	bad = testReceipt(time.Now(), "fuel", 10, 0, 0)
	bad.Vendor = " "
	assert.ErrorIs(t, store.SaveReceipt(ctx, bad), ErrInvalidReceipt)
}

func TestListReceipts_FilterByYear(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	in2024 := testReceipt(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "fuel", 50, 2.17, 4.33)
	in2023 := testReceipt(time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), "fuel", 45, 1.96, 3.90)
	require.NoError(t, store.SaveReceipt(ctx, in2024))
	require.NoError(t, store.SaveReceipt(ctx, in2023))

	got, err := store.ListReceipts(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, in2024.ID, got[0].ID)

	all, err := store.ListReceipts(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetTaxPaidTotals(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveReceipt(ctx, testReceipt(day, "fuel", 60, 2.61, 5.20)))
	require.NoError(t, store.SaveReceipt(ctx, testReceipt(day, "maintenance", 200, 8.70, 17.35)))
	// A different year must not count.
	require.NoError(t, store.SaveReceipt(ctx, testReceipt(day.AddDate(1, 0, 0), "fuel", 60, 2.61, 5.20)))

	gst, qst, err := store.GetTaxPaidTotals(ctx, 2024)
	require.NoError(t, err)
	assert.InDelta(t, 11.31, gst, 0.001)
	assert.InDelta(t, 22.55, qst, 0.001)
}

func TestGetCategoryTotals(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveReceipt(ctx, testReceipt(day, "fuel", 60, 0, 0)))
	require.NoError(t, store.SaveReceipt(ctx, testReceipt(day, "fuel", 40, 0, 0)))
	require.NoError(t, store.SaveReceipt(ctx, testReceipt(day, "parking", 18, 0, 0)))

	totals, err := store.GetCategoryTotals(ctx, 2024)
	require.NoError(t, err)
	assert.InDelta(t, 100.00, totals["fuel"], 0.001)
	assert.InDelta(t, 18.00, totals["parking"], 0.001)
}
