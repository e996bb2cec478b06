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

func testExpense(date time.Time, merchant string, amount float64) model.Expense {
	return model.Expense{
		ID:           uuid.New().String(),
		Date:         date,
		Name:         "POS PURCHASE " + merchant,
		MerchantName: merchant,
		AccountID:    "chequing-001",
		Amount:       amount,
	}
}

func TestSaveExpenses_DeduplicatesByHash(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	day := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	first := testExpense(day, "SHELL", 58.20)
	second := testExpense(day, "CANADIAN TIRE", 112.99)

	inserted, err := store.SaveExpenses(ctx, []model.Expense{first, second})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	// Re-importing an overlapping statement inserts only the new row.
	duplicate := first
	duplicate.ID = uuid.New().String()
	third := testExpense(day, "ESSO", 44.00)

	inserted, err = store.SaveExpenses(ctx, []model.Expense{duplicate, third})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	all, err := store.ListExpenses(ctx, 2024)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSaveExpenses_Validation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.SaveExpenses(ctx, nil)
	assert.ErrorIs(t, err, ErrNilParameter)

	_, err = store.SaveExpenses(ctx, []model.Expense{})
	assert.ErrorIs(t, err, ErrEmptySlice)

	bad := testExpense(time.Now(), "SHELL", 10)
	bad.AccountID = ""
	_, err = store.SaveExpenses(ctx, []model.Expense{bad})
	assert.ErrorIs(t, err, ErrInvalidExpense)
}

func TestUpdateExpenseCategory(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	exp := testExpense(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), "SHELL", 58.20)
	_, err := store.SaveExpenses(ctx, []model.Expense{exp})
	require.NoError(t, err)

	require.NoError(t, store.UpdateExpenseCategory(ctx, exp.ID, "fuel"))

	all, err := store.ListExpenses(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "fuel", all[0].Category)

	err = store.UpdateExpenseCategory(ctx, "missing", "fuel")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMileageEntries_SaveAndList(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	entry := &model.MileageEntry{
		ID:         uuid.New().String(),
		Date:       time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC),
		Kilometres: 142.5,
		IsBusiness: true,
		Purpose:    "airport runs",
	}
	require.NoError(t, store.SaveMileageEntry(ctx, entry))

	personal := &model.MileageEntry{
		ID:         uuid.New().String(),
		Date:       time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC),
		Kilometres: 20,
		IsBusiness: false,
	}
	require.NoError(t, store.SaveMileageEntry(ctx, personal))

	entries, err := store.ListMileageEntries(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 142.5, entries[0].Kilometres)
	assert.True(t, entries[0].IsBusiness)
	assert.False(t, entries[1].IsBusiness)
}

func TestSaveMileageEntry_Validation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.SaveMileageEntry(ctx, nil), ErrNilParameter)

	bad := &model.MileageEntry{ID: uuid.New().String(), Date: time.Now(), Kilometres: 0}
	assert.ErrorIs(t, store.SaveMileageEntry(ctx, bad), ErrInvalidMileage)
}
