package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

func testSnapshot(year int, sales float64) *model.GSTSnapshot {
	return &model.GSTSnapshot{
		ID:           uuid.New().String(),
		Year:         year,
		Sales:        sales,
		GSTCollected: sales * 0.05,
		QSTCollected: sales * 0.09975,
		GSTPaid:      310.50,
		QSTPaid:      619.45,
		NetOwing:     sales*0.05 + sales*0.09975 - 310.50 - 619.45,
	}
}

func TestSaveAndListGSTSnapshots(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveGSTSnapshot(ctx, testSnapshot(2024, 42000)))
	require.NoError(t, store.SaveGSTSnapshot(ctx, testSnapshot(2024, 43500)))
	require.NoError(t, store.SaveGSTSnapshot(ctx, testSnapshot(2023, 38000)))

	snapshots, err := store.ListGSTSnapshots(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	for _, snapshot := range snapshots {
		assert.Equal(t, 2024, snapshot.Year)
		assert.False(t, snapshot.CreatedAt.IsZero())
	}

	all, err := store.ListGSTSnapshots(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSaveGSTSnapshot_Validation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		snapshot *model.GSTSnapshot
		wantErr  error
		name     string
	}{
		{name: "nil snapshot", snapshot: nil, wantErr: ErrNilParameter},
		{name: "missing ID", snapshot: &model.GSTSnapshot{Year: 2024}, wantErr: ErrInvalidSnapshot},
		{name: "missing year", snapshot: &model.GSTSnapshot{ID: "s1"}, wantErr: ErrInvalidSnapshot},
		{
			name:     "negative sales",
			snapshot: &model.GSTSnapshot{ID: "s1", Year: 2024, Sales: -1},
			wantErr:  ErrInvalidSnapshot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.SaveGSTSnapshot(ctx, tt.snapshot)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
