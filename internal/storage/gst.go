package storage

import (
	"context"
	"fmt"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// SaveGSTSnapshot records a computed remittance position.
func (s *SQLiteStorage) SaveGSTSnapshot(ctx context.Context, snapshot *model.GSTSnapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGSTSnapshot(snapshot); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO gst_entries (
			id, year, sales, gst_collected, qst_collected,
			gst_paid, qst_paid, net_owing, quick_method, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, snapshot.ID, snapshot.Year, snapshot.Sales, snapshot.GSTCollected, snapshot.QSTCollected,
		snapshot.GSTPaid, snapshot.QSTPaid, snapshot.NetOwing, snapshot.QuickMethod)
	if err != nil {
		return fmt.Errorf("failed to save GST snapshot %s: %w", snapshot.ID, err)
	}
	return nil
}

// ListGSTSnapshots returns remittance snapshots for a filing year, most
// recent first. A zero year lists everything.
func (s *SQLiteStorage) ListGSTSnapshots(ctx context.Context, year int) ([]model.GSTSnapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, year, sales, gst_collected, qst_collected,
		       gst_paid, qst_paid, net_owing, quick_method, created_at
		FROM gst_entries`
	args := []any{}
	if year != 0 {
		query += ` WHERE year = ?`
		args = append(args, year)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list GST snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snapshots []model.GSTSnapshot
	for rows.Next() {
		var snapshot model.GSTSnapshot
		if err := rows.Scan(&snapshot.ID, &snapshot.Year, &snapshot.Sales,
			&snapshot.GSTCollected, &snapshot.QSTCollected,
			&snapshot.GSTPaid, &snapshot.QSTPaid,
			&snapshot.NetOwing, &snapshot.QuickMethod, &snapshot.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan GST snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}
