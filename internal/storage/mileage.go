package storage

import (
	"context"
	"fmt"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// SaveMileageEntry persists one log book entry.
func (s *SQLiteStorage) SaveMileageEntry(ctx context.Context, entry *model.MileageEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateMileageEntry(entry); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO mileage_entries (
			id, date, kilometres, is_business, purpose, created_at
		) VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, entry.ID, entry.Date, entry.Kilometres, entry.IsBusiness, entry.Purpose)
	if err != nil {
		return fmt.Errorf("failed to save mileage entry %s: %w", entry.ID, err)
	}
	return nil
}

// ListMileageEntries returns log book entries for a filing year ordered by
// date. A zero year lists everything.
func (s *SQLiteStorage) ListMileageEntries(ctx context.Context, year int) ([]model.MileageEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, date, kilometres, is_business, purpose, created_at
		FROM mileage_entries`
	args := []any{}
	if year != 0 {
		query += ` WHERE strftime('%Y', date) = ?`
		args = append(args, fmt.Sprintf("%04d", year))
	}
	query += ` ORDER BY date ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list mileage entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.MileageEntry
	for rows.Next() {
		var entry model.MileageEntry
		if err := rows.Scan(&entry.ID, &entry.Date, &entry.Kilometres,
			&entry.IsBusiness, &entry.Purpose, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mileage entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
