package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/common"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// SaveReceipt persists a receipt record.
func (s *SQLiteStorage) SaveReceipt(ctx context.Context, receipt *model.Receipt) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateReceipt(receipt); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO receipts (
			id, date, vendor, category, amount, gst, qst, document_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, receipt.ID, receipt.Date, receipt.Vendor, receipt.Category,
		receipt.Amount, receipt.GST, receipt.QST, nullIfEmpty(receipt.DocumentID))
	if err != nil {
		return fmt.Errorf("failed to save receipt %s: %w", receipt.ID, err)
	}
	return nil
}

// GetReceipt retrieves a receipt by ID.
func (s *SQLiteStorage) GetReceipt(ctx context.Context, id string) (*model.Receipt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var receipt model.Receipt
	var documentID sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, date, vendor, category, amount, gst, qst, document_id, created_at
		FROM receipts WHERE id = ?
	`, id).Scan(&receipt.ID, &receipt.Date, &receipt.Vendor, &receipt.Category,
		&receipt.Amount, &receipt.GST, &receipt.QST, &documentID, &receipt.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("receipt %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt %s: %w", id, err)
	}
	receipt.DocumentID = documentID.String
	return &receipt, nil
}

// ListReceipts returns receipts for a filing year ordered by date. A zero
// year lists everything.
func (s *SQLiteStorage) ListReceipts(ctx context.Context, year int) ([]model.Receipt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, date, vendor, category, amount, gst, qst, document_id, created_at
		FROM receipts`
	args := []any{}
	if year != 0 {
		query += ` WHERE strftime('%Y', date) = ?`
		args = append(args, fmt.Sprintf("%04d", year))
	}
	query += ` ORDER BY date ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var receipts []model.Receipt
	for rows.Next() {
		var receipt model.Receipt
		var documentID sql.NullString
		if err := rows.Scan(&receipt.ID, &receipt.Date, &receipt.Vendor, &receipt.Category,
			&receipt.Amount, &receipt.GST, &receipt.QST, &documentID, &receipt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipt.DocumentID = documentID.String
		receipts = append(receipts, receipt)
	}
	return receipts, rows.Err()
}

// GetTaxPaidTotals sums the GST and QST recorded on receipts for a filing
// year. These are the input tax credit / refund amounts.
func (s *SQLiteStorage) GetTaxPaidTotals(ctx context.Context, year int) (gst, qst float64, err error) {
	if err := validateContext(ctx); err != nil {
		return 0, 0, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(gst), 0), COALESCE(SUM(qst), 0)
		FROM receipts WHERE strftime('%Y', date) = ?
	`, fmt.Sprintf("%04d", year)).Scan(&gst, &qst)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum receipt taxes: %w", err)
	}
	return model.Round2(gst), model.Round2(qst), nil
}

// GetCategoryTotals sums receipt amounts per category for a filing year.
func (s *SQLiteStorage) GetCategoryTotals(ctx context.Context, year int) (map[string]float64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM receipts WHERE strftime('%Y', date) = ?
		GROUP BY category
	`, fmt.Sprintf("%04d", year))
	if err != nil {
		return nil, fmt.Errorf("failed to sum receipt categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	totals := make(map[string]float64)
	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals[category] = model.Round2(total)
	}
	return totals, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
