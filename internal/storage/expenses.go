package storage

import (
	"context"
	"fmt"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/common"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// SaveExpenses inserts imported statement expenses, skipping rows whose
// hash already exists. It returns the number of rows actually inserted so
// callers can report duplicates from overlapping statement files.
func (s *SQLiteStorage) SaveExpenses(ctx context.Context, expenses []model.Expense) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateExpenses(expenses); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO expenses (
			id, hash, date, name, merchant_name, account_id, category, amount
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, exp := range expenses {
		if exp.Hash == "" {
			exp.Hash = exp.GenerateHash()
		}
		result, execErr := stmt.ExecContext(ctx,
			exp.ID, exp.Hash, exp.Date, exp.Name, exp.MerchantName,
			exp.AccountID, exp.Category, exp.Amount)
		if execErr != nil {
			return 0, fmt.Errorf("failed to insert expense %s: %w", exp.ID, execErr)
		}
		affected, affErr := result.RowsAffected()
		if affErr != nil {
			return 0, fmt.Errorf("failed to check insert result: %w", affErr)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit expenses: %w", err)
	}
	return inserted, nil
}

// ListExpenses returns imported expenses for a filing year ordered by
// date. A zero year lists everything.
func (s *SQLiteStorage) ListExpenses(ctx context.Context, year int) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, hash, date, name, merchant_name, account_id, category, amount
		FROM expenses`
	args := []any{}
	if year != 0 {
		query += ` WHERE strftime('%Y', date) = ?`
		args = append(args, fmt.Sprintf("%04d", year))
	}
	query += ` ORDER BY date ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		var exp model.Expense
		if err := rows.Scan(&exp.ID, &exp.Hash, &exp.Date, &exp.Name,
			&exp.MerchantName, &exp.AccountID, &exp.Category, &exp.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, exp)
	}
	return expenses, rows.Err()
}

// UpdateExpenseCategory sets the category on an imported expense.
func (s *SQLiteStorage) UpdateExpenseCategory(ctx context.Context, id, category string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if err := validateString(category, "category"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET category = ? WHERE id = ?`, category, id)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
	}
	return nil
}
