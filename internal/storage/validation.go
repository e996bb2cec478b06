// Package storage provides the SQLite persistence layer for taxsync.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrEmptySlice       = errors.New("slice cannot be empty")
	ErrInvalidDocument  = errors.New("invalid document")
	ErrInvalidReceipt   = errors.New("invalid receipt")
	ErrInvalidMileage   = errors.New("invalid mileage entry")
	ErrInvalidExpense   = errors.New("invalid expense")
	ErrInvalidSnapshot  = errors.New("invalid GST snapshot")
	ErrInvalidDateRange = errors.New("start date must be before end date")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateDocument(doc *model.Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document", ErrNilParameter)
	}
	if doc.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidDocument)
	}
	if doc.Type == "" {
		return fmt.Errorf("%w: missing type", ErrInvalidDocument)
	}
	if doc.Confidence < 0 || doc.Confidence > 100 {
		return fmt.Errorf("%w: confidence must be between 0 and 100", ErrInvalidDocument)
	}
	return nil
}

func validateReceipt(receipt *model.Receipt) error {
	if receipt == nil {
		return fmt.Errorf("%w: receipt", ErrNilParameter)
	}
	if receipt.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidReceipt)
	}
	if strings.TrimSpace(receipt.Vendor) == "" {
		return fmt.Errorf("%w: missing vendor", ErrInvalidReceipt)
	}
	if receipt.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidReceipt)
	}
	if receipt.Amount < 0 {
		return fmt.Errorf("%w: negative amount", ErrInvalidReceipt)
	}
	return nil
}

func validateMileageEntry(entry *model.MileageEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: mileage entry", ErrNilParameter)
	}
	if entry.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidMileage)
	}
	if entry.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidMileage)
	}
	if entry.Kilometres <= 0 {
		return fmt.Errorf("%w: kilometres must be positive", ErrInvalidMileage)
	}
	return nil
}

func validateExpenses(expenses []model.Expense) error {
	if expenses == nil {
		return fmt.Errorf("%w: expenses", ErrNilParameter)
	}
	if len(expenses) == 0 {
		return fmt.Errorf("%w: expenses", ErrEmptySlice)
	}
	for i, exp := range expenses {
		if err := validateExpense(&exp); err != nil {
			return fmt.Errorf("expense at index %d: %w", i, err)
		}
	}
	return nil
}

func validateExpense(exp *model.Expense) error {
	if exp == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if exp.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidExpense)
	}
	if exp.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidExpense)
	}
	if exp.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidExpense)
	}
	if exp.AccountID == "" {
		return fmt.Errorf("%w: missing account ID", ErrInvalidExpense)
	}
	return nil
}

// validateGSTSnapshot checks the required fields of a remittance snapshot.
func validateGSTSnapshot(snapshot *model.GSTSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: GST snapshot", ErrNilParameter)
	}
	if snapshot.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidSnapshot)
	}
	if snapshot.Year == 0 {
		return fmt.Errorf("%w: missing year", ErrInvalidSnapshot)
	}
	if snapshot.Sales < 0 {
		return fmt.Errorf("%w: sales cannot be negative", ErrInvalidSnapshot)
	}
	return nil
}
