package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Expense represents a single business expense imported from a bank or
// credit card statement (OFX/QFX).
type Expense struct {
	Date         time.Time
	ID           string
	Name         string // raw statement description
	MerchantName string // cleaned merchant name
	AccountID    string
	Hash         string
	Category     string
	Amount       float64
}

// GenerateHash creates a unique hash for duplicate detection across
// repeated imports of overlapping statement files.
func (e *Expense) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		e.Date.Format("2006-01-02"),
		e.Amount,
		e.MerchantName,
		e.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
