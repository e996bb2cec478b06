// Package ofx imports bank and credit card statements in OFX/QFX format.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, func(match string) string {
		return strings.ToUpper(match)
	})

	// Fix missing closing angle brackets in SGML-style OFX files
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns expense records. Credits
// (deposits, refunds) are skipped; only outgoing amounts are candidates
// for deduction.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Expense, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var expenses []model.Expense
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			accountID := string(stmt.BankAcctFrom.AcctID)
			for _, ofxTx := range stmt.BankTranList.Transactions {
				if exp, ok := p.convertTransaction(ofxTx, accountID); ok {
					expenses = append(expenses, exp)
				}
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			accountID := string(stmt.CCAcctFrom.AcctID)
			for _, ofxTx := range stmt.BankTranList.Transactions {
				if exp, ok := p.convertTransaction(ofxTx, accountID); ok {
					expenses = append(expenses, exp)
				}
			}
		}
	}

	slog.Info("Parsed OFX file",
		"expenses", len(expenses),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return expenses, nil
}

// convertTransaction maps one OFX transaction to an expense. Returns false
// for credits.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) (model.Expense, bool) {
	// OFX uses negative amounts for debits.
	amountFloat, _ := ofxTx.TrnAmt.Float64()
	if amountFloat >= 0 {
		return model.Expense{}, false
	}

	merchantName := p.extractMerchantName(ofxTx)

	exp := model.Expense{
		ID:           string(ofxTx.FiTID),
		Date:         ofxTx.DtPosted.Time,
		Name:         string(ofxTx.Name),
		MerchantName: merchantName,
		AccountID:    accountID,
		Amount:       model.Round2(-amountFloat),
		Category:     GuessCategory(merchantName),
	}
	exp.Hash = exp.GenerateHash()

	return exp, true
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)

	// Use MEMO field if NAME is generic
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
		"INTERAC PURCHASE ",
		"ACHAT INTERAC ",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Clean up date patterns like "MM/DD" at the beginning
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}

// merchantCategories maps merchant name fragments to expense categories.
// First match wins; unmatched merchants are left uncategorized for the
// review flow.
var merchantCategories = []struct {
	fragment string
	category string
}{
	{"PETRO", "fuel"},
	{"SHELL", "fuel"},
	{"ESSO", "fuel"},
	{"ULTRAMAR", "fuel"},
	{"COUCHE-TARD", "fuel"},
	{"CANADIAN TIRE", "maintenance"},
	{"MR LUBE", "maintenance"},
	{"MIDAS", "maintenance"},
	{"OIL CHANGE", "maintenance"},
	{"GARAGE", "maintenance"},
	{"CAR WASH", "carwash"},
	{"LAVE-AUTO", "carwash"},
	{"PARKING", "parking"},
	{"STATIONNEMENT", "parking"},
	{"IMPARK", "parking"},
	{"BELL MOBILITY", "phone"},
	{"ROGERS", "phone"},
	{"TELUS", "phone"},
	{"VIDEOTRON", "phone"},
	{"FIDO", "phone"},
	{"INSURANCE", "insurance"},
	{"ASSURANCE", "insurance"},
	{"INTACT", "insurance"},
	{"DESJARDINS ASSUR", "insurance"},
	{"TIM HORTONS", "meals"},
	{"MCDONALD", "meals"},
	{"SUBWAY", "meals"},
	{"A&W", "meals"},
}

// GuessCategory maps a merchant name to an expense category, or returns
// the empty string when no rule matches.
func GuessCategory(merchantName string) string {
	upper := strings.ToUpper(merchantName)
	for _, rule := range merchantCategories {
		if strings.Contains(upper, rule.fragment) {
			return rule.category
		}
	}
	return ""
}

// GetAccounts extracts unique account IDs from the OFX file.
func (p *Parser) GetAccounts(ctx context.Context, reader io.Reader) ([]string, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	accountMap := make(map[string]bool)

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			if stmt.BankAcctFrom.AcctID != "" {
				accountMap[string(stmt.BankAcctFrom.AcctID)] = true
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			if stmt.CCAcctFrom.AcctID != "" {
				accountMap[string(stmt.CCAcctFrom.AcctID)] = true
			}
		}
	}

	var accounts []string
	for acct := range accountMap {
		accounts = append(accounts, acct)
	}

	return accounts, nil
}
