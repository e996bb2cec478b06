package document

import (
	"fmt"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/common"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// CategoryRule maps a document type into an income/expense bucket.
// DeductionRate is the statutory fraction of the prorated amount that is
// deductible (0.5 for meals and entertainment under ITA s.67.1).
type CategoryRule struct {
	Kind               model.RecordKind
	Category           string
	BusinessUsePercent float64
	DeductionRate      float64
}

// categoryRules is the closed lookup from document type to bucket.
var categoryRules = map[model.DocumentType]CategoryRule{
	model.DocTypeT4:                 {Kind: model.RecordIncome, Category: "employment", BusinessUsePercent: 100},
	model.DocTypeT4A:                {Kind: model.RecordIncome, Category: "self-employment", BusinessUsePercent: 100},
	model.DocTypeT5:                 {Kind: model.RecordIncome, Category: "investment", BusinessUsePercent: 100},
	model.DocTypeUberSummary:        {Kind: model.RecordIncome, Category: "rideshare", BusinessUsePercent: 100},
	model.DocTypeLyftSummary:        {Kind: model.RecordIncome, Category: "rideshare", BusinessUsePercent: 100},
	model.DocTypeTaxiStatement:      {Kind: model.RecordIncome, Category: "taxi", BusinessUsePercent: 100},
	model.DocTypeFuelReceipt:        {Kind: model.RecordExpense, Category: "fuel", BusinessUsePercent: 100, DeductionRate: 1},
	model.DocTypeMaintenanceReceipt: {Kind: model.RecordExpense, Category: "maintenance", BusinessUsePercent: 100, DeductionRate: 1},
	model.DocTypeInsuranceReceipt:   {Kind: model.RecordExpense, Category: "insurance", BusinessUsePercent: 100, DeductionRate: 1},
	model.DocTypePhoneReceipt:       {Kind: model.RecordExpense, Category: "phone", BusinessUsePercent: 50, DeductionRate: 1},
	model.DocTypeMealReceipt:        {Kind: model.RecordExpense, Category: "meals", BusinessUsePercent: 100, DeductionRate: 0.5},
	model.DocTypeParkingReceipt:     {Kind: model.RecordExpense, Category: "parking", BusinessUsePercent: 100, DeductionRate: 1},
	model.DocTypeCarWashReceipt:     {Kind: model.RecordExpense, Category: "carwash", BusinessUsePercent: 100, DeductionRate: 1},
}

// RuleFor returns the category rule for a document type.
func RuleFor(docType model.DocumentType) (CategoryRule, bool) {
	rule, ok := categoryRules[docType]
	return rule, ok
}

// Categorizer turns extracted fields into categorized income/expense
// records using the default business-use percentages.
type Categorizer struct{}

// NewCategorizer creates a categorizer.
func NewCategorizer() *Categorizer {
	return &Categorizer{}
}

// Categorize maps a document's fields into a categorized record using the
// type's default business-use percentage.
func (c *Categorizer) Categorize(docType model.DocumentType, fields model.Fields) (model.CategorizedRecord, error) {
	rule, ok := categoryRules[docType]
	if !ok {
		return model.CategorizedRecord{}, fmt.Errorf("%w: %s", common.ErrUnknownDocumentType, docType)
	}
	return c.categorize(rule, docType, fields, rule.BusinessUsePercent), nil
}

// CategorizeWithBusinessUse is Categorize with the driver's own business-use
// percentage (typically derived from the mileage log) instead of the
// category default.
func (c *Categorizer) CategorizeWithBusinessUse(docType model.DocumentType, fields model.Fields, businessUsePercent float64) (model.CategorizedRecord, error) {
	rule, ok := categoryRules[docType]
	if !ok {
		return model.CategorizedRecord{}, fmt.Errorf("%w: %s", common.ErrUnknownDocumentType, docType)
	}
	if businessUsePercent < 0 || businessUsePercent > 100 {
		return model.CategorizedRecord{}, fmt.Errorf("business use percent out of range: %.2f", businessUsePercent)
	}
	return c.categorize(rule, docType, fields, businessUsePercent), nil
}

func (c *Categorizer) categorize(rule CategoryRule, docType model.DocumentType, fields model.Fields, businessUse float64) model.CategorizedRecord {
	record := model.CategorizedRecord{
		Kind:               rule.Kind,
		Category:           rule.Category,
		BusinessUsePercent: businessUse,
	}

	if rule.Kind == model.RecordIncome {
		record.Amount = incomeAmount(docType, fields)
		record.BusinessUsePercent = 100
		return record
	}

	record.Amount = model.Round2(fields.NumberOr(FieldAmount, 0))
	record.DeductibleAmount = model.Round2(record.Amount * (businessUse / 100) * rule.DeductionRate)
	return record
}

// incomeAmount computes the canonical income figure per document family.
// Rideshare summaries fold tips in and platform service fees out so the
// record reflects what actually reached the driver.
func incomeAmount(docType model.DocumentType, fields model.Fields) float64 {
	switch docType {
	case model.DocTypeUberSummary, model.DocTypeLyftSummary:
		gross := fields.NumberOr(FieldGrossFares, 0)
		tips := fields.NumberOr(FieldTips, 0)
		fees := fields.NumberOr(FieldServiceFee, 0)
		return model.Round2(gross + tips - fees)
	case model.DocTypeTaxiStatement:
		return model.Round2(fields.NumberOr(FieldGrossFares, 0) + fields.NumberOr(FieldTips, 0))
	case model.DocTypeT4:
		return model.Round2(fields.NumberOr(FieldEmploymentIncome, 0))
	case model.DocTypeT4A:
		return model.Round2(fields.NumberOr(FieldFeesForServices, 0))
	case model.DocTypeT5:
		return model.Round2(fields.NumberOr(FieldEligibleDivs, 0) +
			fields.NumberOr(FieldOtherDivs, 0) +
			fields.NumberOr(FieldInterestIncome, 0))
	default:
		return model.Round2(fields.NumberOr(FieldAmount, 0))
	}
}
