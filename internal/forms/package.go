package forms

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/tax"
)

// Store is the subset of the storage layer the assembler reads from.
type Store interface {
	ListDocuments(ctx context.Context, year int, docType model.DocumentType) ([]model.Document, error)
	GetCategoryTotals(ctx context.Context, year int) (map[string]float64, error)
	GetTaxPaidTotals(ctx context.Context, year int) (gst, qst float64, err error)
	ListExpenses(ctx context.Context, year int) ([]model.Expense, error)
	ListMileageEntries(ctx context.Context, year int) ([]model.MileageEntry, error)
}

// FilingPackage bundles everything needed to file a driver's year.
type FilingPackage struct {
	Profile          model.TaxProfile
	T2125            T2125
	TP80             *TP80 // Quebec residents only
	Mileage          model.MileageSummary
	MileageAllowance float64
	CCA              *tax.CCAResult
	GST              *tax.GSTQSTSummary // registrants only
	Estimate         tax.Estimate
	IncomeByCategory map[string]float64
	ExpenseTotals    ExpenseTotals
}

// businessIncomeCategories are the income buckets that flow onto the
// self-employment forms. Employment and investment income feed only the
// tax estimate.
var businessIncomeCategories = map[string]bool{
	"rideshare":       true,
	"taxi":            true,
	"self-employment": true,
}

// Assemble builds the filing package for a profile's year from stored
// documents, receipts, imported expenses and the mileage log.
func Assemble(ctx context.Context, store Store, profile model.TaxProfile) (*FilingPackage, error) {
	docs, err := store.ListDocuments(ctx, profile.Year, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	income := make(map[string]float64)
	for _, doc := range docs {
		if doc.Record == nil || doc.Record.Kind != model.RecordIncome {
			continue
		}
		income[doc.Record.Category] = model.Round2(income[doc.Record.Category] + doc.Record.Amount)
	}

	expenses, err := expenseTotals(ctx, store, profile.Year)
	if err != nil {
		return nil, err
	}

	entries, err := store.ListMileageEntries(ctx, profile.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to load mileage log: %w", err)
	}
	mileage := tax.SummarizeMileage(entries)

	pkg := &FilingPackage{
		Profile:          profile,
		Mileage:          mileage,
		MileageAllowance: tax.MileageAllowance(mileage.BusinessKm),
		IncomeByCategory: income,
		ExpenseTotals:    expenses,
	}

	var businessGross float64
	var otherIncome float64
	for category, amount := range income {
		if businessIncomeCategories[category] {
			businessGross += amount
		} else {
			otherIncome += amount
		}
	}

	var ccaDeduction float64
	if profile.VehicleCost > 0 && profile.VehicleCCAClass != "" {
		businessUse := mileage.BusinessUsePercent
		if mileage.TotalKm == 0 {
			businessUse = 100
		}
		firstYear := profile.OpeningUCC == 0
		cca, ccaErr := tax.CalculateCCA(profile.VehicleCCAClass, profile.VehicleCost, profile.OpeningUCC, businessUse, firstYear)
		if ccaErr != nil {
			return nil, fmt.Errorf("failed to calculate CCA: %w", ccaErr)
		}
		pkg.CCA = &cca
		ccaDeduction = cca.DeductibleClaim
	}

	// Meals records carry the 50% limit; phone defaults to half business use.
	mealsDeductible := expenses.get("meals") * 0.5
	phoneDeductible := expenses.get("phone") * 0.5

	pkg.T2125 = BuildT2125(profile.Year, businessGross, expenses, mealsDeductible, phoneDeductible, mileage, ccaDeduction)
	if profile.Province == model.ProvinceQC {
		tp80 := BuildTP80(pkg.T2125)
		pkg.TP80 = &tp80
	}

	if profile.GSTRegistered {
		gstPaid, qstPaid, taxErr := store.GetTaxPaidTotals(ctx, profile.Year)
		if taxErr != nil {
			return nil, fmt.Errorf("failed to load tax paid totals: %w", taxErr)
		}
		summary := tax.CalculateRemittance(businessGross, gstPaid, qstPaid, profile.QuickMethod)
		pkg.GST = &summary
	}

	taxable := pkg.T2125.NetIncome + otherIncome
	pkg.Estimate = tax.CalculateEstimate(profile.Province, taxable)

	slog.Info("Assembled filing package",
		"year", profile.Year,
		"gross_income", pkg.T2125.GrossIncome,
		"net_income", pkg.T2125.NetIncome,
		"taxable", model.Round2(taxable))

	return pkg, nil
}

// expenseTotals merges receipt totals with categorized statement imports.
// Receipts and OFX imports are separate ingestion paths; documents saved
// as receipts are counted once through the receipts table.
func expenseTotals(ctx context.Context, store Store, year int) (ExpenseTotals, error) {
	totals, err := store.GetCategoryTotals(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipt totals: %w", err)
	}

	merged := make(ExpenseTotals, len(totals))
	for category, amount := range totals {
		merged[category] = amount
	}

	imported, err := store.ListExpenses(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load imported expenses: %w", err)
	}
	for _, exp := range imported {
		if exp.Category == "" {
			continue
		}
		merged[exp.Category] = model.Round2(merged[exp.Category] + exp.Amount)
	}

	return merged, nil
}
