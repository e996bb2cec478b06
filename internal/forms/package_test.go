package forms

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// fakeStore feeds Assemble from fixtures instead of SQLite.
type fakeStore struct {
	docs     []model.Document
	totals   map[string]float64
	gstPaid  float64
	qstPaid  float64
	expenses []model.Expense
	entries  []model.MileageEntry
}

func (f *fakeStore) ListDocuments(_ context.Context, _ int, _ model.DocumentType) ([]model.Document, error) {
	return f.docs, nil
}

func (f *fakeStore) GetCategoryTotals(_ context.Context, _ int) (map[string]float64, error) {
	return f.totals, nil
}

func (f *fakeStore) GetTaxPaidTotals(_ context.Context, _ int) (float64, float64, error) {
	return f.gstPaid, f.qstPaid, nil
}

func (f *fakeStore) ListExpenses(_ context.Context, _ int) ([]model.Expense, error) {
	return f.expenses, nil
}

func (f *fakeStore) ListMileageEntries(_ context.Context, _ int) ([]model.MileageEntry, error) {
	return f.entries, nil
}

func incomeDoc(category string, amount float64) model.Document {
	return model.Document{
		ID:   category + "-doc",
		Type: model.DocTypeUberSummary,
		Record: &model.CategorizedRecord{
			Kind:     model.RecordIncome,
			Category: category,
			Amount:   amount,
		},
	}
}

func driverStore() *fakeStore {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return &fakeStore{
		docs: []model.Document{
			incomeDoc("rideshare", 42000),
			incomeDoc("employment", 12000),
		},
		totals: map[string]float64{
			"fuel":        3200,
			"maintenance": 800,
			"insurance":   2000,
			"parking":     240,
			"phone":       960,
			"meals":       400,
		},
		gstPaid: 310.50,
		qstPaid: 619.45,
		entries: []model.MileageEntry{
			{ID: "m1", Date: day, Kilometres: 32000, IsBusiness: true},
			{ID: "m2", Date: day, Kilometres: 8000, IsBusiness: false},
		},
	}
}

func driverProfile() model.TaxProfile {
	return model.TaxProfile{
		Name:            "Test Driver",
		Province:        model.ProvinceQC,
		Year:            2024,
		GSTRegistered:   true,
		VehicleCost:     30000,
		VehicleCCAClass: "10",
	}
}

func TestAssemble(t *testing.T) {
	pkg, err := Assemble(context.Background(), driverStore(), driverProfile())
	require.NoError(t, err)

	// Only business categories reach the form.
	assert.InDelta(t, 42000.00, pkg.T2125.GrossIncome, 0.001)
	assert.InDelta(t, 12000.00, pkg.IncomeByCategory["employment"], 0.001)

	// 80% business use from the log book.
	assert.InDelta(t, 80.00, pkg.Mileage.BusinessUsePercent, 0.001)

	// Shared vehicle costs 3200+800+2000 = 6000 at 80%, plus parking.
	assert.InDelta(t, 6000.00, pkg.T2125.Vehicle.SharedSubtotal, 0.001)
	assert.InDelta(t, 4800.00, pkg.T2125.Vehicle.BusinessPortion, 0.001)
	assert.InDelta(t, 5040.00, pkg.T2125.Vehicle.Deductible, 0.001)

	// First-year CCA on a $30,000 class 10 vehicle at 80% business use.
	require.NotNil(t, pkg.CCA)
	assert.True(t, pkg.CCA.HalfYearApplied)
	assert.InDelta(t, 4500.00, pkg.CCA.FullClaim, 0.001)
	assert.InDelta(t, 3600.00, pkg.CCA.DeductibleClaim, 0.001)

	// Meals at 50%, phone at default 50% business use.
	// Expenses: 200 + 480 + 5040 + 3600 = 9320.
	assert.InDelta(t, 9320.00, pkg.T2125.TotalExpenses, 0.001)
	assert.InDelta(t, 32680.00, pkg.T2125.NetIncome, 0.001)

	// Quebec resident gets the provincial mirror with matching totals.
	require.NotNil(t, pkg.TP80)
	assert.InDelta(t, pkg.T2125.NetIncome, pkg.TP80.NetIncome, 0.001)

	// GST registrant gets a remittance summary on business sales.
	require.NotNil(t, pkg.GST)
	assert.InDelta(t, 42000*0.05-310.50, pkg.GST.NetGST, 0.01)

	// Estimate covers business net plus employment income.
	assert.Positive(t, pkg.Estimate.Federal.NetTax)
	assert.Equal(t, model.ProvinceQC, pkg.Estimate.Provincial.Province)

	assert.InDelta(t, 3500.00+27000*0.64, pkg.MileageAllowance, 0.001)
}

func TestAssemble_NoVehicleNoGST(t *testing.T) {
	store := driverStore()
	profile := driverProfile()
	profile.Province = model.ProvinceON
	profile.GSTRegistered = false
	profile.VehicleCost = 0

	pkg, err := Assemble(context.Background(), store, profile)
	require.NoError(t, err)

	assert.Nil(t, pkg.CCA)
	assert.Nil(t, pkg.GST)
	assert.Nil(t, pkg.TP80)
	assert.Zero(t, pkg.T2125.CCA)
}

func TestAssemble_EmptyLogBookAssumesFullBusinessUse(t *testing.T) {
	store := driverStore()
	store.entries = nil

	pkg, err := Assemble(context.Background(), store, driverProfile())
	require.NoError(t, err)

	assert.InDelta(t, 100.00, pkg.T2125.Vehicle.BusinessUsePercent, 0.001)
	assert.InDelta(t, 6000.00, pkg.T2125.Vehicle.BusinessPortion, 0.001)
	assert.Zero(t, pkg.MileageAllowance)
}

func TestAssemble_MergesImportedExpenses(t *testing.T) {
	store := driverStore()
	store.expenses = []model.Expense{
		{ID: "e1", Date: time.Now(), Name: "SHELL", AccountID: "a", Category: "fuel", Amount: 300},
		{ID: "e2", Date: time.Now(), Name: "MYSTERY", AccountID: "a", Category: "", Amount: 999},
	}

	pkg, err := Assemble(context.Background(), store, driverProfile())
	require.NoError(t, err)

	// 3200 from receipts + 300 imported; uncategorized rows are ignored.
	assert.InDelta(t, 3500.00, pkg.ExpenseTotals["fuel"], 0.001)
}

func TestBuildT2125_LineTotalsAreConsistent(t *testing.T) {
	form := BuildT2125(2024, 10000, ExpenseTotals{"fuel": 1000}, 50, 100, model.MileageSummary{}, 250)

	var total, net float64
	for _, line := range form.Lines {
		switch line.Code {
		case "9368":
			total = line.Amount
		case "9369":
			net = line.Amount
		}
	}
	assert.InDelta(t, form.TotalExpenses, total, 0.001)
	assert.InDelta(t, form.NetIncome, net, 0.001)
	assert.InDelta(t, 10000-form.TotalExpenses, form.NetIncome, 0.001)
}

func TestExportCSV(t *testing.T) {
	pkg, err := Assemble(context.Background(), driverStore(), driverProfile())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, pkg))

	out := buf.String()
	assert.Contains(t, out, "section,code,label,amount")
	assert.Contains(t, out, "T2125,8299,Gross business income,42000.00")
	assert.Contains(t, out, "TP-80-V,12,Gross income,42000.00")
	assert.True(t, strings.Contains(out, "mileage"))
}

func TestExportCSV_NilPackage(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, ExportCSV(&buf, nil))
}

func TestExportXLSX(t *testing.T) {
	pkg, err := Assemble(context.Background(), driverStore(), driverProfile())
	require.NoError(t, err)

	data, err := ExportXLSX(pkg)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "T2125")
	assert.Contains(t, sheets, "TP-80-V")
	assert.Contains(t, sheets, "Expenses")
	assert.NotContains(t, sheets, "Sheet1")

	label, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Filing year", label)
}
