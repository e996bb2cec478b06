package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/document"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptFromDocument(t *testing.T) {
	expenseDoc := &model.Document{
		ID:          "doc-1",
		Source:      "pump_receipt.txt",
		Type:        model.DocTypeFuelReceipt,
		ProcessedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Fields: model.Fields{
			document.FieldVendor: {Text: "Petro-Canada", Kind: model.FieldText},
			document.FieldAmount: {Number: 62.50, Kind: model.FieldNumber},
			document.FieldGST:    {Number: 2.72, Kind: model.FieldNumber},
			document.FieldQST:    {Number: 5.42, Kind: model.FieldNumber},
		},
		Record: &model.CategorizedRecord{
			Kind:     model.RecordExpense,
			Category: "fuel",
			Amount:   62.50,
		},
	}

	receipt, ok := receiptFromDocument(expenseDoc)
	require.True(t, ok)
	assert.NotEmpty(t, receipt.ID)
	assert.NotEqual(t, expenseDoc.ID, receipt.ID)
	assert.Equal(t, "doc-1", receipt.DocumentID)
	assert.Equal(t, "Petro-Canada", receipt.Vendor)
	assert.Equal(t, "fuel", receipt.Category)
	assert.InDelta(t, 62.50, receipt.Amount, 0.001)
	assert.InDelta(t, 2.72, receipt.GST, 0.001)
	assert.InDelta(t, 5.42, receipt.QST, 0.001)
}

func TestReceiptFromDocument_NoVendorFallsBackToSource(t *testing.T) {
	doc := &model.Document{
		ID:          "doc-2",
		Source:      "parking.txt",
		Type:        model.DocTypeParkingReceipt,
		ProcessedAt: time.Now(),
		Fields: model.Fields{
			document.FieldAmount: {Number: 18, Kind: model.FieldNumber},
		},
		Record: &model.CategorizedRecord{Kind: model.RecordExpense, Category: "parking", Amount: 18},
	}

	receipt, ok := receiptFromDocument(doc)
	require.True(t, ok)
	assert.Equal(t, "parking.txt", receipt.Vendor)
}

func TestReceiptFromDocument_SkipsNonExpenses(t *testing.T) {
	tests := []struct {
		doc  *model.Document
		name string
	}{
		{name: "nil document", doc: nil},
		{name: "unknown type", doc: &model.Document{Type: model.DocTypeUnknown}},
		{
			name: "income document",
			doc: &model.Document{
				Type:   model.DocTypeUberSummary,
				Record: &model.CategorizedRecord{Kind: model.RecordIncome, Category: "rideshare", Amount: 42000},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := receiptFromDocument(tt.doc)
			assert.False(t, ok)
		})
	}
}

func TestMergePatterns(t *testing.T) {
	defaults := document.DefaultPatterns()

	t.Run("no custom patterns", func(t *testing.T) {
		merged := mergePatterns(defaults, nil)
		assert.Len(t, merged, len(defaults))
	})

	t.Run("new type appended", func(t *testing.T) {
		custom := []document.TypePattern{{
			Type:     model.DocumentType("toll_receipt"),
			Keywords: []document.Keyword{{Pattern: `toll`, Weight: 2}},
		}}
		merged := mergePatterns(defaults, custom)
		require.Len(t, merged, len(defaults)+1)
		assert.Equal(t, model.DocumentType("toll_receipt"), merged[len(merged)-1].Type)
	})

	t.Run("override keeps position", func(t *testing.T) {
		custom := []document.TypePattern{{
			Type:     model.DocTypeFuelReceipt,
			Keywords: []document.Keyword{{Pattern: `station-service`, Weight: 3}},
		}}
		merged := mergePatterns(defaults, custom)
		require.Len(t, merged, len(defaults))

		for i, tp := range merged {
			assert.Equal(t, defaults[i].Type, tp.Type)
			if tp.Type == model.DocTypeFuelReceipt {
				require.Len(t, tp.Keywords, 1)
				assert.Equal(t, `station-service`, tp.Keywords[0].Pattern)
			}
		}

		_, err := document.NewRegistry(merged)
		require.NoError(t, err)
	})
}

func TestCollectTextFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "uber.txt"), []byte("summary"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "receipt.md"), []byte("receipt"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.jpg"), []byte{0xff}, 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o750))

	t.Run("directory picks text files only", func(t *testing.T) {
		files, err := collectTextFiles([]string{dir})
		require.NoError(t, err)
		assert.Len(t, files, 2)
	})

	t.Run("explicit file kept regardless of extension", func(t *testing.T) {
		path := filepath.Join(dir, "photo.jpg")
		files, err := collectTextFiles([]string{path})
		require.NoError(t, err)
		assert.Equal(t, []string{path}, files)
	})

	t.Run("glob expansion", func(t *testing.T) {
		files, err := collectTextFiles([]string{filepath.Join(dir, "*.txt")})
		require.NoError(t, err)
		assert.Len(t, files, 1)
	})

	t.Run("missing pattern yields nothing", func(t *testing.T) {
		files, err := collectTextFiles([]string{filepath.Join(dir, "nope-*.txt")})
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestParseTripDate(t *testing.T) {
	date, err := parseTripDate("2024-07-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), date)

	_, err = parseTripDate("07/01/2024")
	require.Error(t, err)

	today, err := parseTripDate("")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Year(), today.Year())
}
