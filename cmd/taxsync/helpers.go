package main

import (
	"context"
	"fmt"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/common"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/config"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/document"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/storage"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// initStorage initializes the storage layer with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/taxsync/taxsync.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("failed to open database at %s", dbPath), err)
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initEngine builds the document engine, loading a custom pattern file
// when one is configured or passed on the command line.
func initEngine(patternsPath string) (*document.Engine, error) {
	if patternsPath == "" {
		patternsPath = viper.GetString("classification.patterns_file")
	}
	if patternsPath == "" {
		return document.NewDefaultEngine()
	}

	custom, err := document.LoadPatternsFile(config.ExpandPath(patternsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load pattern file: %w", err)
	}

	return document.NewEngine(mergePatterns(document.DefaultPatterns(), custom), document.DefaultValidatorConfig())
}

// mergePatterns extends the built-in table with user patterns. A custom
// definition for a built-in type replaces it in place, keeping its
// classification priority.
func mergePatterns(defaults, custom []document.TypePattern) []document.TypePattern {
	overrides := make(map[model.DocumentType]document.TypePattern, len(custom))
	for _, tp := range custom {
		overrides[tp.Type] = tp
	}

	merged := make([]document.TypePattern, 0, len(defaults)+len(custom))
	for _, tp := range defaults {
		if override, ok := overrides[tp.Type]; ok {
			merged = append(merged, override)
			delete(overrides, tp.Type)
			continue
		}
		merged = append(merged, tp)
	}
	for _, tp := range custom {
		if _, pending := overrides[tp.Type]; pending {
			merged = append(merged, tp)
		}
	}

	return merged
}

// filingYear resolves the year a command operates on: explicit flag first,
// then the configured profile.
func filingYear(flagYear int) (int, error) {
	if flagYear != 0 {
		return flagYear, nil
	}
	profile, err := config.LoadProfile()
	if err != nil {
		return 0, err
	}
	return profile.Year, nil
}

// receiptFromDocument derives a retention-record receipt from a classified
// expense document. Income documents and unknowns produce no receipt.
func receiptFromDocument(doc *model.Document) (*model.Receipt, bool) {
	if doc == nil || doc.Record == nil || doc.Record.Kind != model.RecordExpense {
		return nil, false
	}

	vendor, _ := doc.Fields.Text(document.FieldVendor)
	if vendor == "" {
		vendor = doc.Source
	}

	return &model.Receipt{
		ID:         uuid.New().String(),
		Date:       doc.ProcessedAt,
		Vendor:     vendor,
		Category:   doc.Record.Category,
		Amount:     doc.Fields.NumberOr(document.FieldAmount, doc.Record.Amount),
		GST:        doc.Fields.NumberOr(document.FieldGST, 0),
		QST:        doc.Fields.NumberOr(document.FieldQST, 0),
		DocumentID: doc.ID,
	}, true
}
