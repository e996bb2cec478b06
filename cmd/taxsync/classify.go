package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/cli"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/common"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/document"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [files or directories...]",
		Short: "Classify tax documents and extract their fields",
		Long: `Classify plain-text tax documents (platform summaries, slips, receipts),
extract the dollar amounts, and categorize them as income or expenses.

Examples:
  # Classify a single exported summary
  taxsync classify ~/Documents/uber_2024.txt

  # Classify everything in a directory and save the results
  taxsync classify --save ~/Documents/tax-2024/

  # Force a type when classification would be ambiguous
  taxsync classify --type fuel_receipt pump_receipt.txt

  # Extend the built-in patterns with your own
  taxsync classify --patterns ~/.config/taxsync/patterns.json inbox/`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().StringP("type", "t", "", "Skip classification and process as this document type")
	cmd.Flags().StringP("patterns", "p", "", "JSON pattern file extending the built-in registry")
	cmd.Flags().BoolP("save", "s", false, "Save classified documents to the database")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Batch classification uses the shared interrupt handler so a
	// half-processed directory resumes cleanly on the next run.
	interruptHandler := cli.NewInterruptHandler(nil)
	ctx = interruptHandler.HandleInterrupts(ctx, true)

	forcedType, _ := cmd.Flags().GetString("type")
	patternsPath, _ := cmd.Flags().GetString("patterns")
	save, _ := cmd.Flags().GetBool("save")

	engine, err := initEngine(patternsPath)
	if err != nil {
		return err
	}

	files, err := collectTextFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no document files found")
	}

	var store *storage.SQLiteStorage
	if save {
		store, err = initStorage(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				slog.Warn("Failed to close storage", "error", closeErr)
			}
		}()
	}

	slog.Info("Classifying documents", "file_count", len(files), "save", save)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Classifying documents..."),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	var processed, unknown, failed int
	byType := make(map[model.DocumentType]int)

	for _, path := range files {
		if ctx.Err() != nil {
			break
		}

		doc, err := classifyFile(engine, path, model.DocumentType(forcedType))
		if err != nil {
			failed++
			common.LogError(err, "Failed to process document", common.Fields{"file": filepath.Base(path)})
			_ = bar.Add(1)
			continue
		}

		if save {
			if err := persistDocument(ctx, store, doc); err != nil {
				failed++
				slog.Error("Failed to save document", "file", filepath.Base(path), "error", err)
				_ = bar.Add(1)
				continue
			}
		}

		processed++
		byType[doc.Type]++
		if doc.Type == model.DocTypeUnknown {
			unknown++
		}
		_ = bar.Add(1)
	}

	printClassifySummary(cmd, processed, unknown, failed, byType, save)

	if interruptHandler.WasInterrupted() {
		return nil
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(files))
	}
	return nil
}

func classifyFile(engine *document.Engine, path string, forcedType model.DocumentType) (*model.Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied document path
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	source := filepath.Base(path)
	if forcedType != "" {
		return engine.ProcessAs(source, string(data), forcedType)
	}
	return engine.Process(source, string(data))
}

// persistDocument saves a classified document, plus the derived retention
// receipt when the document is an expense.
func persistDocument(ctx context.Context, store *storage.SQLiteStorage, doc *model.Document) error {
	if err := store.SaveDocument(ctx, doc); err != nil {
		return err
	}
	if receipt, ok := receiptFromDocument(doc); ok {
		if err := store.SaveReceipt(ctx, receipt); err != nil {
			return fmt.Errorf("failed to save receipt: %w", err)
		}
	}
	return nil
}

// collectTextFiles expands arguments into a flat list of document files.
// Directories are walked one level of text-like files; globs are expanded.
func collectTextFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			entries, readErr := os.ReadDir(arg)
			if readErr != nil {
				return nil, fmt.Errorf("failed to read directory %s: %w", arg, readErr)
			}
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				if isDocumentFile(entry.Name()) {
					files = append(files, filepath.Join(arg, entry.Name()))
				}
			}
			continue
		}

		matches, globErr := filepath.Glob(arg)
		if globErr != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, globErr)
		}
		if len(matches) == 0 {
			if err == nil {
				files = append(files, arg)
			} else {
				slog.Warn("No files found matching pattern", "pattern", arg)
			}
			continue
		}
		files = append(files, matches...)
	}

	return files, nil
}

func isDocumentFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".text", ".md", ".csv":
		return true
	default:
		return false
	}
}

func printClassifySummary(cmd *cobra.Command, processed, unknown, failed int, byType map[model.DocumentType]int, saved bool) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, cli.FormatTitle("Classification Summary"))
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%d documents processed", processed)))
	if unknown > 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d documents unrecognized — run 'taxsync review' or retry with --type", unknown)))
	}
	if failed > 0 {
		fmt.Fprintln(out, cli.FormatError(fmt.Sprintf("%d documents failed", failed)))
	}

	types := make([]string, 0, len(byType))
	for docType := range byType {
		types = append(types, string(docType))
	}
	sort.Strings(types)
	for _, docType := range types {
		fmt.Fprintf(out, "  %-22s %d\n", docType, byType[model.DocumentType(docType)])
	}

	if saved && processed > 0 {
		fmt.Fprintln(out, cli.FormatInfo("Saved. Low-confidence documents are queued for 'taxsync review'."))
	}
}
