package main

import (
	"fmt"
	"log/slog"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/cli"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/tui"
	"github.com/spf13/cobra"
)

func reviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Review classified documents interactively",
		Long: `Step through documents awaiting review, lowest confidence first.
Accept the classification, override the document type, or skip for later.

Keys: a accept · o override · s skip · j/k move · q quit`,
		RunE: runReview,
	}
}

func runReview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close storage", "error", closeErr)
		}
	}()

	engine, err := initEngine("")
	if err != nil {
		return err
	}

	accepted, overridden, skipped, err := tui.Run(ctx, store, engine.Registry().Types())
	if err != nil {
		return fmt.Errorf("review session failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle("Review Session"))
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%d accepted, %d overridden, %d skipped", accepted, overridden, skipped)))
	if skipped > 0 {
		fmt.Fprintln(out, cli.FormatInfo("Skipped documents stay in the queue for next time."))
	}

	return nil
}
