package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

func keyMatches(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}

// Run starts the review session and blocks until it ends. It reports the
// session counts so the caller can print a summary.
func Run(ctx context.Context, store Store, types []model.DocumentType) (accepted, overridden, skipped int, err error) {
	m := NewModel(ctx, store, types)

	program := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("review session failed: %w", err)
	}

	result, ok := final.(Model)
	if !ok {
		return 0, 0, 0, fmt.Errorf("unexpected final model type %T", final)
	}
	if result.Err() != nil {
		return 0, 0, 0, result.Err()
	}

	accepted, overridden, skipped = result.Stats()
	return accepted, overridden, skipped, nil
}
