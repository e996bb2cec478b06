// Package tui implements the interactive document review screen.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/cli"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// Store is the storage surface the review screen needs.
type Store interface {
	GetDocumentsToReview(ctx context.Context) ([]model.Document, error)
	MarkDocumentReviewed(ctx context.Context, id string, overrideType model.DocumentType) error
}

type docsLoadedMsg struct {
	docs []model.Document
	err  error
}

type reviewedMsg struct {
	err error
}

// Model drives the review flow: one unreviewed document at a time, with
// the registered types selectable as an override.
type Model struct {
	ctx        context.Context
	store      Store
	help       help.Model
	keymap     KeyMap
	docs       []model.Document
	types      []model.DocumentType
	index      int
	typeCursor int
	accepted   int
	overridden int
	skipped    int
	width      int
	height     int
	err        error
	showHelp   bool
	quitting   bool
}

// NewModel creates the review model over the given storage and the
// registry's document types.
func NewModel(ctx context.Context, store Store, types []model.DocumentType) Model {
	sorted := make([]model.DocumentType, len(types))
	copy(sorted, types)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return Model{
		ctx:    ctx,
		store:  store,
		help:   help.New(),
		keymap: DefaultKeyMap(),
		types:  sorted,
	}
}

// Init loads the documents pending review.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.loadDocuments())
}

func (m Model) loadDocuments() tea.Cmd {
	return func() tea.Msg {
		docs, err := m.store.GetDocumentsToReview(m.ctx)
		return docsLoadedMsg{docs: docs, err: err}
	}
}

func (m Model) markReviewed(id string, override model.DocumentType) tea.Cmd {
	return func() tea.Msg {
		return reviewedMsg{err: m.store.MarkDocumentReviewed(m.ctx, id, override)}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case docsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		m.docs = msg.docs
		if len(m.docs) == 0 {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case reviewedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		return m.advance()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap
	switch {
	case keyMatches(msg, k.ForceQuit), keyMatches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit

	case keyMatches(msg, k.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.current() == nil {
		return m, nil
	}

	switch {
	case keyMatches(msg, k.Up):
		if m.typeCursor > 0 {
			m.typeCursor--
		}
	case keyMatches(msg, k.Down):
		if m.typeCursor < len(m.types)-1 {
			m.typeCursor++
		}
	case keyMatches(msg, k.Accept):
		m.accepted++
		return m, m.markReviewed(m.current().ID, "")
	case keyMatches(msg, k.Override):
		m.overridden++
		return m, m.markReviewed(m.current().ID, m.types[m.typeCursor])
	case keyMatches(msg, k.Skip):
		m.skipped++
		return m.advance()
	}

	return m, nil
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	m.index++
	m.typeCursor = 0
	if m.index >= len(m.docs) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) current() *model.Document {
	if m.index < 0 || m.index >= len(m.docs) {
		return nil
	}
	return &m.docs[m.index]
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Stats reports how many documents were accepted, overridden and skipped.
func (m Model) Stats() (accepted, overridden, skipped int) {
	return m.accepted, m.overridden, m.skipped
}

// View renders the review screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	doc := m.current()
	if doc == nil {
		return cli.FormatInfo("Nothing left to review.")
	}

	var b strings.Builder

	b.WriteString(cli.FormatTitle(fmt.Sprintf("Review %d of %d", m.index+1, len(m.docs))))
	b.WriteString("\n\n")

	info := fmt.Sprintf("Source: %s\nType: %s (%.0f%% confidence)",
		doc.Source, doc.Type, doc.Confidence)
	if doc.Record != nil {
		info += fmt.Sprintf("\nCategory: %s %s ($%.2f)",
			doc.Record.Kind, doc.Record.Category, doc.Record.Amount)
	}
	b.WriteString(cli.RenderBox("Document", info))
	b.WriteString("\n")

	if len(doc.Fields) > 0 {
		b.WriteString(cli.RenderBox("Extracted Fields", renderFields(doc.Fields)))
		b.WriteString("\n")
	}

	if len(doc.Warnings) > 0 {
		for _, warning := range doc.Warnings {
			b.WriteString(cli.FormatWarning(warning))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(cli.SubtitleStyle.Render("Override type:"))
	b.WriteString("\n")
	for i, docType := range m.types {
		cursor := "  "
		line := string(docType)
		if i == m.typeCursor {
			cursor = "> "
			line = cli.PromptStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keymap.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keymap.ShortHelp()))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func renderFields(fields model.Fields) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		value := fields[name]
		if value.Kind == model.FieldNumber {
			lines = append(lines, fmt.Sprintf("%s: %.2f", name, value.Number))
		} else {
			lines = append(lines, fmt.Sprintf("%s: %s", name, value.Text))
		}
	}
	return strings.Join(lines, "\n")
}
