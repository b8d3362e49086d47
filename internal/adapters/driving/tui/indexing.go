// Package tui provides the interactive indexing progress view built
// on Bubble Tea. The CLI falls back to plain line output when stdout
// is not a terminal.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driving"
)

// progressMsg carries a per-document progress event into the model.
type progressMsg domain.IndexingProgress

// doneMsg carries the final batch result into the model.
type doneMsg struct {
	result domain.BatchResult
	err    error
}

// IndexingModel renders a bulk indexing run: a progress bar, the
// document in flight, and the final summary.
type IndexingModel struct {
	styles  *Styles
	bar     progress.Model
	events  <-chan tea.Msg
	cancel  func()
	current domain.IndexingProgress
	result  *domain.BatchResult
	err     error
}

// NewIndexingModel creates the model. events delivers progressMsg and
// doneMsg values; cancel requests cooperative cancellation.
func NewIndexingModel(events <-chan tea.Msg, cancel func()) *IndexingModel {
	return &IndexingModel{
		styles: DefaultStyles(),
		bar:    progress.New(progress.WithDefaultGradient()),
		events: events,
		cancel: cancel,
	}
}

// Init starts listening for indexing events.
func (m *IndexingModel) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent blocks on the event channel and forwards the next
// message into Update.
func (m *IndexingModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// Update handles events and key presses.
func (m *IndexingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 8
		return m, nil

	case progressMsg:
		m.current = domain.IndexingProgress(msg)
		return m, m.waitForEvent()

	case doneMsg:
		m.result = &msg.result
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the indexing state.
func (m *IndexingModel) View() string {
	if m.result != nil {
		return m.renderSummary()
	}

	if m.current.Total == 0 {
		return m.styles.Muted.Render("Scanning catalogue...") + "\n"
	}

	ratio := float64(m.current.Current-1) / float64(m.current.Total)
	return fmt.Sprintf("%s\n\n  %s\n  %s\n\n%s\n",
		m.styles.Title.Render("Indexing documents"),
		m.bar.ViewAs(ratio),
		m.styles.Current.Render(fmt.Sprintf("[%d/%d] %s",
			m.current.Current, m.current.Total, m.current.DocumentName)),
		m.styles.Muted.Render("press q to cancel"),
	)
}

// renderSummary renders the terminal state after the run ends.
func (m *IndexingModel) renderSummary() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Indexing failed: %v", m.err)) + "\n"
	}

	style := m.styles.Success
	if m.result.State == domain.BatchCancelled || m.result.Failed > 0 {
		style = m.styles.Error
	}
	return style.Render(fmt.Sprintf("%s: %s", m.result.State, m.result.Message)) + "\n"
}

// RunIndexing renders a bulk run started by the caller. It blocks
// until the run completes or the user cancels; the caller feeds
// events through ProgressChannel's callbacks.
func RunIndexing(manager driving.IndexManager, events <-chan tea.Msg) (*domain.BatchResult, error) {
	model := NewIndexingModel(events, manager.Cancel)
	program := tea.NewProgram(model)

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("running progress view: %w", err)
	}

	m, ok := final.(*IndexingModel)
	if !ok || m.result == nil {
		return nil, m.err
	}
	return m.result, m.err
}

// ProgressChannel adapts the orchestrator's callbacks into the event
// channel the model consumes. Call the returned functions as the
// ProgressFunc and CompleteFunc of a run.
func ProgressChannel() (chan tea.Msg, driving.ProgressFunc, driving.CompleteFunc) {
	events := make(chan tea.Msg, 16)

	onProgress := func(p domain.IndexingProgress) {
		select {
		case events <- progressMsg(p):
		default:
			// Listeners never block an indexing run.
		}
	}
	onComplete := func(r domain.BatchResult) {
		msg := doneMsg{result: r}
		for {
			select {
			case events <- msg:
				return
			default:
			}
			// Buffer full: drop a stale progress event to make room.
			// Progress has stopped by the time completion fires, so
			// this converges even with no consumer left.
			select {
			case <-events:
			default:
			}
		}
	}
	return events, onProgress, onComplete
}
