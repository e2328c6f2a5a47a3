// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/reorg/internal/batch"
	"github.com/matt-FFFFFF/reorg/internal/ctxlog"
	"github.com/matt-FFFFFF/reorg/internal/progress"
)

const (
	minStatusBarAvailableHeight = 10
	unitDurationRounding        = time.Millisecond
	reservedLines               = 7 // title, border, status bar and help
	borderWidth                 = 2
	minViewportWidth            = 20
	ellipsis                    = "…"
)

// ProgressEventMsg wraps a progress event for the tea framework.
type ProgressEventMsg struct {
	Event progress.Event
}

// BatchCompletedMsg indicates that every unit has finished.
type BatchCompletedMsg struct {
	Results batch.Results
	Err     error
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	m.viewport, cmd = m.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.mutex.Lock()
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportSize()
		m.mutex.Unlock()

		return m, cmd

	case ProgressEventMsg:
		m.processProgressEvent(msg.Event)
		return m, cmd

	case BatchCompletedMsg:
		m.applyResults(msg.Results, msg.Err)
		return m, cmd
	}

	return m, cmd
}

// handleKeyPress processes keyboard input. Scrolling keys are handled by the viewport.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	switch msg.String() {
	case "q", "ctrl+c":
		ctxlog.Debug(m.ctx, "tui quit requested", "completed", m.completed)
		m.quitting = true

		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updateViewportSize() {
	w := m.width - borderWidth
	if w < minViewportWidth {
		w = minViewportWidth
	}

	h := m.height - reservedLines
	if h < 1 {
		h = 1
	}

	m.viewport.Width = w
	m.viewport.Height = h
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()

	m.viewport.SetContent(m.renderRows(time.Now()))

	var view strings.Builder

	view.WriteString(m.styles.Title.Render(m.title))
	view.WriteString("\n")
	view.WriteString(m.styles.Border.Render(m.viewport.View()))

	if m.height == 0 || m.height > minStatusBarAvailableHeight {
		view.WriteString("\n")
		view.WriteString(m.renderStatusBar())
		view.WriteString("\n")

		helpText := "↑/↓ or j/k to scroll, PgUp/PgDn for pages, 'q' to quit"
		if m.completed {
			helpText = "↑/↓ or j/k to scroll, 'q' to quit and return to terminal"
		}

		view.WriteString(m.styles.Help.Render(helpText))
	}

	return view.String()
}

// renderRows renders one line per unit, plus the completion line once the batch is done.
func (m *Model) renderRows(now time.Time) string {
	var b strings.Builder

	for _, row := range m.rows {
		m.renderRow(&b, row, now)
	}

	if m.completed {
		b.WriteString("\n")

		if m.results.HasError() || m.err != nil {
			b.WriteString(m.styles.Failed.Render("⚠️  Batch completed with errors"))
		} else {
			b.WriteString(m.styles.Success.Render("✅ Batch completed successfully"))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) renderRow(b *strings.Builder, row *UnitRow, now time.Time) {
	var (
		icon  string
		style lipgloss.Style
	)

	switch row.Status {
	case StatusPending:
		icon, style = "⏳", m.styles.Pending
	case StatusRunning:
		icon, style = "⚡", m.styles.Running
	case StatusSuccess:
		icon, style = "✅", m.styles.Success
	case StatusFailed:
		icon, style = "❌", m.styles.Failed
	default:
		icon, style = "❓", m.styles.Pending
	}

	label := row.Input
	if row.Output != "" && row.Output != row.Input {
		label = fmt.Sprintf("%s -> %s", row.Input, row.Output)
	}

	label = truncate(label, m.viewport.Width-lipgloss.Width(icon)-1)

	b.WriteString(icon)
	b.WriteString(" ")
	b.WriteString(style.Render(label))

	if row.StartTime != nil {
		b.WriteString(m.styles.Faint.Render(fmt.Sprintf(" (%v)", row.Elapsed(now).Round(unitDurationRounding))))
	}

	b.WriteString("\n")

	if row.Status == StatusFailed && row.ErrorMsg != "" {
		b.WriteString("   ")
		b.WriteString(m.styles.Error.Render(truncate("Error: "+row.ErrorMsg, m.viewport.Width-3))) //nolint:mnd
		b.WriteString("\n")
	}
}

func (m *Model) renderStatusBar() string {
	c := m.counts()

	parts := []string{
		fmt.Sprintf("Total: %d", len(m.rows)),
		m.styles.Running.Render(fmt.Sprintf("Running: %d", c[StatusRunning])),
		m.styles.Success.Render(fmt.Sprintf("Succeeded: %d", c[StatusSuccess])),
		m.styles.Failed.Render(fmt.Sprintf("Failed: %d", c[StatusFailed])),
	}

	if c[StatusPending] > 0 {
		parts = append(parts, m.styles.Pending.Render(fmt.Sprintf("Pending: %d", c[StatusPending])))
	}

	return m.styles.StatusOK.Render(strings.Join(parts, "  "))
}

// truncate shortens s to at most width cells.
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+lipgloss.Width(ellipsis) > width {
		runes = runes[:len(runes)-1]
	}

	return string(runes) + ellipsis
}
