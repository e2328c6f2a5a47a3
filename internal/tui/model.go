// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/reorg/internal/batch"
	"github.com/matt-FFFFFF/reorg/internal/progress"
)

// UnitStatus represents the current state of a file pair in the TUI.
type UnitStatus int

const (
	StatusPending UnitStatus = iota
	StatusRunning
	StatusSuccess
	StatusFailed
)

// String returns a string representation of the unit status.
func (s UnitStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// UnitRow is one file pair in the list.
type UnitRow struct {
	Index     int
	Input     string
	Output    string
	Status    UnitStatus
	StartTime *time.Time
	EndTime   *time.Time
	ErrorMsg  string
}

// NewUnitRow creates a pending row.
func NewUnitRow(index int, input, output string) *UnitRow {
	return &UnitRow{
		Index:  index,
		Input:  input,
		Output: output,
		Status: StatusPending,
	}
}

// UpdateStatus sets the status and records start and end times the first time they apply.
// Status only moves forward; a finished row keeps its outcome.
func (r *UnitRow) UpdateStatus(status UnitStatus, at time.Time) {
	if r.finished() || status < r.Status {
		return
	}

	r.Status = status

	switch status {
	case StatusRunning:
		if r.StartTime == nil {
			r.StartTime = &at
		}
	case StatusSuccess, StatusFailed:
		if r.StartTime == nil {
			r.StartTime = &at
		}

		if r.EndTime == nil {
			r.EndTime = &at
		}
	}
}

func (r *UnitRow) finished() bool {
	return r.Status == StatusSuccess || r.Status == StatusFailed
}

// Elapsed returns the time spent so far, or zero when the unit has not started.
func (r *UnitRow) Elapsed(now time.Time) time.Duration {
	if r.StartTime == nil {
		return 0
	}

	if r.EndTime != nil {
		return r.EndTime.Sub(*r.StartTime)
	}

	return now.Sub(*r.StartTime)
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	title     string
	rows      []*UnitRow
	rowMap    map[int]*UnitRow
	width     int
	height    int
	quitting  bool
	completed bool
	results   batch.Results
	err       error
	viewport  viewport.Model
	mutex     sync.RWMutex

	styles *Styles
}

// Styles contains all the styling for the TUI.
type Styles struct {
	Title    lipgloss.Style
	Pending  lipgloss.Style
	Running  lipgloss.Style
	Success  lipgloss.Style
	Failed   lipgloss.Style
	Faint    lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Border   lipgloss.Style
	StatusOK lipgloss.Style
}

// NewStyles creates the default styling for the TUI.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Faint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")),
		StatusOK: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Bold(true),
	}
}

const (
	defaultViewportWidth  = 80
	defaultViewportHeight = 20
)

// NewModel creates a new TUI model.
func NewModel(ctx context.Context, title string) *Model {
	return &Model{
		ctx:      ctx,
		title:    title,
		rowMap:   make(map[int]*UnitRow),
		viewport: viewport.New(defaultViewportWidth, defaultViewportHeight),
		styles:   NewStyles(),
	}
}

// getOrCreateRow returns the row for a unit index, keeping rows ordered by index.
func (m *Model) getOrCreateRow(index int, input, output string) *UnitRow {
	if row, ok := m.rowMap[index]; ok {
		return row
	}

	row := NewUnitRow(index, input, output)
	m.rowMap[index] = row

	pos, _ := slices.BinarySearchFunc(m.rows, index, func(r *UnitRow, i int) int {
		return r.Index - i
	})
	m.rows = slices.Insert(m.rows, pos, row)

	return row
}

// processProgressEvent applies a progress event to its row.
func (m *Model) processProgressEvent(event progress.Event) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	row := m.getOrCreateRow(event.Unit, event.Input, event.Output)

	switch event.Type {
	case progress.EventQueued:
		// row exists now
	case progress.EventStarted:
		row.UpdateStatus(StatusRunning, event.Timestamp)
	case progress.EventCompleted:
		row.UpdateStatus(StatusSuccess, event.Timestamp)
	case progress.EventFailed:
		row.UpdateStatus(StatusFailed, event.Timestamp)

		if event.Err != nil {
			row.ErrorMsg = event.Err.Error()
		} else {
			row.ErrorMsg = event.Message
		}
	}
}

// applyResults reconciles rows with the final results, which are authoritative.
func (m *Model) applyResults(results batch.Results, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.completed = true
	m.results = results
	m.err = err

	for _, r := range results {
		row := m.getOrCreateRow(r.Unit.Index, r.Unit.Input.Path, r.Unit.Output.Path)

		now := time.Now()

		if r.Status == batch.ResultStatusError {
			row.UpdateStatus(StatusFailed, now)

			if r.Error != nil {
				row.ErrorMsg = r.Error.Error()
			}

			continue
		}

		row.UpdateStatus(StatusSuccess, now)
	}
}

// counts returns the number of rows in each status.
func (m *Model) counts() map[UnitStatus]int {
	c := make(map[UnitStatus]int, len(m.rows))
	for _, r := range m.rows {
		c[r.Status]++
	}

	return c
}
