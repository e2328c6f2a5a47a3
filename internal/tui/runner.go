// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/reorg/internal/batch"
	"github.com/matt-FFFFFF/reorg/internal/ctxlog"
	"github.com/matt-FFFFFF/reorg/internal/progress"
)

// ErrTUI is returned when the terminal program fails.
var ErrTUI = errors.New("tui error")

// RunFunc runs the batch, reporting progress to reporter.
type RunFunc func(ctx context.Context, reporter progress.Reporter) (batch.Results, error)

// Runner manages the TUI application and progress event integration.
type Runner struct {
	model    *Model
	program  *tea.Program
	reporter *Reporter
	mutex    sync.Mutex
}

var _ progress.Reporter = (*Reporter)(nil)

// Reporter implements progress.Reporter and forwards events to the TUI.
type Reporter struct {
	program *tea.Program
	closed  bool
	mutex   sync.RWMutex
}

// NewReporter creates a new TUI progress reporter.
func NewReporter(program *tea.Program) *Reporter {
	return &Reporter{
		program: program,
	}
}

// Report implements progress.Reporter.
func (tr *Reporter) Report(event progress.Event) {
	tr.mutex.RLock()
	defer tr.mutex.RUnlock()

	if tr.closed || tr.program == nil {
		return
	}

	// Send blocks until the program reads the message, so it runs on its own goroutine.
	go tr.program.Send(ProgressEventMsg{Event: event})
}

// Close implements progress.Reporter.
func (tr *Reporter) Close() {
	tr.mutex.Lock()
	defer tr.mutex.Unlock()

	tr.closed = true
}

// NewRunner creates a new TUI runner. Extra options are passed to the tea program.
func NewRunner(ctx context.Context, title string, opts ...tea.ProgramOption) *Runner {
	model := NewModel(ctx, title)
	program := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)

	return &Runner{
		model:    model,
		program:  program,
		reporter: NewReporter(program),
	}
}

// Reporter returns the progress reporter for this runner.
func (r *Runner) Reporter() progress.Reporter {
	return r.reporter
}

// Run starts the TUI and the batch together. It returns once the batch has finished
// and the user has quit the TUI. The batch error takes precedence over a TUI error.
func (r *Runner) Run(ctx context.Context, fn RunFunc) (batch.Results, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	type outcome struct {
		results batch.Results
		err     error
	}

	resultChan := make(chan outcome, 1)

	go func() {
		defer close(resultChan)

		results, err := fn(ctx, r.reporter)
		resultChan <- outcome{results: results, err: err}
	}()

	tuiDone := make(chan error, 1)

	go func() {
		_, err := r.program.Run()
		tuiDone <- err
	}()

	var (
		res    outcome
		tuiErr error
	)

	select {
	case res = <-resultChan:
		// Leave the TUI open until the user quits.
		r.program.Send(BatchCompletedMsg{Results: res.results, Err: res.err})
		tuiErr = <-tuiDone

		r.reporter.Close()

	case tuiErr = <-tuiDone:
		// The user quit early. Units are never cancelled, so wait for them.
		r.reporter.Close()

		res = <-resultChan
	}

	if res.err != nil {
		if tuiErr != nil {
			ctxlog.Error(ctx, "tui exited with error", "error", tuiErr)
		}

		return res.results, res.err
	}

	if tuiErr != nil && !errors.Is(tuiErr, tea.ErrProgramKilled) {
		return res.results, errors.Join(ErrTUI, tuiErr)
	}

	return res.results, nil
}
