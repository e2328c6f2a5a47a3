// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/matt-FFFFFF/reorg/internal/ctxlog"
	"github.com/matt-FFFFFF/reorg/internal/progress"
	"github.com/matt-FFFFFF/reorg/internal/resolve"
	"github.com/matt-FFFFFF/reorg/internal/transform"
	"github.com/spf13/afero"
)

const sixFourFour = 0o644

// Executor runs the read, transform, write pipeline for a batch of files.
type Executor struct {
	fs        afero.Fs
	transform transform.Func
	notices   io.Writer
	reporter  progress.Reporter
	noticeMu  sync.Mutex
}

// Option configures an Executor.
type Option func(e *Executor)

// WithNotices sets the writer that receives one "Processed" line per successful unit.
func WithNotices(w io.Writer) Option {
	return func(e *Executor) {
		e.notices = w
	}
}

// WithReporter sets the progress reporter. The executor never closes it.
func WithReporter(r progress.Reporter) Option {
	return func(e *Executor) {
		e.reporter = r
	}
}

// New creates an Executor that applies fn to files on fs.
func New(fs afero.Fs, fn transform.Func, opts ...Option) *Executor {
	e := &Executor{
		fs:        fs,
		transform: fn,
		notices:   io.Discard,
		reporter:  progress.NullReporter{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run pairs inputs with outputs and processes every pair concurrently.
//
// Validation errors (*CountMismatchError, ErrNoUnits, ErrNoTransform) are returned before
// any file is touched. Otherwise Run waits for every unit and returns one Result per unit,
// ordered by index, together with an *AggregateError if any unit failed.
// Units are not cancelled by ctx; it only supplies the logger.
func (e *Executor) Run(ctx context.Context, inputs, outputs []resolve.ResolvedFile) (Results, error) {
	logger := ctxlog.Logger(ctx).With("component", "batch")

	units, err := Pair(inputs, outputs)
	if err != nil {
		return nil, err
	}

	if len(units) == 0 {
		return nil, ErrNoUnits
	}

	if e.transform == nil {
		return nil, ErrNoTransform
	}

	for _, u := range units {
		e.report(u, progress.EventQueued, nil)
	}

	logger.Debug("launching units", "count", len(units), "inPlace", len(outputs) == 0)

	wg := &sync.WaitGroup{}
	resChan := make(chan *Result, len(units))

	for _, u := range units {
		wg.Add(1)

		go func(u WorkUnit) {
			defer wg.Done()

			resChan <- e.runUnit(ctx, u)
		}(u)
	}

	wg.Wait()
	close(resChan)

	results := make(Results, 0, len(units))
	for r := range resChan {
		results = append(results, r)
	}

	slices.SortFunc(results, func(a, b *Result) int {
		return a.Unit.Index - b.Unit.Index
	})

	if err := results.Err(); err != nil {
		logger.Debug("batch finished with failures", "failed", len(results)-results.Succeeded(), "total", len(results))
		return results, err
	}

	logger.Debug("batch finished", "total", len(results))

	return results, nil
}

// runUnit never panics; a panic in any stage becomes the unit's failure.
func (e *Executor) runUnit(ctx context.Context, u WorkUnit) (res *Result) {
	logger := ctxlog.Logger(ctx).With("unit", u.Index, "input", u.Input.Path, "output", u.Output.Path)
	start := time.Now()
	stage := StageRead

	res = &Result{Unit: u, Status: ResultStatusSuccess}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("unit panicked", "stage", stage, "panic", r)
			e.fail(res, stage, &PanicError{Value: r})
		}

		res.Duration = time.Since(start)
	}()

	e.report(u, progress.EventStarted, nil)

	data, err := afero.ReadFile(e.fs, u.Input.Path)
	if err != nil {
		e.fail(res, stage, err)
		return res
	}

	stage = StageTransform

	text, err := e.transform(string(data))
	if err != nil {
		e.fail(res, stage, err)
		return res
	}

	stage = StageWrite

	if err := afero.WriteFile(e.fs, u.Output.Path, []byte(text), sixFourFour); err != nil {
		e.fail(res, stage, err)
		return res
	}

	logger.Debug("unit processed", "bytesIn", len(data), "bytesOut", len(text))
	e.notice(u)
	e.report(u, progress.EventCompleted, nil)

	return res
}

func (e *Executor) fail(res *Result, stage Stage, err error) {
	ue := &UnitError{
		Index:  res.Unit.Index,
		Input:  res.Unit.Input.Path,
		Output: res.Unit.Output.Path,
		Stage:  stage,
		Err:    err,
	}

	res.Status = ResultStatusError
	res.Error = ue

	e.report(res.Unit, progress.EventFailed, ue)
}

// notice writes the success line with a single Write so concurrent units never interleave.
func (e *Executor) notice(u WorkUnit) {
	line := fmt.Sprintf("Processed %s -> %s\n", u.Input.Path, u.Output.Path)

	e.noticeMu.Lock()
	defer e.noticeMu.Unlock()

	io.WriteString(e.notices, line) //nolint:errcheck
}

func (e *Executor) report(u WorkUnit, t progress.EventType, err error) {
	msg := t.String()
	if err != nil {
		msg = err.Error()
	}

	e.reporter.Report(progress.Event{
		Unit:      u.Index,
		Input:     u.Input.Path,
		Output:    u.Output.Path,
		Type:      t,
		Message:   msg,
		Timestamp: time.Now(),
		Err:       err,
	})
}
