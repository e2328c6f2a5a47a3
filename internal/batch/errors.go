// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrNoTransform is returned when the executor has no transformation to apply.
	ErrNoTransform = errors.New("no transformation configured")
	// ErrNoUnits is returned when Run is called without inputs.
	ErrNoUnits = errors.New("no files to process")
)

// Stage is the step of a unit's pipeline that failed.
type Stage string

// Pipeline stages, in execution order.
const (
	StageRead      Stage = "read"
	StageTransform Stage = "transform"
	StageWrite     Stage = "write"
)

// UnitError is the failure of a single work unit.
type UnitError struct {
	Index  int
	Input  string
	Output string
	Stage  Stage
	Err    error
}

// Error implements the error interface for UnitError.
func (e *UnitError) Error() string {
	return fmt.Sprintf("%s failed for %s -> %s: %v", e.Stage, e.Input, e.Output, e.Err)
}

// Unwrap returns the underlying cause.
func (e *UnitError) Unwrap() error {
	return e.Err
}

// PanicError is the cause recorded when a unit panics.
type PanicError struct {
	Value any
}

// Error implements the error interface for PanicError.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}

// AggregateError is returned by Run when one or more units failed.
// It is only produced after every unit has finished.
type AggregateError struct {
	Total  int
	merr   *multierror.Error
	failed []*UnitError
}

func newAggregateError(total int, failed []*UnitError) *AggregateError {
	merr := &multierror.Error{ErrorFormat: multierror.ListFormatFunc}
	for _, ue := range failed {
		merr = multierror.Append(merr, ue)
	}

	return &AggregateError{Total: total, merr: merr, failed: failed}
}

// Error implements the error interface for AggregateError.
// The message leads with the first failure so a one-line report stays attributable.
func (e *AggregateError) Error() string {
	if len(e.failed) == 0 {
		return "no failures"
	}

	if len(e.failed) == 1 {
		return e.failed[0].Error()
	}

	return fmt.Sprintf("%s (and %d more of %d files failed)", e.failed[0].Error(), len(e.failed)-1, e.Total)
}

// Units returns every unit failure ordered by unit index.
func (e *AggregateError) Units() []*UnitError {
	return e.failed
}

// Detail renders every failure as a bulleted list.
func (e *AggregateError) Detail() string {
	return e.merr.Error()
}

// Unwrap exposes the individual unit errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() error {
	return e.merr.ErrorOrNil()
}
