// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"errors"
	"slices"
	"time"
)

// ResultStatus is the terminal state of a unit.
type ResultStatus int

const (
	// ResultStatusSuccess means the output was written.
	ResultStatusSuccess ResultStatus = iota
	// ResultStatusError means the unit failed at one of its stages.
	ResultStatusError
)

// String implements the Stringer interface for ResultStatus.
func (s ResultStatus) String() string {
	switch s {
	case ResultStatusSuccess:
		return "success"
	case ResultStatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of one work unit.
type Result struct {
	Unit     WorkUnit
	Status   ResultStatus
	Error    error // *UnitError when Status is ResultStatusError
	Duration time.Duration
}

// Results holds one Result per unit, ordered by unit index.
type Results []*Result

// HasError reports whether any unit failed.
func (r Results) HasError() bool {
	return slices.ContainsFunc(r, func(res *Result) bool {
		return res.Status == ResultStatusError
	})
}

// Succeeded returns the number of units that succeeded.
func (r Results) Succeeded() int {
	n := 0

	for _, res := range r {
		if res.Status == ResultStatusSuccess {
			n++
		}
	}

	return n
}

// Err returns nil when every unit succeeded, otherwise an *AggregateError.
func (r Results) Err() error {
	var failed []*UnitError

	for _, res := range r {
		if res.Status != ResultStatusError {
			continue
		}

		var ue *UnitError
		if !errors.As(res.Error, &ue) {
			ue = &UnitError{
				Index:  res.Unit.Index,
				Input:  res.Unit.Input.Path,
				Output: res.Unit.Output.Path,
				Err:    res.Error,
			}
		}

		failed = append(failed, ue)
	}

	if len(failed) == 0 {
		return nil
	}

	return newAggregateError(len(r), failed)
}
