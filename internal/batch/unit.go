// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/reorg/internal/resolve"
)

// ErrCountMismatch is matched by *CountMismatchError.
var ErrCountMismatch = errors.New("the number of input and output paths must be the same")

// CountMismatchError is returned when outputs are supplied but their count differs from the inputs.
type CountMismatchError struct {
	Inputs  int
	Outputs int
}

// Error implements the error interface for CountMismatchError.
func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("%s: %d input(s), %d output(s)", ErrCountMismatch.Error(), e.Inputs, e.Outputs)
}

// Is reports whether target is ErrCountMismatch.
func (e *CountMismatchError) Is(target error) bool {
	return target == ErrCountMismatch //nolint:errorlint
}

// WorkUnit is one input paired with the path its transformed text is written to.
type WorkUnit struct {
	Index  int
	Input  resolve.ResolvedFile
	Output resolve.ResolvedFile
}

// InPlace reports whether the unit rewrites its input.
func (u WorkUnit) InPlace() bool {
	return u.Input.Path == u.Output.Path
}

// Pair builds the work units. With no outputs every input is rewritten in place,
// otherwise the i-th input pairs with the i-th output.
func Pair(inputs, outputs []resolve.ResolvedFile) ([]WorkUnit, error) {
	if len(outputs) > 0 && len(outputs) != len(inputs) {
		return nil, &CountMismatchError{Inputs: len(inputs), Outputs: len(outputs)}
	}

	units := make([]WorkUnit, len(inputs))

	for i, in := range inputs {
		out := in
		if len(outputs) > 0 {
			out = outputs[i]
		}

		units[i] = WorkUnit{Index: i, Input: in, Output: out}
	}

	return units, nil
}
