// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"
	"slices"
	"strings"
)

// Func transforms the full text of one file.
type Func func(text string) (string, error)

// Pure adapts a function that cannot fail.
func Pure(f func(string) string) Func {
	return func(text string) (string, error) {
		return f(text), nil
	}
}

// Chain runs steps left to right, feeding each the output of the previous one.
// The first failing step stops the chain.
func Chain(steps ...Func) Func {
	return func(text string) (string, error) {
		var err error

		for _, step := range steps {
			if text, err = step(text); err != nil {
				return "", err
			}
		}

		return text, nil
	}
}

// UnknownStepError is returned by FromNames for a step name that is not registered.
type UnknownStepError struct {
	Name string
}

// Error implements the error interface for UnknownStepError.
func (e *UnknownStepError) Error() string {
	return fmt.Sprintf("unknown transform step %q, known steps: %s", e.Name, strings.Join(Names(), ", "))
}

// FromNames builds a chain from registered step names.
func FromNames(names []string) (Func, error) {
	steps := make([]Func, 0, len(names))

	for _, n := range names {
		step, ok := registry[n]
		if !ok {
			return nil, &UnknownStepError{Name: n}
		}

		steps = append(steps, step)
	}

	return Chain(steps...), nil
}

// Names returns the registered step names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}

	slices.Sort(names)

	return names
}

// DefaultSteps is the step list used by Reorganize.
func DefaultSteps() []string {
	return []string{
		StepNormalizeNewlines,
		StepTrimTrailingSpace,
		StepSortUsingDirectives,
		StepCollapseBlankLines,
		StepEnsureFinalNewline,
	}
}

// Reorganize is the default transformation.
var Reorganize = Chain(
	registry[StepNormalizeNewlines],
	registry[StepTrimTrailingSpace],
	registry[StepSortUsingDirectives],
	registry[StepCollapseBlankLines],
	registry[StepEnsureFinalNewline],
)
