// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/matt-FFFFFF/reorg/internal/color"
)

const durationRounding = time.Millisecond

// OutputOptions controls what is included in the summary.
type OutputOptions struct {
	ShowSuccessDetails bool // List successful units as well as failed ones
	ShowDurations      bool // Append the duration of each unit
}

// DefaultOutputOptions returns a default set of output options.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{}
}

// WriteText writes a summary of the batch to w.
func (r Results) WriteText(w io.Writer, options *OutputOptions) error {
	if options == nil {
		options = DefaultOutputOptions()
	}

	sb := strings.Builder{}

	for _, res := range r {
		if res.Status == ResultStatusSuccess && !options.ShowSuccessDetails {
			continue
		}

		writeResult(&sb, res, options)
	}

	failed := len(r) - r.Succeeded()
	summary := fmt.Sprintf("%d of %d files processed", r.Succeeded(), len(r))

	switch {
	case failed > 0:
		summary = color.Colorize(fmt.Sprintf("%s, %d failed", summary, failed), color.Bold, color.FgRed)
	default:
		summary = color.Colorize(summary, color.Bold, color.FgGreen)
	}

	sb.WriteString(summary)
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())

	return err //nolint:wrapcheck
}

func writeResult(sb *strings.Builder, r *Result, options *OutputOptions) {
	var statusStr, labelPrefix string

	switch r.Status {
	case ResultStatusError:
		statusStr = color.Colorize("✗", color.FgRed)
		labelPrefix = color.ControlString(color.Bold, color.FgRed)
	case ResultStatusSuccess:
		statusStr = color.Colorize("✓", color.FgGreen)
		labelPrefix = color.ControlString(color.Bold, color.FgGreen)
	default:
		statusStr = color.Colorize("?", color.FgWhite)
	}

	label := r.Unit.Input.Path
	if !r.Unit.InPlace() {
		label += " -> " + r.Unit.Output.Path
	}

	fmt.Fprintf(sb, "%s %s%s%s", statusStr, labelPrefix, label, color.ControlString(color.Reset))

	if options.ShowDurations {
		fmt.Fprintf(sb, " (%v)", r.Duration.Round(durationRounding))
	}

	sb.WriteString("\n")

	if r.Error == nil {
		return
	}

	msg := r.Error.Error()
	if ue, ok := r.Error.(*UnitError); ok { //nolint:errorlint
		msg = fmt.Sprintf("%s: %v", ue.Stage, ue.Err)
	}

	fmt.Fprintf(sb, "  %s %s\n", color.Colorize("➜ Error:", color.FgRed), msg)
}
