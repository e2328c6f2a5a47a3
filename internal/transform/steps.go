// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package transform

import (
	"cmp"
	"slices"
	"strings"
)

// Registered step names.
const (
	StepIdentity            = "identity"
	StepNormalizeNewlines   = "normalize-newlines"
	StepTrimTrailingSpace   = "trim-trailing-space"
	StepSortUsingDirectives = "sort-using-directives"
	StepCollapseBlankLines  = "collapse-blank-lines"
	StepEnsureFinalNewline  = "ensure-final-newline"
	StepUpper               = "upper"
	StepLower               = "lower"
)

var registry = map[string]Func{
	StepIdentity:            Pure(func(s string) string { return s }),
	StepNormalizeNewlines:   Pure(normalizeNewlines),
	StepTrimTrailingSpace:   Pure(trimTrailingSpace),
	StepSortUsingDirectives: Pure(sortUsingDirectives),
	StepCollapseBlankLines:  Pure(collapseBlankLines),
	StepEnsureFinalNewline:  Pure(ensureFinalNewline),
	StepUpper:               Pure(strings.ToUpper),
	StepLower:               Pure(strings.ToLower),
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}

	return strings.Join(lines, "\n")
}

// collapseBlankLines keeps at most one blank line between non-blank lines.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	for i, l := range lines {
		blank := strings.TrimSpace(l) == ""
		if blank && len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" && i != len(lines)-1 {
			continue
		}

		out = append(out, l)
	}

	return strings.Join(out, "\n")
}

func ensureFinalNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}

	return s + "\n"
}

// sortUsingDirectives sorts every contiguous run of `using X;` lines.
// System namespaces come first, then the rest ordinally, then `using static`.
// Alias directives go last in their original order.
func sortUsingDirectives(s string) string {
	lines := strings.Split(s, "\n")

	for start := 0; start < len(lines); {
		if !isUsingDirective(lines[start]) {
			start++
			continue
		}

		end := start
		for end < len(lines) && isUsingDirective(lines[end]) {
			end++
		}

		slices.SortStableFunc(lines[start:end], compareUsing)

		start = end
	}

	return strings.Join(lines, "\n")
}

func isUsingDirective(line string) bool {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, "using ") || !strings.HasSuffix(t, ";") {
		return false
	}

	// using (var x = ...) statements end in ')' or '{' and never reach here,
	// but `using var x = ...;` declarations do.
	return !strings.HasPrefix(t, "using var ")
}

func usingRank(ns string) int {
	switch {
	case strings.HasPrefix(ns, "static "):
		return 2
	case strings.Contains(ns, "="):
		return 3
	case ns == "System" || strings.HasPrefix(ns, "System."):
		return 0
	default:
		return 1
	}
}

func usingNamespace(line string) string {
	t := strings.TrimSpace(line)
	t = strings.TrimPrefix(t, "using ")

	return strings.TrimSpace(strings.TrimSuffix(t, ";"))
}

func compareUsing(a, b string) int {
	na, nb := usingNamespace(a), usingNamespace(b)
	if c := cmp.Compare(usingRank(na), usingRank(nb)); c != 0 {
		return c
	}

	if usingRank(na) == 3 { //nolint:mnd
		return 0
	}

	return strings.Compare(na, nb)
}
