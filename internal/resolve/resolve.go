// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package resolve validates the path tokens supplied on the command line.
//
// Resolve is all or nothing: either every token names an existing regular file and
// the whole ordered list is returned, or an *InvalidPathsError lists the offending
// tokens. Order is preserved because inputs are later paired with outputs by index.
package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrNoFiles is returned by Resolve when there is nothing to validate.
var ErrNoFiles = errors.New("at least one file must be specified")

// ResolvedFile is a path that was validated at resolution time.
// The file may still disappear before it is read.
type ResolvedFile struct {
	Token string // The token as supplied by the caller
	Path  string // Absolute, cleaned path
}

// String returns the absolute path.
func (f ResolvedFile) String() string {
	return f.Path
}

// InvalidPathsError lists the tokens that failed validation, in their original order.
type InvalidPathsError struct {
	Paths []string
}

// Error implements the error interface for InvalidPathsError.
// Each offending token is printed on its own line.
func (e *InvalidPathsError) Error() string {
	return "one or more paths are invalid" + "\n" + strings.Join(e.Paths, "\n")
}

// Resolve checks that every token names an existing regular file on fs.
func Resolve(fs afero.Fs, tokens []string) ([]ResolvedFile, error) {
	if len(tokens) == 0 {
		return nil, ErrNoFiles
	}

	files := make([]ResolvedFile, len(tokens))

	var bad []string

	for i, token := range tokens {
		f, err := newResolvedFile(token)
		if err != nil {
			bad = append(bad, token)
			continue
		}

		if !isRegularFile(fs, f.Path) {
			bad = append(bad, token)
			continue
		}

		files[i] = f
	}

	if len(bad) > 0 {
		return nil, &InvalidPathsError{Paths: bad}
	}

	return files, nil
}

// Targets resolves optional output tokens. Targets need not exist yet,
// so only blank tokens are rejected. An empty list is not an error.
func Targets(tokens []string) ([]ResolvedFile, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	files := make([]ResolvedFile, len(tokens))

	var bad []string

	for i, token := range tokens {
		f, err := newResolvedFile(token)
		if err != nil {
			bad = append(bad, token)
			continue
		}

		files[i] = f
	}

	if len(bad) > 0 {
		return nil, &InvalidPathsError{Paths: bad}
	}

	return files, nil
}

func newResolvedFile(token string) (ResolvedFile, error) {
	if strings.TrimSpace(token) == "" {
		return ResolvedFile{}, os.ErrInvalid
	}

	abs, err := filepath.Abs(token)
	if err != nil {
		return ResolvedFile{}, err //nolint:wrapcheck
	}

	return ResolvedFile{Token: token, Path: abs}, nil
}

func isRegularFile(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}
