// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/reorg/internal/color"
	"github.com/matt-FFFFFF/reorg/internal/fsys"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type runOutput struct {
	stdout string
	stderr string
	err    error
}

// run executes the root command against fs with the given arguments.
func run(t *testing.T, fs afero.Fs, args ...string) runOutput {
	t.Helper()

	stubs := gostub.Stub(&fsys.FsFactory, func() afero.Fs {
		return fs
	})
	defer stubs.Reset()

	prev := color.SetEnabled(false)
	defer color.SetEnabled(prev)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd := newRootCmd(stdout, stderr)

	err := cmd.Run(context.Background(), append([]string{"reorg"}, args...))

	return runOutput{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func dummyFsWithFiles(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	return fs
}

func readFile(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()

	b, err := afero.ReadFile(fs, name)
	require.NoError(t, err)

	return string(b)
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()

	var exitErr cli.ExitCoder

	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, code, exitErr.ExitCode())
}

func TestInPlaceDefaultProfile(t *testing.T) {
	src := "using Zeta;\r\nusing System.IO;   \r\n\r\n\r\nclass A {}"
	fs := dummyFsWithFiles(t, map[string]string{
		"/work/a.cs": src,
		"/work/b.cs": "class B {}\n",
	})

	out := run(t, fs, "-i", "/work/a.cs,/work/b.cs")

	require.NoError(t, out.err)
	assert.Equal(t, "using System.IO;\nusing Zeta;\n\nclass A {}\n", readFile(t, fs, "/work/a.cs"))
	assert.Equal(t, "class B {}\n", readFile(t, fs, "/work/b.cs"))

	lines := strings.Split(strings.TrimSpace(out.stdout), "\n")
	assert.ElementsMatch(t, []string{
		"Processed /work/a.cs -> /work/a.cs",
		"Processed /work/b.cs -> /work/b.cs",
	}, lines)
	assert.Empty(t, out.stderr)
}

func TestSeparateOutputsWithProfile(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "shout.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte("steps: [upper]\n"), 0o644))

	fs := dummyFsWithFiles(t, map[string]string{
		"/work/a.txt": "hello",
		"/work/b.txt": "world",
	})

	out := run(t, fs,
		"-p", profilePath,
		"-i", "/work/a.txt", "-i", "/work/b.txt",
		"-o", "/out/a.txt", "-o", "/out/b.txt",
	)

	require.NoError(t, out.err)
	assert.Equal(t, "HELLO", readFile(t, fs, "/out/a.txt"))
	assert.Equal(t, "WORLD", readFile(t, fs, "/out/b.txt"))
	assert.Equal(t, "hello", readFile(t, fs, "/work/a.txt"), "inputs are untouched")
	assert.Contains(t, out.stdout, "Processed /work/a.txt -> /out/a.txt\n")
	assert.Contains(t, out.stdout, "Processed /work/b.txt -> /out/b.txt\n")
}

func TestQuietAndSummary(t *testing.T) {
	fs := dummyFsWithFiles(t, map[string]string{"/work/a.cs": "x\n"})

	out := run(t, fs, "-q", "-i", "/work/a.cs")
	require.NoError(t, out.err)
	assert.Empty(t, out.stdout)

	out = run(t, fs, "-q", "-s", "-i", "/work/a.cs")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "✓ /work/a.cs")
	assert.Contains(t, out.stdout, "1 of 1 files processed\n")
	assert.NotContains(t, out.stdout, "Processed")
}

func TestValidationFailures(t *testing.T) {
	testCases := []struct {
		name       string
		args       []string
		wantStderr []string
	}{
		{
			name:       "missing inputs",
			args:       []string{"-i", "/work/a.cs,/work/missing.cs,/work/gone.cs"},
			wantStderr: []string{"one or more paths are invalid\n/work/missing.cs\n/work/gone.cs\n"},
		},
		{
			name:       "directory is not a file",
			args:       []string{"-i", "/work"},
			wantStderr: []string{"one or more paths are invalid\n/work\n"},
		},
		{
			name:       "count mismatch",
			args:       []string{"-i", "/work/a.cs", "-o", "/out/a.cs,/out/b.cs"},
			wantStderr: []string{"1 input(s), 2 output(s)"},
		},
		{
			name:       "unknown profile step",
			args:       []string{"-p", "./testdata/bad.yaml", "-i", "/work/a.cs"},
			wantStderr: []string{"failed to decode profile", "shuffle"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fs := dummyFsWithFiles(t, map[string]string{"/work/a.cs": "keep\n"})

			out := run(t, fs, tc.args...)

			requireExitCode(t, out.err, 1)

			for _, want := range tc.wantStderr {
				assert.Contains(t, out.stderr, want)
			}

			assert.Empty(t, out.stdout)
			assert.Equal(t, "keep\n", readFile(t, fs, "/work/a.cs"), "no file is written")

			exists, err := afero.DirExists(fs, "/out")
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestMissingRequiredFlag(t *testing.T) {
	out := run(t, afero.NewMemMapFs())

	require.Error(t, out.err)
	assert.Contains(t, out.err.Error(), inputFilesFlag)
}

func TestPartialFailure(t *testing.T) {
	fs := dummyFsWithFiles(t, map[string]string{
		"/work/a.cs": "a\n",
		"/work/b.cs": "b\n",
	})

	// Reads succeed and every write fails.
	out := run(t, afero.NewReadOnlyFs(fs), "-i", "/work/a.cs,/work/b.cs", "-o", "/out/a.cs,/out/b.cs")

	requireExitCode(t, out.err, 1)
	assert.Contains(t, out.stderr, "An error occurred: write failed for /work/a.cs -> /out/a.cs")
	assert.Contains(t, out.stderr, "✗ /work/a.cs -> /out/a.cs")
	assert.Contains(t, out.stderr, "✗ /work/b.cs -> /out/b.cs")
	assert.Contains(t, out.stderr, "0 of 2 files processed, 2 failed\n")
	assert.NotContains(t, out.stdout, "Processed")
}
