// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package resolve

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFs(t *testing.T, names ...string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, n := range names {
		require.NoError(t, afero.WriteFile(fs, n, []byte("content of "+n), 0o644))
	}

	return fs
}

func TestResolve(t *testing.T) {
	fs := newFs(t, "/work/a.cs", "/work/b.cs", "/work/c.cs")
	require.NoError(t, fs.MkdirAll("/work/dir", 0o755))

	tests := []struct {
		name      string
		tokens    []string
		wantPaths []string
		wantBad   []string
		wantErr   error
	}{
		{
			name:      "all exist keeps order",
			tokens:    []string{"/work/c.cs", "/work/a.cs", "/work/b.cs"},
			wantPaths: []string{"/work/c.cs", "/work/a.cs", "/work/b.cs"},
		},
		{
			name:      "single file",
			tokens:    []string{"/work/a.cs"},
			wantPaths: []string{"/work/a.cs"},
		},
		{
			name:    "missing tokens reported in order without existing ones",
			tokens:  []string{"/work/a.cs", "/work/missing2.cs", "/work/b.cs", "/work/missing1.cs"},
			wantBad: []string{"/work/missing2.cs", "/work/missing1.cs"},
		},
		{
			name:    "directory is not a regular file",
			tokens:  []string{"/work/dir", "/work/a.cs"},
			wantBad: []string{"/work/dir"},
		},
		{
			name:    "blank token is invalid",
			tokens:  []string{" ", "/work/a.cs"},
			wantBad: []string{" "},
		},
		{
			name:    "empty token list",
			tokens:  []string{},
			wantErr: ErrNoFiles,
		},
		{
			name:    "nil token list",
			tokens:  nil,
			wantErr: ErrNoFiles,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := Resolve(fs, tt.tokens)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, files)
			case tt.wantBad != nil:
				var invalid *InvalidPathsError

				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, tt.wantBad, invalid.Paths)
				assert.Nil(t, files, "no partial list is returned")
			default:
				require.NoError(t, err)
				require.Len(t, files, len(tt.tokens))

				for i, f := range files {
					assert.Equal(t, tt.tokens[i], f.Token)
					assert.Equal(t, tt.wantPaths[i], f.Path)
				}
			}
		})
	}
}

func TestInvalidPathsError_Error(t *testing.T) {
	err := &InvalidPathsError{Paths: []string{"missing.cs", "gone.cs"}}

	assert.Equal(t, "one or more paths are invalid\nmissing.cs\ngone.cs", err.Error())
}

func TestTargets(t *testing.T) {
	files, err := Targets(nil)
	require.NoError(t, err, "absent output list is a valid no-op")
	assert.Nil(t, files)

	files, err = Targets([]string{"/out/b.cs", "/out/a.cs"})
	require.NoError(t, err, "targets need not exist")
	require.Len(t, files, 2)
	assert.Equal(t, "/out/b.cs", files[0].Path)
	assert.Equal(t, "/out/a.cs", files[1].Path)

	_, err = Targets([]string{"/out/a.cs", ""})

	var invalid *InvalidPathsError

	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{""}, invalid.Paths)
}

func TestResolve_RelativeTokenBecomesAbsolute(t *testing.T) {
	files, err := Targets([]string{"rel/out.cs"})
	require.NoError(t, err)
	assert.NotEqual(t, "rel/out.cs", files[0].Path)
	assert.Equal(t, "rel/out.cs", files[0].Token)
	assert.Equal(t, files[0].Path, files[0].String())
}
