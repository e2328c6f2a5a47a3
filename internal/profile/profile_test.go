// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package profile

import (
	"errors"
	"testing"

	"github.com/matt-FFFFFF/reorg/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		filename  string
		src       string
		wantName  string
		wantSteps []string
		wantErr   error
	}{
		{
			name:      "yaml",
			filename:  "p.yaml",
			src:       "name: loud\nsteps:\n  - upper\n",
			wantName:  "loud",
			wantSteps: []string{"upper"},
		},
		{
			name:      "yml extension, name from file",
			filename:  "quiet.yml",
			src:       "steps: [lower, identity]\n",
			wantName:  "quiet",
			wantSteps: []string{"lower", "identity"},
		},
		{
			name:      "hcl literal list",
			filename:  "p.hcl",
			src:       "name = \"h\"\nsteps = [\"trim-trailing-space\"]\n",
			wantName:  "h",
			wantSteps: []string{"trim-trailing-space"},
		},
		{
			name:      "hcl concat defaults",
			filename:  "p.hcl",
			src:       "steps = concat(defaults, [\"upper\"])\n",
			wantName:  "p",
			wantSteps: append(transform.DefaultSteps(), "upper"),
		},
		{
			name:      "hcl step object",
			filename:  "p.hcl",
			src:       "steps = [step.ensure_final_newline]\n",
			wantName:  "p",
			wantSteps: []string{"ensure-final-newline"},
		},
		{
			name:     "unknown extension",
			filename: "p.json",
			src:      "{}",
			wantErr:  ErrUnknownFormat,
		},
		{
			name:     "empty steps",
			filename: "p.yaml",
			src:      "name: none\nsteps: []\n",
			wantErr:  ErrNoSteps,
		},
		{
			name:     "unknown step",
			filename: "p.yaml",
			src:      "steps: [shuffle]\n",
			wantErr:  ErrDecodeProfile,
		},
		{
			name:     "unknown yaml field",
			filename: "p.yaml",
			src:      "steps: [upper]\ncolour: red\n",
			wantErr:  ErrDecodeProfile,
		},
		{
			name:     "invalid hcl",
			filename: "p.hcl",
			src:      "steps = [",
			wantErr:  ErrDecodeProfile,
		},
		{
			name:     "missing hcl steps",
			filename: "p.hcl",
			src:      "name = \"x\"\n",
			wantErr:  ErrDecodeProfile,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p, err := Decode(tc.filename, []byte(tc.src))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, p)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantName, p.Name)
			assert.Equal(t, tc.wantSteps, p.Steps)
		})
	}
}

func TestDecodeUnknownStepDetail(t *testing.T) {
	t.Parallel()

	_, err := Decode("p.yaml", []byte("steps: [shuffle]\n"))

	var stepErr *transform.UnknownStepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, "shuffle", stepErr.Name)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	p := Default()
	assert.Equal(t, DefaultName, p.Name)
	assert.Equal(t, transform.DefaultSteps(), p.Steps)

	fn, err := p.Func()
	require.NoError(t, err)

	in := "using Zeta;\r\nusing System;\r\n"
	got, err := fn(in)
	require.NoError(t, err)

	want, err := transform.Reorganize(in)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFuncNoSteps(t *testing.T) {
	t.Parallel()

	_, err := (&Profile{Name: "empty"}).Func()
	assert.ErrorIs(t, err, ErrNoSteps)
}
