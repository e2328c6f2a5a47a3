// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package profile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/reorg/internal/transform"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// DefaultName is the name of the built-in profile.
const DefaultName = "reorganize"

var (
	// ErrDecodeProfile is returned when the profile document cannot be decoded.
	ErrDecodeProfile = errors.New("failed to decode profile")
	// ErrNoSteps is returned when a profile lists no steps.
	ErrNoSteps = errors.New("profile has no steps")
	// ErrUnknownFormat is returned for a file extension that is neither YAML nor HCL.
	ErrUnknownFormat = errors.New("unknown profile format, expected .yaml, .yml or .hcl")
)

// Profile is a named list of transform steps.
type Profile struct {
	Name        string   `yaml:"name"        hcl:"name,optional"`
	Description string   `yaml:"description" hcl:"description,optional"`
	Steps       []string `yaml:"steps"       hcl:"steps"`
}

// Default returns the built-in profile.
func Default() *Profile {
	return &Profile{
		Name:        DefaultName,
		Description: "Normalize whitespace and sort using directives.",
		Steps:       transform.DefaultSteps(),
	}
}

// Func builds the transformation described by the profile.
func (p *Profile) Func() (transform.Func, error) {
	if len(p.Steps) == 0 {
		return nil, ErrNoSteps
	}

	return transform.FromNames(p.Steps) //nolint:wrapcheck
}

// Decode parses a profile document. The format is chosen by the extension of filename.
func Decode(filename string, src []byte) (*Profile, error) {
	var (
		p   *Profile
		err error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		p, err = decodeYAML(src)
	case ".hcl":
		p, err = decodeHCL(filename, src)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
	}

	if err != nil {
		return nil, errors.Join(ErrDecodeProfile, err)
	}

	if len(p.Steps) == 0 {
		return nil, ErrNoSteps
	}

	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}

	if _, err := p.Func(); err != nil {
		return nil, errors.Join(ErrDecodeProfile, err)
	}

	return p, nil
}

func decodeYAML(src []byte) (*Profile, error) {
	p := &Profile{}
	if err := yaml.UnmarshalWithOptions(src, p, yaml.Strict()); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return p, nil
}

func decodeHCL(filename string, src []byte) (*Profile, error) {
	p := &Profile{}
	if err := hclsimple.Decode(filename, src, evalContext(), p); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return p, nil
}

func evalContext() *hcl.EvalContext {
	defaults := make([]cty.Value, 0, len(transform.DefaultSteps()))
	for _, s := range transform.DefaultSteps() {
		defaults = append(defaults, cty.StringVal(s))
	}

	steps := make(map[string]cty.Value, len(transform.Names()))
	for _, n := range transform.Names() {
		steps[strings.ReplaceAll(n, "-", "_")] = cty.StringVal(n)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": cty.ListVal(defaults),
			"step":     cty.ObjectVal(steps),
		},
		Functions: map[string]function.Function{
			"concat":   stdlib.ConcatFunc,
			"distinct": stdlib.DistinctFunc,
		},
	}
}
