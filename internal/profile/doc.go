// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package profile loads the transformation profile: a named list of transform steps.
//
// Profiles are YAML or HCL documents. The source may be a local path or any URL
// understood by Hashicorp's go-getter, see https://github.com/hashicorp/go-getter.
//
// YAML:
//
//	name: csharp
//	steps:
//	  - normalize-newlines
//	  - sort-using-directives
//
// HCL, where defaults holds the built-in step list and concat is available:
//
//	name  = "shout"
//	steps = concat(defaults, ["upper"])
package profile
