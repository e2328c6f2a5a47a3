// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package transform contains the text transformations applied to each file.
//
// A transformation is a Func: text in, text out. The executor treats it as an
// opaque collaborator, so anything that satisfies Func can be injected, including
// test doubles. Named steps can be composed with Chain or built from a profile with
// FromNames.
package transform
