// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package batch pairs resolved inputs with outputs and processes every pair concurrently.
//
// Each pair is a WorkUnit: read the input, transform the text, write the output.
// All units are launched at once and Run waits for every one of them, so a failing
// unit never cancels or hides its siblings. Failures are collected into an
// *AggregateError that keeps every *UnitError.
package batch
