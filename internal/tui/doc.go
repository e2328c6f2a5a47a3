// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui provides a real-time Terminal User Interface (TUI) for watching a batch run.
// It lists every file pair with its status, elapsed time and, for failures, the error.
//
// The TUI is fed by the progress event system. It stays open after the batch finishes
// until the user quits with 'q'.
package tui
