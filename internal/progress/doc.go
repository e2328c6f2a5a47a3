// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress carries per-unit lifecycle events from the batch executor to
// listeners such as the TUI. Reporting never blocks a unit: events that cannot be
// delivered immediately are dropped.
package progress
