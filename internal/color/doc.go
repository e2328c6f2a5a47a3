// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes for the reorg console output.
// Colour is enabled when stdout is a terminal, can be forced with FORCE_COLOR
// and is always disabled when NO_COLOR is set.
package color
