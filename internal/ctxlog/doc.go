// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a slog.Logger in a context.Context.
//
// The default logger writes to stderr through PrettyHandler so that log lines never
// mix with the "Processed" notices written to stdout. The level is read from the
// REORG_LOG_LEVEL environment variable and defaults to WARN.
package ctxlog
