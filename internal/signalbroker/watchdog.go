// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/reorg/internal/ctxlog"
)

// Watch consumes sigCh until it is closed or a signal type is seen twice.
// On the second signal of a type it closes sigCh and calls cancel.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := seen[sig]; ok {
			ctxlog.Warn(ctx, "watchdog", "detail", "received second signal, cancelling", "signal", sig.String())
			close(sigCh)
			cancel()

			return
		}

		ctxlog.Warn(ctx, "watchdog", "detail", "received signal, waiting for running units to finish", "signal", sig.String())

		seen[sig] = struct{}{}
	}
}
