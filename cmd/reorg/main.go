// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the reorg command-line interface (CLI).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/reorg"
	"github.com/matt-FFFFFF/reorg/internal/ctxlog"
	"github.com/matt-FFFFFF/reorg/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

// newRootCmd builds the root command writing to the given streams.
func newRootCmd(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Writer:    stdout,
		ErrWriter: stderr,
		Name:      "reorg",
		Description: `Reorg applies a text transformation to a batch of files concurrently.
Each input file is read, transformed and written back, either in place or to the
output file at the same position in the output list.

The transformation is chosen by a profile. Without one, the built-in "reorganize"
profile normalizes whitespace and sorts C# using directives. Profiles are YAML or
HCL files and may be fetched from any source supported by Hashicorp's go-getter,
see https://github.com/hashicorp/go-getter.`,
		Usage:     "reorg -i a.cs,b.cs [-o x.cs,y.cs]",
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		Version:               fmt.Sprintf("%s (commit: %s)", reorg.Version, reorg.Commit),
		Flags:                 flags(),
		Action:                actionFunc,
		ExitErrHandler:        writeExitMessage,
		EnableShellCompletion: true,
	}
}

// writeExitMessage prints the message of a cli.Exit error to the command's error stream.
// The process exit code is decided in main.
func writeExitMessage(_ context.Context, cmd *cli.Command, err error) {
	var exitErr cli.ExitCoder
	if !errors.As(err, &exitErr) {
		return
	}

	if msg := exitErr.Error(); msg != "" {
		fmt.Fprintln(cmd.Root().ErrWriter, msg) //nolint:errcheck
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	err := newRootCmd(os.Stdout, os.Stderr).Run(ctx, os.Args)

	signalbroker.Stop(sigCh)

	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("command terminated due to cancellation", "error", ctx.Err())
		cancel()
		os.Exit(1)
	}

	cancel()

	if err != nil {
		var exitErr cli.ExitCoder
		if !errors.As(err, &exitErr) {
			ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		}

		os.Exit(1)
	}

	ctxlog.Logger(ctx).Info("command completed successfully")
}
