// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/matt-FFFFFF/reorg/internal/batch"
	"github.com/matt-FFFFFF/reorg/internal/ctxlog"
	"github.com/matt-FFFFFF/reorg/internal/fsys"
	"github.com/matt-FFFFFF/reorg/internal/profile"
	"github.com/matt-FFFFFF/reorg/internal/progress"
	"github.com/matt-FFFFFF/reorg/internal/resolve"
	"github.com/matt-FFFFFF/reorg/internal/transform"
	"github.com/matt-FFFFFF/reorg/internal/tui"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	inputFilesFlag  = "input-files"
	outputFilesFlag = "output-files"
	profileFlag     = "profile"
	tuiFlag         = "tui"
	quietFlag       = "quiet"
	summaryFlag     = "summary"
	cliExitStr      = ""
	eventsPerUnit   = 3 // queued, started, then completed or failed
)

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:     inputFilesFlag,
			Aliases:  []string{"i"},
			Usage:    "Files to process. Separate with commas or repeat the flag.",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:    outputFilesFlag,
			Aliases: []string{"o"},
			Usage: "Output files, paired with input files by position. " +
				"When omitted, input files are rewritten in place.",
		},
		&cli.StringFlag{
			Name:    profileFlag,
			Aliases: []string{"p"},
			Usage: "URL of a YAML or HCL profile selecting the transform steps. " +
				"Supports Hashicorp's go-getter syntax. Defaults to the built-in reorganize profile.",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.BoolFlag{
			Name:        tuiFlag,
			Aliases:     []string{"t", "interactive"},
			Usage:       "Run with interactive Terminal User Interface (TUI) showing real-time progress",
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        quietFlag,
			Aliases:     []string{"q"},
			Usage:       "Do not print a line for each processed file",
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        summaryFlag,
			Aliases:     []string{"s"},
			Usage:       "Print a summary of every file with durations, even when all succeed",
			DefaultText: "false",
			OnlyOnce:    true,
		},
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("running reorg")

	prof, err := profile.Load(ctx, cmd.String(profileFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fn, err := prof.Func()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	logger.Debug("profile loaded", "name", prof.Name, "steps", prof.Steps)

	fs := fsys.FsFactory()

	inputs, err := resolve.Resolve(fs, cmd.StringSlice(inputFilesFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	outputs, err := resolve.Targets(cmd.StringSlice(outputFilesFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	var notices io.Writer = cmd.Writer
	if cmd.Bool(quietFlag) {
		notices = io.Discard
	}

	var (
		res    batch.Results
		runErr error
	)

	switch cmd.Bool(tuiFlag) {
	case true:
		res, runErr = runWithTUI(ctx, cmd, fs, fn, inputs, outputs, notices)
	default:
		res, runErr = runHeadless(ctx, fs, fn, inputs, outputs, notices)
	}

	return report(cmd, res, runErr)
}

func runHeadless(
	ctx context.Context, fs afero.Fs, fn transform.Func, inputs, outputs []resolve.ResolvedFile, notices io.Writer,
) (batch.Results, error) {
	logger := ctxlog.Logger(ctx)

	reporter := progress.NewChannelReporter(len(inputs) * eventsPerUnit)
	reporter.Listen(progress.ListenerFunc(func(e progress.Event) {
		logger.Debug("unit "+e.Type.String(), "unit", e.Unit, "input", e.Input, "output", e.Output, "message", e.Message)
	}))

	defer reporter.Close()

	return batch.New(fs, fn, batch.WithNotices(notices), batch.WithReporter(reporter)).Run(ctx, inputs, outputs)
}

func runWithTUI(
	ctx context.Context,
	cmd *cli.Command,
	fs afero.Fs,
	fn transform.Func,
	inputs, outputs []resolve.ResolvedFile,
	notices io.Writer,
) (batch.Results, error) {
	ctxlog.Info(ctx, "starting interactive TUI mode")

	// The TUI owns the terminal, so logs and notices are held until it exits.
	logBuf := new(bytes.Buffer)
	noticeBuf := new(bytes.Buffer)
	tuiCtx := ctxlog.NewForTUI(ctx, logBuf)

	runner := tui.NewRunner(tuiCtx, fmt.Sprintf("reorg: %d files", len(inputs)))

	res, err := runner.Run(tuiCtx, func(ctx context.Context, reporter progress.Reporter) (batch.Results, error) {
		return batch.New(fs, fn, batch.WithNotices(noticeBuf), batch.WithReporter(reporter)).Run(ctx, inputs, outputs)
	})

	noticeBuf.WriteTo(notices)           //nolint:errcheck
	logBuf.WriteTo(cmd.Root().ErrWriter) //nolint:errcheck

	return res, err
}

// report writes the outcome of the batch and converts it to the exit status.
func report(cmd *cli.Command, res batch.Results, err error) error {
	var agg *batch.AggregateError

	switch {
	case err == nil:
		if cmd.Bool(summaryFlag) {
			opts := &batch.OutputOptions{ShowSuccessDetails: true, ShowDurations: true}
			res.WriteText(cmd.Writer, opts) //nolint:errcheck
		}

		return nil

	case errors.As(err, &agg):
		errW := cmd.Root().ErrWriter

		fmt.Fprintf(errW, "An error occurred: %s\n", agg.Error()) //nolint:errcheck

		opts := batch.DefaultOutputOptions()
		opts.ShowSuccessDetails = cmd.Bool(summaryFlag)
		opts.ShowDurations = cmd.Bool(summaryFlag)
		res.WriteText(errW, opts) //nolint:errcheck

		return cli.Exit(cliExitStr, 1)

	default:
		return cli.Exit(err.Error(), 1)
	}
}
