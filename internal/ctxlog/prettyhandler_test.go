// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandler_Handle(t *testing.T) {
	tests := []struct {
		name           string
		level          slog.Level
		message        string
		attrs          []any
		options        []Option
		expectInOutput []string
	}{
		{
			name:           "basic info message",
			level:          slog.LevelInfo,
			message:        "batch started",
			expectInOutput: []string{"INFO:", "batch started"},
		},
		{
			name:           "debug message with attributes",
			level:          slog.LevelDebug,
			message:        "unit finished",
			attrs:          []any{"input", "a.cs", "unit", 3},
			expectInOutput: []string{"DEBUG:", "unit finished", "input", "a.cs", "3"},
		},
		{
			name:           "error message",
			level:          slog.LevelError,
			message:        "unit failed",
			expectInOutput: []string{"ERROR:", "unit failed"},
		},
		{
			name:           "empty attrs output enabled",
			level:          slog.LevelInfo,
			message:        "nothing attached",
			options:        []Option{WithOutputEmptyAttrs()},
			expectInOutput: []string{"INFO:", "nothing attached", "{}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			opts := append([]Option{WithDestinationWriter(&buf)}, tt.options...)
			handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, opts...)

			record := slog.NewRecord(time.Now(), tt.level, tt.message, 0)
			record.Add(tt.attrs...)

			require.NoError(t, handler.Handle(context.Background(), record))

			output := buf.String()
			for _, expected := range tt.expectInOutput {
				assert.Contains(t, output, expected)
			}

			assert.True(t, strings.HasSuffix(output, "\n"), "output should end with newline")
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelInfo})

	assert.False(t, handler.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelWarn))
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(&buf)))
	logger.With("component", "batch").WithGroup("unit").Info("processed", "index", 1)

	assert.Contains(t, buf.String(), "component")
	assert.Contains(t, buf.String(), "batch")
	assert.Contains(t, buf.String(), "unit")
	assert.Contains(t, buf.String(), "index")
}

func TestPrettyHandler_ReplaceAttr(t *testing.T) {
	var buf bytes.Buffer

	replaceAttr := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}

		if a.Key == "secret" {
			return slog.String("secret", "[REDACTED]")
		}

		return a
	}

	handler := NewPrettyHandler(&slog.HandlerOptions{
		Level:       slog.LevelDebug,
		ReplaceAttr: replaceAttr,
	}, WithDestinationWriter(&buf))

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "profile loaded", 0)
	record.Add("secret", "token123", "public", "data")

	require.NoError(t, handler.Handle(context.Background(), record))

	assert.Contains(t, buf.String(), "[REDACTED]")
	assert.NotContains(t, buf.String(), "token123")
	assert.True(t, strings.HasPrefix(buf.String(), "INFO:"), "time attribute was removed so the line starts with the level")
}

type failingWriter struct{}

func (w *failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestPrettyHandler_Handle_WriteError(t *testing.T) {
	handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(&failingWriter{}))

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "test message", 0)
	err := handler.Handle(context.Background(), record)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIoWrite)
}

func TestPrettyHandler_Colour(t *testing.T) {
	var plain, coloured bytes.Buffer

	record := slog.NewRecord(time.Now(), slog.LevelWarn, "in-place rewrite", 0)

	require.NoError(t, NewPrettyHandler(nil, WithDestinationWriter(&plain)).Handle(context.Background(), record))
	assert.NotContains(t, plain.String(), "\033[")

	require.NoError(t, NewPrettyHandler(nil, WithDestinationWriter(&coloured), WithColour()).
		Handle(context.Background(), record))
	assert.Contains(t, coloured.String(), "WARN:")
}

func TestSuppressDefaults(t *testing.T) {
	fn := suppressDefaults(nil)

	for _, key := range []string{slog.TimeKey, slog.LevelKey, slog.MessageKey} {
		assert.True(t, fn(nil, slog.String(key, "x")).Equal(slog.Attr{}), "expected %s to be suppressed", key)
	}

	kept := slog.String("input", "a.cs")
	assert.True(t, fn(nil, kept).Equal(kept))
}
