// Copyright (c) 2024 dsogari
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package tsargp

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LogFormat selects the slog.Handler a consuming CLI installs as the
// package-level default before calling Validate/Parse, since this package
// logs warnings directly via slog rather than taking an injected logger.
type LogFormat string

const (
	LogFormatJSON    LogFormat = "json"
	LogFormatLogfmt  LogFormat = "logfmt"
)

var (
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// NewLogHandler builds a slog.Handler from string level/format settings,
// typically passed straight through from a CLI's own --log-level/--log-format
// options before wiring slog.SetDefault.
func NewLogHandler(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	fmtKind, err := ParseLogFormat(format)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if fmtKind == LogFormatJSON {
		return slog.NewJSONHandler(w, opts), nil
	}
	return slog.NewTextHandler(w, opts), nil
}

// ParseLogLevel parses a log level string into a slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
}

// ParseLogFormat parses a log format string into a LogFormat.
func ParseLogFormat(format string) (LogFormat, error) {
	switch LogFormat(strings.ToLower(format)) {
	case LogFormatJSON:
		return LogFormatJSON, nil
	case LogFormatLogfmt, "":
		return LogFormatLogfmt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLogFormat, format)
}
