package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// slogLogger adapts a *slog.Logger to glog.Logger for CLI output.
type slogLogger struct {
	l   *slog.Logger
	ctx context.Context
}

var _ glog.Logger = (*slogLogger)(nil)

func newSlogLogger(w io.Writer, level slog.Level) *slogLogger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &slogLogger{l: slog.New(h), ctx: context.Background()}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// slog has no trace level; trace maps below debug.
const levelTrace = slog.LevelDebug - 4

func (s *slogLogger) Trace(msg string, args ...any) { s.l.Log(s.ctx, levelTrace, msg, args...) }
func (s *slogLogger) Debug(msg string, args ...any) { s.l.DebugContext(s.ctx, msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.l.InfoContext(s.ctx, msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.l.WarnContext(s.ctx, msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.ErrorContext(s.ctx, msg, args...) }

func (s *slogLogger) Fatal(msg string, args ...any) {
	s.l.ErrorContext(s.ctx, msg, args...)
	os.Exit(1)
}

func (s *slogLogger) WithContext(ctx context.Context) glog.Logger {
	if ctx == nil {
		ctx = context.Background()
	}
	return &slogLogger{l: s.l, ctx: ctx}
}
