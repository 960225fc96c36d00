package form_test

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

// recordingLogger forwards Debug and Warn records to its hooks and drops the rest.
type recordingLogger struct {
	onDebug func(msg string, args ...any)
	onWarn  func(msg string, args ...any)
}

var _ glog.Logger = (*recordingLogger)(nil)

func (l *recordingLogger) Trace(string, ...any) {}
func (l *recordingLogger) Debug(msg string, args ...any) {
	if l.onDebug != nil {
		l.onDebug(msg, args...)
	}
}
func (l *recordingLogger) Info(string, ...any)                     {}
func (l *recordingLogger) Warn(msg string, args ...any) {
	if l.onWarn != nil {
		l.onWarn(msg, args...)
	}
}
func (l *recordingLogger) Error(string, ...any)                    {}
func (l *recordingLogger) Fatal(string, ...any)                    {}
func (l *recordingLogger) WithContext(context.Context) glog.Logger { return l }
