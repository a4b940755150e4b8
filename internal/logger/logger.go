package logger

import (
	"io"
	"log"
	"os"

	"github.com/rollbar/rollbar-go"
)

// Logger writes to a standard logger and, when a Rollbar token is configured,
// reports warnings and errors to Rollbar as well.
type Logger struct {
	std     *log.Logger
	rollbar bool
}

type Options struct {
	RollbarToken string
	Environment  string
	ServerHost   string
	Output       io.Writer
}

func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	l := &Logger{std: log.New(out, "", log.LstdFlags)}

	if opts.RollbarToken != "" {
		rollbar.SetToken(opts.RollbarToken)
		rollbar.SetEnvironment(opts.Environment)
		rollbar.SetServerHost(opts.ServerHost)
		l.rollbar = true
	}
	rollbar.SetEnabled(l.rollbar)
	return l
}

// Discard returns a Logger that drops everything. Used by tests.
func Discard() *Logger {
	return &Logger{std: log.New(io.Discard, "", 0)}
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.std.Printf(format, args...)
}

func (l *Logger) Warn(msg string, err error) {
	if err != nil {
		l.std.Printf("WARN %s: %v", msg, err)
	} else {
		l.std.Printf("WARN %s", msg)
	}
	if l.rollbar {
		args := []interface{}{msg}
		if err != nil {
			args = append(args, err)
		}
		rollbar.Warning(args...)
	}
}

// Error logs msg with err and any extra context (map[string]interface{} values
// are attached to the Rollbar item as custom data).
func (l *Logger) Error(msg string, err error, extras ...map[string]interface{}) {
	l.std.Printf("ERROR %s: %v", msg, err)
	for _, extra := range extras {
		l.std.Printf("  %+v", extra)
	}
	if l.rollbar {
		args := []interface{}{err}
		for _, extra := range extras {
			args = append(args, extra)
		}
		rollbar.Error(args...)
	}
}

func (l *Logger) Fatal(msg string, err error) {
	if l.rollbar {
		rollbar.Critical(msg, err)
		rollbar.Wait()
	}
	l.std.Fatalf("FATAL %s: %v", msg, err)
}

// Close flushes pending Rollbar items.
func (l *Logger) Close() {
	if l.rollbar {
		rollbar.Close()
	}
}
