package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "command progress at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("loaded layout", "widgets", 12) },
			wantLog: true,
		},
		{
			name:    "cache chatter suppressed at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("cache write failed", "err", "disk full") },
			wantLog: false,
		},
		{
			name:    "cache chatter at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("resolved overlaps", "moved", 3) },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestNewLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Info("validated layout", "widgets", 7, "roots", 2)

	out := buf.String()
	for _, want := range []string{"validated layout", "widgets", "7", "roots", "2"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	if prog == nil {
		t.Fatal("newProgress() returned nil")
	}

	// Small delay to ensure measurable duration
	time.Sleep(10 * time.Millisecond)

	prog.done("Computed cells for desktop")

	if !strings.Contains(buf.String(), "Computed cells for desktop") {
		t.Error("progress.done() output should contain the completion message")
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), logger)

	retrieved := loggerFromContext(ctx)
	if retrieved != logger {
		t.Error("loggerFromContext should return the logger carried by the context")
	}

	retrieved.Info("optimizing cells")
	if !strings.Contains(buf.String(), "optimizing cells") {
		t.Error("carried logger should write to its buffer")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	// Without a logger in the context the default is returned, so library
	// code can always log without nil checks.
	logger := loggerFromContext(context.Background())
	if logger == nil {
		t.Error("loggerFromContext should return default logger when none set")
	}
}
