package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.ErrorLevel},
		{"loud", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNew_Quiet(t *testing.T) {
	logger, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("default logger should drop info messages")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("default logger should keep errors")
	}
}

func TestNew_Verbose(t *testing.T) {
	logger, err := New(Options{Verbose: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose logger should keep debug messages")
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webtrail.log")

	logger, err := New(Options{Level: "info", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("scan finished", zap.String("user", "alice"))
	logger.Debug("not written")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `"msg":"scan finished"`) || !strings.Contains(content, `"user":"alice"`) {
		t.Errorf("log file = %s, want the info entry as JSON", content)
	}
	if strings.Contains(content, "not written") {
		t.Error("debug entry written at info level")
	}
}

func TestNewRotator_Defaults(t *testing.T) {
	r := newRotator(Options{File: "x.log"})
	if r.MaxSize != 100 || r.MaxBackups != 3 || r.MaxAge != 30 || !r.Compress {
		t.Errorf("newRotator() = %+v, want 100/3/30 compressed", r)
	}

	r = newRotator(Options{File: "x.log", MaxSizeMB: 5, MaxBackups: 1, MaxAgeDays: 2})
	if r.MaxSize != 5 || r.MaxBackups != 1 || r.MaxAge != 2 {
		t.Errorf("newRotator() = %+v, want 5/1/2", r)
	}
}
