package logger

import (
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		logFile string
	}{
		{name: "debug level, no file", level: "debug"},
		{name: "info level, no file", level: "info"},
		{name: "warn level, no file", level: "warn"},
		{name: "error level, no file", level: "error"},
		{name: "invalid level defaults to info", level: "invalid"},
		{name: "with log file", level: "info", logFile: filepath.Join(t.TempDir(), "test.log")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Log = nil

			if err := Init(tt.level, tt.logFile); err != nil {
				t.Fatalf("Init() error = %v", err)
			}
			if Log == nil {
				t.Error("Init() succeeded but Log is nil")
			}
		})
	}
}

func TestSync_NilLogger(t *testing.T) {
	Log = nil
	if err := Sync(); err != nil {
		t.Errorf("Sync() with nil logger error = %v", err)
	}
}
