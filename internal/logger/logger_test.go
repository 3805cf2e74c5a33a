package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"sync"
	"testing"
)

func TestZeroLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	tests := []struct {
		name      string
		fn        func()
		wantLevel string
		wantMsg   string
	}{
		{
			name:      "Info",
			fn:        func() { l.Info("test message") },
			wantLevel: "info",
			wantMsg:   "test message",
		},
		{
			name:      "Warn",
			fn:        func() { l.Warn("warning message") },
			wantLevel: "warn",
			wantMsg:   "warning message",
		},
		{
			name:      "Error",
			fn:        func() { l.Error("error message") },
			wantLevel: "error",
			wantMsg:   "error message",
		},
		{
			name:      "Debug",
			fn:        func() { l.Debug("debug message") },
			wantLevel: "debug",
			wantMsg:   "debug message",
		},
		{
			name:      "Info with args",
			fn:        func() { l.Info("test %s=%d", "count", 42) },
			wantLevel: "info",
			wantMsg:   "test count=42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn()

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("output %q is not JSON: %v", buf.String(), err)
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("got level %v, want %q", entry["level"], tt.wantLevel)
			}
			if entry["message"] != tt.wantMsg {
				t.Errorf("got message %v, want %q", entry["message"], tt.wantMsg)
			}
			if _, ok := entry["time"]; !ok {
				t.Error("missing time field")
			}
		})
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	if err := l.SetLevel("warn"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	l.Info("dropped")
	l.Debug("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}
	l.Warn("kept")
	if buf.Len() == 0 {
		t.Error("expected warn output")
	}

	if err := l.SetLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestDefault(t *testing.T) {
	if Default == nil {
		t.Error("Default logger should not be nil")
	}

	Default.Info("test")
}

func TestSetLevelWhileLogging(t *testing.T) {
	l := New(io.Discard)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Info("tick %d", j)
			}
		}()
		go func() {
			defer wg.Done()
			for _, level := range []string{"debug", "warn", "info"} {
				if err := l.SetLevel(level); err != nil {
					t.Errorf("SetLevel(%q): %v", level, err)
				}
			}
		}()
	}
	wg.Wait()
}
