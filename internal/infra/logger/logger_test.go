package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

func TestConfigure_ProductionUsesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	closer := Configure(l, &config.AppConfig{LogLevel: "warn", Environment: "production"}, &buf)
	defer closer.Close()

	l.Info("hidden")
	l.WithField("cycle_id", "abc").Warn("shown")

	if l.GetLevel() != logrus.WarnLevel {
		t.Errorf("level = %s, want warning", l.GetLevel())
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one log line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["msg"] != "shown" || entry["cycle_id"] != "abc" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestConfigure_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	_ = Configure(l, &config.AppConfig{LogLevel: "chatty", Environment: "development"}, &buf)

	if l.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %s, want info", l.GetLevel())
	}
	if _, ok := l.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("expected text formatter in development, got %T", l.Formatter)
	}
}

func TestConfigure_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.log")
	var console bytes.Buffer
	l := logrus.New()
	closer := Configure(l, &config.AppConfig{LogLevel: "debug", LogFile: path}, &console)

	l.Debug("both sinks")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "both sinks") {
		t.Errorf("log file missing entry: %q", data)
	}
	if !strings.Contains(console.String(), "both sinks") {
		t.Errorf("console missing entry: %q", console.String())
	}
}
