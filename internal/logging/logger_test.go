package logging_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"backlot/internal/config"
	"backlot/internal/logging"
	"backlot/internal/services"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = dir
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Logging.Format = "json"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("session opened", slog.String(logging.FieldArtifactID, "art-1"))

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "backlot.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"msg":"session opened"`) {
		t.Fatalf("log file missing message: %s", text)
	}
	if !strings.Contains(text, `"artifact_id":"art-1"`) {
		t.Fatalf("log file missing attribute: %s", text)
	}
}

func TestConsoleFormatComponentPrefix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")
	logger, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("version activated",
		slog.String(logging.FieldComponent, "store"),
		slog.Int(logging.FieldVersion, 2),
	)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "INFO store: version activated") {
		t.Fatalf("unexpected console line: %s", line)
	}
	if !strings.Contains(line, "version=2") {
		t.Fatalf("missing attribute in console line: %s", line)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")
	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := services.WithArtifactID(context.Background(), "art-9")
	ctx = services.WithOperation(ctx, "regenerate")
	logging.WithContext(ctx, logger).Info("begin")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"artifact_id":"art-9"`) || !strings.Contains(text, `"operation":"regenerate"`) {
		t.Fatalf("context fields missing: %s", text)
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger == nil {
		t.Fatal("NewNop returned nil")
	}
	logger.Error("ignored")
}
