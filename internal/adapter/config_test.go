package adapter

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigFrom_Defaults(t *testing.T) {
	cfg, err := LoadConfigFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfigFrom() failed: %v", err)
	}

	if cfg.Catalog.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("Catalog.BaseURL = %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.Timeout != 30*time.Second {
		t.Errorf("Catalog.Timeout = %v, want 30s", cfg.Catalog.Timeout)
	}
	if cfg.Assistant.ThinkingBudget != 32768 {
		t.Errorf("Assistant.ThinkingBudget = %d, want 32768", cfg.Assistant.ThinkingBudget)
	}
	if cfg.UI.DefaultCategory != "all" {
		t.Errorf("UI.DefaultCategory = %q, want all", cfg.UI.DefaultCategory)
	}
}

func TestLoadConfigFrom_File(t *testing.T) {
	dir := t.TempDir()
	content := `catalog:
  api_key: "file-key"
  timeout: 5s
assistant:
  search_model: "gemini-custom"
ui:
  default_category: anime
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfigFrom(dir)
	if err != nil {
		t.Fatalf("LoadConfigFrom() failed: %v", err)
	}

	if cfg.Catalog.APIKey != "file-key" {
		t.Errorf("Catalog.APIKey = %q, want file-key", cfg.Catalog.APIKey)
	}
	if cfg.Catalog.Timeout != 5*time.Second {
		t.Errorf("Catalog.Timeout = %v, want 5s", cfg.Catalog.Timeout)
	}
	if cfg.Assistant.SearchModel != "gemini-custom" {
		t.Errorf("Assistant.SearchModel = %q", cfg.Assistant.SearchModel)
	}
	// Untouched keys keep defaults
	if cfg.Assistant.LiteModel != "gemini-flash-lite-latest" {
		t.Errorf("Assistant.LiteModel = %q", cfg.Assistant.LiteModel)
	}
	if cfg.UI.DefaultCategory != "anime" {
		t.Errorf("UI.DefaultCategory = %q, want anime", cfg.UI.DefaultCategory)
	}
}

func TestLoadConfigFrom_EnvOverride(t *testing.T) {
	t.Setenv("STREAMVERSE_ASSISTANT_API_KEY", "env-key")

	cfg, err := LoadConfigFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfigFrom() failed: %v", err)
	}
	if cfg.Assistant.APIKey != "env-key" {
		t.Errorf("Assistant.APIKey = %q, want env-key", cfg.Assistant.APIKey)
	}
}

func TestLoadConfigFrom_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("catalog: [unclosed"), 0644)

	if _, err := LoadConfigFrom(dir); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Catalog.APIKey = "saved-key"
	cfg.Logging.Level = "DEBUG"

	if err := SaveConfig(cfg, dir); err != nil {
		t.Fatalf("SaveConfig() failed: %v", err)
	}

	loaded, err := LoadConfigFrom(dir)
	if err != nil {
		t.Fatalf("LoadConfigFrom() failed: %v", err)
	}
	if loaded.Catalog.APIKey != "saved-key" || loaded.Logging.Level != "DEBUG" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if loaded.Catalog.Timeout != cfg.Catalog.Timeout {
		t.Errorf("Catalog.Timeout = %v, want %v", loaded.Catalog.Timeout, cfg.Catalog.Timeout)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"Error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "WARN")

	logger.Info("hidden")
	logger.Warn("shown", "category", "anime")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record should be filtered at WARN")
	}
	if !strings.Contains(out, `"category":"anime"`) {
		t.Errorf("expected JSON warn record, got %q", out)
	}
}

func TestSetupLogger_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "streamverse.log")
	logger, closer, err := SetupLogger(LoggingConfig{File: path, Level: "INFO"})
	if err != nil {
		t.Fatalf("SetupLogger() failed: %v", err)
	}
	logger.Info("started")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if !strings.Contains(string(data), "started") {
		t.Errorf("log file = %q, want record", data)
	}
}
