package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetConfigPath(t *testing.T) {
	t.Setenv(EnvYoConfigDir, "")

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("Failed to get config path: %v", err)
	}

	if !strings.HasSuffix(path, filepath.Join(DefaultConfigDir, DefaultConfigFileName)) {
		t.Errorf("Config path should end with %s/%s, got %s", DefaultConfigDir, DefaultConfigFileName, path)
	}
}

func TestConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvYoConfigDir, dir)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir failed: %v", err)
	}
	if got != dir {
		t.Errorf("Expected config dir %s, got %s", dir, got)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(EnvYoConfigDir, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIKey != "" {
		t.Errorf("Default API key should be empty, got %q", cfg.APIKey)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Expected default model %s, got %s", DefaultModel, cfg.Model)
	}
	if cfg.HasAPIKey() {
		t.Error("HasAPIKey should be false for default config")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv(EnvYoConfigDir, filepath.Join(t.TempDir(), "nested", "dir"))

	cfg := &Config{APIKey: "test-key-123", Model: "gemini-2.5-pro"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.APIKey != cfg.APIKey {
		t.Errorf("Expected API key %q, got %q", cfg.APIKey, loaded.APIKey)
	}
	if loaded.Model != cfg.Model {
		t.Errorf("Expected model %q, got %q", cfg.Model, loaded.Model)
	}
}

func TestSaveAPIKeyKeepsStoredModel(t *testing.T) {
	t.Setenv(EnvYoConfigDir, t.TempDir())

	cfg := &Config{Model: "gemini-2.5-pro"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// A runtime model override must not reach the file when only the
	// key is being persisted.
	cfg.Model = "gpt-4o"
	if err := SaveAPIKey("fresh-key"); err != nil {
		t.Fatalf("SaveAPIKey failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.APIKey != "fresh-key" {
		t.Errorf("Expected API key %q, got %q", "fresh-key", loaded.APIKey)
	}
	if loaded.Model != "gemini-2.5-pro" {
		t.Errorf("Stored model should survive the key update, got %q", loaded.Model)
	}
}

func TestSaveAPIKeyFirstRunUsesDefaultModel(t *testing.T) {
	t.Setenv(EnvYoConfigDir, t.TempDir())

	if err := SaveAPIKey("first-key"); err != nil {
		t.Fatalf("SaveAPIKey failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.APIKey != "first-key" {
		t.Errorf("Expected API key %q, got %q", "first-key", loaded.APIKey)
	}
	if loaded.Model != DefaultModel {
		t.Errorf("First run should persist the default model, got %q", loaded.Model)
	}
}

func TestLoadMalformedFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvYoConfigDir, dir)

	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to write malformed config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load should not fail on malformed config: %v", err)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Malformed config should yield default model, got %s", cfg.Model)
	}
	if cfg.APIKey != "" {
		t.Errorf("Malformed config should yield empty API key, got %q", cfg.APIKey)
	}
}

func TestLoadFillsMissingModel(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvYoConfigDir, dir)

	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFileName), []byte(`{"api_key":"k"}`), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Expected default model %s when omitted, got %s", DefaultModel, cfg.Model)
	}
	if cfg.APIKey != "k" {
		t.Errorf("Expected API key to survive, got %q", cfg.APIKey)
	}
}
