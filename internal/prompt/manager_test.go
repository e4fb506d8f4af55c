package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultManagerHasGenerateCommand(t *testing.T) {
	pm := NewDefaultManager()

	body, err := pm.GetPrompt("generate_command")
	if err != nil {
		t.Fatalf("GetPrompt failed: %v", err)
	}
	if !strings.Contains(body, "{{.Description}}") {
		t.Error("generate_command template should reference .Description")
	}
}

func TestGetPromptUnknownKey(t *testing.T) {
	pm := NewDefaultManager()
	if _, err := pm.GetPrompt("nope"); err == nil {
		t.Error("Expected error for unknown prompt key")
	}
}

func TestRender(t *testing.T) {
	pm := NewDefaultManager()

	out, err := pm.Render("generate_command", struct{ Description string }{"list all files"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "list all files") {
		t.Errorf("Rendered prompt should contain the description, got: %s", out)
	}
	if strings.Contains(out, "{{") {
		t.Errorf("Rendered prompt still contains template markers: %s", out)
	}
}

func TestNewManagerFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.json")
	if err := os.WriteFile(path, []byte(`{"generate_command":"custom {{.Description}}"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	pm, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	out, err := pm.Render("generate_command", struct{ Description string }{"x"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if out != "custom x" {
		t.Errorf("Expected 'custom x', got %q", out)
	}
}
