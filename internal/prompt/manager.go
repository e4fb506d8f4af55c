package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/template"
)

// Manager handles loading and accessing prompt templates.
type Manager struct {
	prompts map[string]string
}

// NewManager creates a prompt manager from a JSON file mapping template
// keys to template bodies.
func NewManager(path string) (*Manager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, err
	}

	return &Manager{prompts: prompts}, nil
}

// NewDefaultManager creates a prompt manager with the built-in templates.
func NewDefaultManager() *Manager {
	return &Manager{prompts: map[string]string{
		"generate_command": "You are a terminal command generator. Convert the user's request into a single shell command.\n" +
			"Respond with exactly one line of the form: <command> # <explanation>\n" +
			"The explanation is a short human-readable annotation. No markdown, no extra lines.\n" +
			"If a file or directory path is needed but not given, use the literal placeholder <PATH>.\n" +
			"If the request cannot be turned into a command, respond with: ERROR: <reason>\n" +
			"Request: {{.Description}}",
	}}
}

// GetPrompt returns a raw template body by key.
func (m *Manager) GetPrompt(key string) (string, error) {
	if p, ok := m.prompts[key]; ok {
		return p, nil
	}
	return "", fmt.Errorf("prompt with key '%s' not found", key)
}

// Render executes the named template with the given data.
func (m *Manager) Render(key string, data any) (string, error) {
	body, err := m.GetPrompt(key)
	if err != nil {
		return "", err
	}
	t, err := template.New(key).Parse(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %q: %w", key, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %q: %w", key, err)
	}
	return buf.String(), nil
}
