package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/54yyyu/yo-cmd/internal/config"
)

// Result is a parsed generation result: a shell command plus a short
// human-readable explanation.
type Result struct {
	Command     string `json:"command"`
	Explanation string `json:"explanation"`
}

// Provider represents a hosted text-generation API.
type Provider interface {
	// GenerateCommand sends the rendered prompt and returns the raw
	// response text.
	GenerateCommand(ctx context.Context, promptText string) (string, error)

	// VerifyConnection checks credentials and returns available models.
	VerifyConnection(ctx context.Context) ([]string, error)
}

// ProviderFactory is a function that creates a new Provider.
type ProviderFactory func(*config.Config) (Provider, error)

var providerFactories = make(map[string]ProviderFactory)

// RegisterProvider makes a provider available by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providerFactories[name] = factory
}

// GetProvider creates a new provider by name.
func GetProvider(name string, cfg *config.Config) (Provider, error) {
	factory, ok := providerFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
	return factory(cfg)
}

// ProviderNameForModel resolves which registered provider serves a model.
// The config carries only a model name, so routing is by naming
// convention: OpenAI model families go to the openai backend, everything
// else to gemini.
func ProviderNameForModel(model string) string {
	m := strings.ToLower(strings.TrimSpace(model))
	if strings.HasPrefix(m, "gpt-") || strings.HasPrefix(m, "o1") || strings.HasPrefix(m, "o3") || strings.HasPrefix(m, "o4") {
		return "openai"
	}
	return "gemini"
}

// ProviderForModel creates the provider that serves the configured model.
func ProviderForModel(cfg *config.Config) (Provider, error) {
	return GetProvider(ProviderNameForModel(cfg.Model), cfg)
}
