package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/54yyyu/yo-cmd/internal/prompt"
)

// ErrNoResult indicates the model could not translate the request. The
// caller has nothing to persist, display, or run.
var ErrNoResult = errors.New("no command could be generated")

// PlaceholderExplanation is used when the response carries no annotation.
const PlaceholderExplanation = "No explanation provided"

// errorToken marks a refusal in the response text.
const errorToken = "ERROR:"

// Generator turns a free-text description into a Result by rendering the
// fixed prompt template, calling the provider, and parsing the
// `command # explanation` response shape. It does not persist anything.
type Generator struct {
	provider Provider
	pm       *prompt.Manager
}

// NewGenerator creates a Generator for the given provider.
func NewGenerator(provider Provider, pm *prompt.Manager) *Generator {
	return &Generator{provider: provider, pm: pm}
}

// Generate produces a command for the description. Returns ErrNoResult
// when the response is empty or a refusal.
func (g *Generator) Generate(ctx context.Context, description string) (*Result, error) {
	promptText, err := g.pm.Render("generate_command", struct{ Description string }{description})
	if err != nil {
		return nil, err
	}

	response, err := g.provider.GenerateCommand(ctx, promptText)
	if err != nil {
		return nil, err
	}

	return ParseResponse(response)
}

// ParseResponse parses the `<command> # <explanation>` response shape.
// The split is on the first '#'; when absent, the whole text becomes the
// command with a placeholder explanation. Empty text and text starting
// with the ERROR: token yield ErrNoResult.
func ParseResponse(text string) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoResult
	}
	if strings.HasPrefix(text, errorToken) {
		return nil, ErrNoResult
	}

	if idx := strings.Index(text, "#"); idx != -1 {
		command := strings.TrimSpace(text[:idx])
		explanation := strings.TrimSpace(text[idx+1:])
		if command == "" {
			return nil, ErrNoResult
		}
		if explanation == "" {
			explanation = PlaceholderExplanation
		}
		return &Result{Command: command, Explanation: explanation}, nil
	}

	return &Result{Command: text, Explanation: PlaceholderExplanation}, nil
}
