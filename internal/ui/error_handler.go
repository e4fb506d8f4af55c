package ui

import (
	"errors"

	"github.com/pterm/pterm"

	"github.com/54yyyu/yo-cmd/internal/llm"
)

// ErrorHandler renders provider and configuration failures with a
// targeted hint where one exists.
type ErrorHandler struct {
	debugMode bool
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(debugMode bool) *ErrorHandler {
	return &ErrorHandler{debugMode: debugMode}
}

// HandleError displays an error with suggestions appropriate to its
// classification. Key, permission, and authentication failures get a
// pointed hint; everything else is printed verbatim.
func (eh *ErrorHandler) HandleError(err error) {
	if err == nil {
		return
	}

	title, suggestions := classify(err)

	pterm.Println()
	pterm.NewStyle(pterm.FgRed, pterm.Bold).Println(title)
	pterm.NewStyle(pterm.FgLightRed).Println(err.Error())

	if len(suggestions) > 0 {
		pterm.Println()
		pterm.NewStyle(pterm.FgYellow, pterm.Bold).Println("Suggestions:")
		for i, s := range suggestions {
			pterm.Printf("  %d. %s\n", i+1, s)
		}
	}

	if eh.debugMode {
		var apiErr *llm.APIError
		if errors.As(err, &apiErr) && apiErr.Cause != nil {
			pterm.Println()
			pterm.NewStyle(pterm.FgGray).Println("Cause: " + apiErr.Cause.Error())
		}
	}
	pterm.Println()
}

func classify(err error) (string, []string) {
	var apiErr *llm.APIError
	if !errors.As(err, &apiErr) {
		apiErr = llm.Classify(err)
	}

	switch apiErr.Type {
	case llm.AuthError:
		return "Authentication Error", []string{
			"Check that your API key is correctly configured",
			"Run 'yo --api' to set or update the key",
			"Verify the key has not expired or been revoked",
		}
	case llm.ConfigError:
		return "Configuration Error", []string{
			"Run 'yo --api' to configure an API key",
		}
	case llm.QuotaExceededError:
		return "Rate Limit Exceeded", []string{
			"Wait a few minutes before trying again",
			"Check your plan's usage limits",
		}
	case llm.NetworkError, llm.TimeoutError:
		return "Network Error", []string{
			"Check your internet connection",
			"Try again in a moment",
		}
	case llm.ModelNotFoundError:
		return "Model Not Found", []string{
			"Check the model name in ~/.config/yo/config.json",
			"Use --model to try a different model",
		}
	}
	return "Error", nil
}
