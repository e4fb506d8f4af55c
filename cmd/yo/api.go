package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/term"

	"github.com/54yyyu/yo-cmd/internal/config"
	"github.com/54yyyu/yo-cmd/internal/logging"
	"github.com/54yyyu/yo-cmd/internal/ui"
)

const verifyTimeout = 30 * time.Second

// runAPISetup handles the --api flag.
func runAPISetup() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	presenter := ui.NewPresenter()
	errorHandler := ui.NewErrorHandler(flagDebug)
	return setupAPIKey(cfg, presenter, errorHandler)
}

// setupAPIKey prompts for a key, verifies it against the provider,
// and persists it on success.
func setupAPIKey(cfg *config.Config, presenter *ui.Presenter, errorHandler *ui.ErrorHandler) error {
	key, err := readAPIKey(presenter, cfg.APIKey)
	if err != nil {
		return err
	}
	if key == "" {
		pterm.Warning.Println("No key entered, configuration unchanged.")
		return fmt.Errorf("API key setup cancelled")
	}

	candidate := *cfg
	candidate.APIKey = key

	provider, err := getProvider(&candidate)
	if err != nil {
		errorHandler.HandleError(err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	presenter.ShowLoading("Verifying API key")
	models, err := provider.VerifyConnection(ctx)
	presenter.StopLoading()
	if err != nil {
		errorHandler.HandleError(err)
		return err
	}

	// Persist against the stored config so a --model override for this
	// run never reaches the file.
	if err := config.SaveAPIKey(key); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	cfg.APIKey = key

	pterm.Success.Println("API key verified and saved.")
	if len(models) > 0 {
		logging.Debugf("provider reported %d available models", len(models))
		pterm.Info.Printfln("Available models include: %s", strings.Join(preview(models, 5), ", "))
	}
	return nil
}

// readAPIKey uses a masked prompt on a terminal and a plain line read
// when stdin is piped.
func readAPIKey(presenter *ui.Presenter, current string) (string, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return presenter.PromptAPIKey(current)
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func preview(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
