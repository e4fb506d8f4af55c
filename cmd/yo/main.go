package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/54yyyu/yo-cmd/internal/browse"
	"github.com/54yyyu/yo-cmd/internal/config"
	"github.com/54yyyu/yo-cmd/internal/history"
	"github.com/54yyyu/yo-cmd/internal/llm"
	_ "github.com/54yyyu/yo-cmd/internal/llm/gemini"
	_ "github.com/54yyyu/yo-cmd/internal/llm/openai"
	"github.com/54yyyu/yo-cmd/internal/logging"
	"github.com/54yyyu/yo-cmd/internal/prompt"
	"github.com/54yyyu/yo-cmd/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "yo [description...]",
	Short: "Turn a natural-language request into a terminal command",
	Long: `yo sends your request to a hosted language model and turns it
into a single terminal command, which you can then execute, edit, or
copy to the clipboard.`,
	Example: `  yo find all files larger than 100MB
  yo --model gemini-2.5-pro compress this folder
  yo --history`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case flagAPI:
			return runAPISetup()
		case flagHistory:
			return runHistory()
		case flagClearHistory:
			return runClearHistory()
		case len(args) == 0:
			return cmd.Help()
		default:
			return runGenerate(strings.Join(args, " "))
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version number of yo",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("yo", versionString())
	},
}

// Global flags
var (
	flagAPI          bool
	flagHistory      bool
	flagClearHistory bool
	flagModel        string
	flagDebug        bool
)

// versionString is injected by ldflags: -X 'main._version=vX.Y.Z'
var _version string

func versionString() string {
	if strings.TrimSpace(_version) == "" {
		return "v0.1.0"
	}
	return _version
}

func init() {
	rootCmd.Flags().BoolVar(&flagAPI, "api", false, "interactively set or update the API key")
	rootCmd.Flags().BoolVar(&flagHistory, "history", false, "print the command history")
	rootCmd.Flags().BoolVar(&flagClearHistory, "clear-history", false, "delete the command history")
	rootCmd.Flags().StringVar(&flagModel, "model", "", "override the configured model for this run")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug mode for verbose diagnostics")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logCfg := logging.DefaultConfig()
		if flagDebug || os.Getenv(config.EnvYoDebug) != "" {
			logCfg.Level = config.LogLevelDebug
			logCfg.Console = true
		}
		_ = logging.Init(logCfg)
	}

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runGenerate is the default path: generate, persist, display, menu.
func runGenerate(description string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if flagModel != "" {
		// One-off override, never persisted.
		cfg.Model = flagModel
	}

	presenter := ui.NewPresenter()
	errorHandler := ui.NewErrorHandler(flagDebug)

	if !cfg.HasAPIKey() {
		pterm.Warning.Println("No API key configured.")
		ok, err := presenter.ConfirmLiteralY("Set one now?")
		if err != nil || !ok {
			pterm.Error.Println("An API key is required. Run 'yo --api' to configure one.")
			os.Exit(1)
		}
		if err := setupAPIKey(cfg, presenter, errorHandler); err != nil {
			os.Exit(1)
		}
	}

	provider, err := getProvider(cfg)
	if err != nil {
		errorHandler.HandleError(err)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := llm.NewGenerator(provider, promptManager())

	presenter.ShowLoading("Translating")
	result, err := gen.Generate(ctx, description)
	presenter.StopLoading()

	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		if errors.Is(err, llm.ErrNoResult) {
			pterm.Warning.Println("Could not translate that request into a command.")
			return nil
		}
		errorHandler.HandleError(err)
		return nil
	}

	if store, err := history.NewDefaultStore(); err == nil {
		entry := history.Entry{
			Timestamp:   time.Now(),
			Description: description,
			Command:     result.Command,
			Explanation: result.Explanation,
		}
		if err := store.Append(entry); err != nil {
			logging.Warnf("failed to record history: %v", err)
		}
	}

	if browse.NeedsPath(result.Command) {
		browser := browse.NewBrowser(os.Stdin, os.Stdout)
		pterm.Info.Println("The command needs a path. Pick one:")
		path, ok, err := browser.Run(".")
		if err != nil {
			pterm.Error.Printfln("Directory browser failed: %v", err)
		} else if ok {
			result.Command = browse.Apply(result.Command, path)
		}
	}

	presenter.ShowSuggestion(ui.Suggestion{
		Title:       "Generated Command",
		Description: description,
		Command:     result.Command,
		Explanation: result.Explanation,
	})

	action, err := presenter.PromptAction()
	if err != nil {
		return nil
	}
	switch action {
	case ui.ActionExecute:
		executeCommand(result.Command)
	case ui.ActionEdit:
		edited, err := presenter.PromptEdit(result.Command)
		if err != nil {
			return nil
		}
		executeCommand(edited)
	case ui.ActionCopy:
		if err := ui.CopyToClipboard(result.Command); err != nil {
			pterm.Error.Printfln("%v", err)
		} else {
			pterm.Success.Println("Command copied to clipboard.")
		}
	case ui.ActionCancel:
		// Cancel is silent.
	}
	return nil
}

func runHistory() error {
	store, err := history.NewDefaultStore()
	if err != nil {
		return err
	}
	entries, err := store.Entries()
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(entries) == 0 {
		pterm.Info.Println("No history found.")
		return nil
	}

	for _, e := range entries {
		pterm.Printf("%s  %s\n", pterm.Gray(e.Timestamp.Format("2006-01-02 15:04:05")), e.Description)
		pterm.Printf("    %s\n", pterm.LightGreen(e.Command))
		if e.Explanation != "" {
			pterm.Printf("    %s\n", pterm.Gray("# "+e.Explanation))
		}
	}
	return nil
}

func runClearHistory() error {
	store, err := history.NewDefaultStore()
	if err != nil {
		return err
	}

	presenter := ui.NewPresenter()
	confirmed, err := presenter.ConfirmLiteralY("Clear all history?")
	if err != nil {
		return err
	}
	if !confirmed {
		pterm.Info.Println("Cancelled.")
		return nil
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	pterm.Success.Println("History cleared.")
	return nil
}

func getProvider(cfg *config.Config) (llm.Provider, error) {
	return llm.ProviderForModel(cfg)
}

// promptManager loads prompts.json from the config directory when
// present, falling back to the built-in templates.
func promptManager() *prompt.Manager {
	if dir, err := config.ConfigDir(); err == nil {
		if pm, err := prompt.NewManager(filepath.Join(dir, "prompts.json")); err == nil {
			return pm
		}
	}
	return prompt.NewDefaultManager()
}
