package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"
)

// Suggestion represents the data to be presented to the user. It
// decouples the UI from the generator's result format.
type Suggestion struct {
	Title       string
	Description string
	Command     string
	Explanation string
}

// Action is the user's choice from the post-generation menu.
type Action int

const (
	ActionExecute Action = iota
	ActionEdit
	ActionCopy
	ActionCancel
)

// ParseAction maps raw menu input to an Action. The accepted set is
// deliberately literal since execute runs a shell command: empty input
// and "y" execute, "e" edits, "c" copies, anything else cancels.
func ParseAction(input string) Action {
	switch strings.TrimSpace(input) {
	case "", "y":
		return ActionExecute
	case "e":
		return ActionEdit
	case "c":
		return ActionCopy
	default:
		return ActionCancel
	}
}

// Presenter handles the standardized display of suggestions and user
// interaction.
type Presenter struct {
	in          *bufio.Reader
	spinner     *pterm.SpinnerPrinter
	mu          sync.Mutex
	timerCancel context.CancelFunc
	timerWG     sync.WaitGroup
}

// NewPresenter creates a new Presenter reading from stdin.
func NewPresenter() *Presenter {
	return &Presenter{in: bufio.NewReader(os.Stdin)}
}

// ShowSuggestion renders the generated command and its explanation.
func (p *Presenter) ShowSuggestion(s Suggestion) {
	pterm.DefaultHeader.Println(s.Title)

	if s.Explanation != "" {
		pterm.Println(pterm.Cyan("Explanation:"))
		pterm.Println(s.Explanation)
		pterm.Println()
	}

	pterm.Println(pterm.Green("Command:"))
	pterm.Println(pterm.LightGreen("  " + s.Command))
	pterm.Println()
}

// PromptAction displays the menu and reads one choice.
func (p *Presenter) PromptAction() (Action, error) {
	pterm.Println("Options:")
	pterm.Println(pterm.LightWhite("  [Enter/y] - Execute the command"))
	pterm.Println(pterm.LightWhite("  [e]       - Edit before executing"))
	pterm.Println(pterm.LightWhite("  [c]       - Copy to clipboard"))
	pterm.Println(pterm.LightWhite("  [other]   - Cancel"))
	pterm.Print("Select an option: ")

	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return ActionCancel, nil
		}
		return ActionCancel, fmt.Errorf("error reading user input: %w", err)
	}
	return ParseAction(line), nil
}

// PromptEdit opens a line editor pre-filled with the command. An empty
// edit falls back to the original.
func (p *Presenter) PromptEdit(command string) (string, error) {
	edited, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(command).
		Show("Edit command")
	if err != nil {
		return "", err
	}
	edited = strings.TrimSpace(edited)
	if edited == "" {
		return command, nil
	}
	return edited, nil
}

// PromptAPIKey reads an API key with masked input.
func (p *Presenter) PromptAPIKey(current string) (string, error) {
	key, err := pterm.DefaultInteractiveTextInput.
		WithMask("*").
		WithDefaultValue(current).
		Show("Enter API key")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}

// ConfirmLiteralY reads one line and returns true only for the literal
// answer "y". Anything else cancels.
func (p *Presenter) ConfirmLiteralY(message string) (bool, error) {
	pterm.Printf("%s [y/N]: ", message)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	return strings.TrimSpace(line) == "y", nil
}

// ShowLoading displays a spinner with a message and an elapsed-seconds
// counter.
func (p *Presenter) ShowLoading(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopTimerLocked()
	if p.spinner != nil {
		_ = p.spinner.Stop()
		p.spinner = nil
	}

	spinner := pterm.DefaultSpinner.
		WithShowTimer(false).
		WithRemoveWhenDone(true)
	sp, err := spinner.Start(message + "...")
	if err != nil {
		return
	}
	p.spinner = sp

	ctx, cancel := context.WithCancel(context.Background())
	p.timerCancel = cancel
	start := time.Now()

	p.timerWG.Add(1)
	go func() {
		defer p.timerWG.Done()
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sp.UpdateText(fmt.Sprintf("%s... (%ds)", message, int(time.Since(start).Seconds())))
			}
		}
	}()
}

// StopLoading stops the spinner and clears its line.
func (p *Presenter) StopLoading() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopTimerLocked()
	if p.spinner != nil {
		_ = p.spinner.Stop()
		p.spinner = nil
	}
}

func (p *Presenter) stopTimerLocked() {
	if p.timerCancel != nil {
		p.timerCancel()
		p.timerWG.Wait()
		p.timerCancel = nil
	}
}
