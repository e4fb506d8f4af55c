package main

import (
	"os"
	"os/exec"

	"github.com/pterm/pterm"

	"github.com/54yyyu/yo-cmd/internal/logging"
)

func executeCommand(command string) {
	pterm.Info.Println("Executing:", command)
	logging.Infof("executing command: %s", command)
	cmd := exec.Command("sh", "-c", command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// Do not pass stdin to avoid residual input being interpreted as new commands
	if err := cmd.Run(); err != nil {
		pterm.Error.Printfln("Command exited with error: %v", err)
	}
}
