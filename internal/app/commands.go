package app

import (
	"strings"

	"github.com/bethropolis/gotags/internal/commands"
	"github.com/bethropolis/gotags/internal/logger"
)

// registerAppCommands registers the built-in commands.
func registerAppCommands(a *App) {
	api := a.editorAPI

	writeCmd := func(args []string) error {
		if len(args) > 0 {
			return a.SaveAs(strings.Join(args, " "))
		}
		return api.SaveBuffer()
	}
	commandsCmd := func([]string) error {
		api.SetStatusMessage("Commands: %s", strings.Join(a.commands.Names(), ", "))
		return nil
	}

	for name, fn := range map[string]commands.Func{
		"write":    writeCmd,
		"w":        writeCmd,
		"commands": commandsCmd,
	} {
		if err := api.RegisterCommand(name, fn); err != nil {
			logger.Warnf("failed to register '%s' command: %v", name, err)
		}
	}
}
