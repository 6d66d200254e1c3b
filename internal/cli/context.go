// Package cli provides the command-line interface for the results application.
package cli

import (
	"github.com/law-makers/results/internal/app"
	"github.com/spf13/cobra"
)

// SetApp stores the Application for the running command
func SetApp(cmd *cobra.Command, a *app.Application) {
	if cmd == nil {
		return
	}
	globalApp = a
}

// GetAppFromCmd returns the Application initialized for cmd, if any
func GetAppFromCmd(cmd *cobra.Command) *app.Application {
	return globalApp
}

// Commands run one at a time per process, so a single reference suffices.
var globalApp *app.Application
