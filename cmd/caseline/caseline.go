// Package caselinecmder assembles the root caseline command.
package caselinecmder

import (
	"github.com/spf13/cobra"

	askcmder "github.com/caselinehq/caseline/cmd/caseline/ask"
	configcmder "github.com/caselinehq/caseline/cmd/caseline/config"
	taskscmder "github.com/caselinehq/caseline/cmd/caseline/tasks"
)

const caselineLongDesc string = `Caseline is the command-line client for the Caseline case-management platform.

Common workflows:
  caseline ask            Ask the AI assistant a question (streamed)
  caseline tasks preview  Preview due dates for a recurring task
  caseline config         Manage persistent configuration`

const caselineShortDesc string = "Caseline - case-management CLI"

func NewCaselineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "caseline",
		Short: caselineShortDesc,
		Long:  caselineLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .caseline/ config directory")

	// Add subcommands
	cmd.AddCommand(askcmder.NewAskCmd())
	cmd.AddCommand(taskscmder.NewTasksCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())

	return cmd
}
