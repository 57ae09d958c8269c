// Package configcmder provides the config command for managing persistent
// caseline configuration stored in the .caseline/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent caseline configuration.

Configuration is stored as config.toml in the .caseline/ directory and
provides default values for command flags. CLI flags always take precedence
over config file values.

Keys use dotted notation matching the TOML section structure:
  client.api_target, client.csrf_header, client.csrf_token,
  assistant.path

Use subcommands to get, set, or list configuration values:
  caseline config set <key> <value>    Set a configuration value
  caseline config get <key>            Get a configuration value
  caseline config list                 List all configuration values

Examples:
  caseline config set client.api_target https://app.example.com
  caseline config get assistant.path
  caseline config list`

const configShortDesc string = "Manage persistent caseline configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
