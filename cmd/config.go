package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ponto configuration file values.",
	Long: `Create, edit, display, and delete the ponto configuration file.

The configuration stores the input sources and the analysis settings:
- source.inputs / source.format / source.timeout
- analysis.overtime_tolerance_minutes / analysis.shift_tolerance_minutes / analysis.default_period
- columns.<field>[] header aliases
- server.port / server.allowed_origins
- log.level / log.format`,
	Example: `
  # Create default config in $HOME/.ponto.yaml
  ponto config create

  # Show active config and source file
  ponto config show

  # Open active config in editor (creates example if missing)
  ponto config edit

  # Delete active config file
  ponto config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
