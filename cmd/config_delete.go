package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDeleteYes bool

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by ponto.

If no configuration file is active, the command returns an error. Unless --yes
is given, typing exactly "Y" is required.`,
	Example: `
  # Delete active config
  ponto config delete

  # Delete config at a custom path without prompting
  ponto --configFile ./custom-ponto.yaml config delete --yes
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.ConfigFileUsed()
		if path == "" {
			return fmt.Errorf("no configuration file found")
		}

		if !configDeleteYes {
			confirmed, err := confirmPrompt(promptInput, promptOutput, fmt.Sprintf("Delete configuration file %q?", path))
			if err != nil {
				return err
			}
			if !confirmed {
				return fmt.Errorf("config delete aborted: confirmation was not 'Y'")
			}
		}

		if err := os.Remove(path); err != nil {
			return fmt.Errorf("error deleting configuration file: %w", err)
		}

		fmt.Printf("Configuration file successfully deleted: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)

	configDeleteCmd.Flags().BoolVarP(&configDeleteYes, "yes", "y", false, "Skip the confirmation prompt")
}
