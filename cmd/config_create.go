package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file from the same example template used by "config edit".

The template points source.inputs at the published PONTO.xlsx and lists the
default header aliases. If a configuration file is already in use, no new file
is written.`,
	Example: `
  # Create default config at $HOME/.ponto.yaml
  ponto config create

  # Create a project local config
  ponto --configFile ./.ponto.yaml config create
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig()
	},
}

func saveDefaultConfig() error {
	path, err := configFilePath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	created, err := writeConfigTemplate(path)
	if err != nil {
		return err
	}
	if !created {
		fmt.Printf("Config file already exists at: %s\n", path)
		return nil
	}

	fmt.Printf("New config file created at: %s\n", path)
	return nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)
}
