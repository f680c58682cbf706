/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ponto/config"
)

const envPrefix = "PONTO"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ponto",
	Short: "Find overtime and out-of-shift punches in employee timesheet spreadsheets.",
	Long: `
**********************************************
*                 PONTO                      *
**********************************************

This CLI loads timesheet spreadsheets (Excel, CSV) from local files or URLs,
compares each clock-in/clock-out against the scheduled shift, and ranks
employees by how often they work overtime or start outside their shift.

The last loaded input is cached in a local SQLite file, so read commands work
offline until the next import.

Supported input formats:
- Excel: .xlsx, .xlsm, .xls
- CSV: .csv (comma, semicolon or tab separated)
`,
	Example: `
  # Create configuration file
  ponto config create

  # Load the configured source (default: the published PONTO.xlsx)
  ponto import

  # Load local workbooks instead
  ponto import -i ./ponto-jan.xlsx -i ./ponto-feb.xlsx

  # Ranking for the last 30 days, one row per employee and supervisor
  ponto ranking --period last30 --group supervisor

  # Flagged days of one employee in March 2024
  ponto details --employee "Ana Souza" --period 2024-03

  # Export the ranking to Excel
  ponto export --view ranking --output ./ranking.xlsx

  # Serve the JSON API
  ponto serve --port 8080
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.ponto.yaml, then ./.ponto.yaml)")
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	// A missing .env file is normal; real environment variables still apply.
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".ponto" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ponto")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: ponto config create")
	}
}
