package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ponto/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  ponto config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("Config file: none (defaults and environment)")
		}
		fmt.Println("Configuration:")
		for i, input := range cfg.Source.Inputs {
			fmt.Printf("source.inputs[%d]: %s\n", i, input)
		}
		fmt.Printf("source.format: %s\n", valueOrAuto(cfg.Source.Format))
		fmt.Printf("source.timeout: %s\n", cfg.Source.Timeout)
		fmt.Printf("analysis.overtime_tolerance_minutes: %d\n", cfg.Analysis.OvertimeToleranceMinutes)
		fmt.Printf("analysis.shift_tolerance_minutes: %d\n", cfg.Analysis.ShiftToleranceMinutes)
		fmt.Printf("analysis.default_period: %s\n", valueOrAuto(cfg.Analysis.DefaultPeriod))
		fmt.Printf("columns.employee: %s\n", strings.Join(cfg.Columns.Employee, " | "))
		fmt.Printf("columns.date: %s\n", strings.Join(cfg.Columns.Date, " | "))
		fmt.Printf("columns.actual_in: %s\n", strings.Join(cfg.Columns.ActualIn, " | "))
		fmt.Printf("columns.actual_out: %s\n", strings.Join(cfg.Columns.ActualOut, " | "))
		fmt.Printf("columns.scheduled_in: %s\n", strings.Join(cfg.Columns.ScheduledIn, " | "))
		fmt.Printf("columns.scheduled_out: %s\n", strings.Join(cfg.Columns.ScheduledOut, " | "))
		fmt.Printf("columns.supervisor: %s\n", strings.Join(cfg.Columns.Supervisor, " | "))
		fmt.Printf("server.port: %d\n", cfg.Server.Port)
		fmt.Printf("server.allowed_origins: %s\n", strings.Join(cfg.Server.AllowedOrigins, ", "))
		fmt.Printf("log.level: %s\n", cfg.Log.Level)
		fmt.Printf("log.format: %s\n", cfg.Log.Format)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func valueOrAuto(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(auto)"
	}
	return value
}
