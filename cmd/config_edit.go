package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor.",
	Long: `Open the active ponto config file in your editor.

Editor selection order:
1) $VISUAL
2) $EDITOR
3) vi

If no config file exists yet, this command creates one with an example template first.
After the editor exits, the content is validated as ponto YAML config, including
the analysis.default_period expression and the column aliases.`,
	Example: `
  # Edit active config
  ponto config edit

  # Edit with a specific editor
  VISUAL="code --wait" ponto config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		created, err := writeConfigTemplate(path)
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("No config file found. Created example config at: %s\n", path)
		}

		editor, err := editorCommand(pickEditor(os.Getenv("VISUAL"), os.Getenv("EDITOR")), path)
		if err != nil {
			return err
		}
		editor.Stdin = os.Stdin
		editor.Stdout = os.Stdout
		editor.Stderr = os.Stderr
		if err := editor.Run(); err != nil {
			return fmt.Errorf("opening editor failed: %w", err)
		}

		cfg, err := validateConfigFile(path)
		if err != nil {
			return err
		}

		fmt.Printf("Configuration saved and validated: %s (%d input source(s))\n", path, len(cfg.Source.Inputs))
		return nil
	},
}

func pickEditor(candidates ...string) string {
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return "vi"
}

// editorCommand splits an editor value such as "code --wait" and appends path.
func editorCommand(editor, path string) (*exec.Cmd, error) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}

	args := append(fields[1:], path)
	return exec.Command(fields[0], args...), nil
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
