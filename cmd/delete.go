package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ponto/storage"
)

var (
	deleteDBPath   string
	deleteKeepFile bool
)

var (
	promptInput  io.Reader = os.Stdin
	promptOutput io.Writer = os.Stdout
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the cached snapshot database",
	Long: `Destructive cache cleanup command.

By default the complete SQLite database file is deleted. With --keep-file the
file stays and only the cached snapshot rows are removed.
Before deletion, an interactive security prompt requires typing exactly "Y".`,
	Example: `
  # Delete the complete SQLite file (requires interactive confirmation)
  ponto delete --db ./ponto.db

  # Empty the cache but keep the file
  ponto delete --keep-file
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		question := fmt.Sprintf("Delete cached punch data in %q?", deleteDBPath)
		confirmed, err := confirmPrompt(promptInput, promptOutput, question)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("delete aborted: confirmation was not 'Y'")
		}

		if deleteKeepFile {
			if err := clearSnapshots(deleteDBPath); err != nil {
				return err
			}
			fmt.Printf("Cleared cached snapshot in: %s\n", deleteDBPath)
			return nil
		}

		if err := removeDatabaseFile(deleteDBPath); err != nil {
			return err
		}
		fmt.Printf("Deleted database file: %s\n", deleteDBPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().StringVar(&deleteDBPath, "db", defaultDBPath, "Path to local SQLite database")
	deleteCmd.Flags().BoolVar(&deleteKeepFile, "keep-file", false, "Only remove cached rows and keep the database file")
}

// confirmPrompt asks question and accepts exactly "Y" as confirmation.
func confirmPrompt(input io.Reader, output io.Writer, question string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("confirmation input is not available")
	}

	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "%s Type Y to confirm: ", question); err != nil {
		return false, fmt.Errorf("write confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimSpace(line)
			return line == "Y", nil
		}
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}

func removeDatabaseFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database file not found: %s", path)
		}
		return fmt.Errorf("stat database file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("database path is a directory: %s", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete database file: %w", err)
	}
	return nil
}

func clearSnapshots(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database file not found: %s", path)
		}
		return fmt.Errorf("stat database file: %w", err)
	}

	store, err := storage.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.DeleteAll()
}
