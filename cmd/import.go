package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ponto/analysis"
	"ponto/storage"
)

var (
	importInputs []string
	importFormat string
	importDBPath string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load timesheet spreadsheets and cache them in a local SQLite database",
	Long: `Read the input spreadsheets, check the required columns, and replace the cached
snapshot in SQLite with the loaded rows.

Inputs are local paths or http(s) URLs. Without --input the configured
source.inputs are used. Several inputs are read concurrently and merged in the
given order. When --format is omitted, the format is inferred from each input's
file extension.

The cache only ever holds the latest import; analysis always runs on it as a whole.`,
	Example: `
  # Load the configured source
  ponto import

  # Load two local workbooks
  ponto import -i ./ponto-jan.xlsx -i ./ponto-feb.xlsx --db ./ponto.db

  # Load a semicolon separated CSV from a URL
  ponto import -i https://example.com/export?id=7 --format csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		snapshot, loaded, err := loadSnapshot(cmd.Context(), cfg, importInputs, importFormat, logger)
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(importDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.ReplaceSnapshot(snapshot); err != nil {
			return err
		}

		result := analysis.Run(snapshot, cfg.Tolerances())
		fmt.Printf("Import completed. Sources: %d, Rows read: %d, Records: %d, Rows skipped: %d, Snapshot: %s\n",
			len(loaded.Sources),
			loaded.RowsRead,
			len(result.Records),
			len(result.Skipped),
			snapshot.ID,
		)
		for _, skipped := range result.Skipped {
			fmt.Printf("  skipped %s row %d: %s\n", skipped.Source, skipped.RowNumber, skipped.Reason)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringArrayVarP(&importInputs, "input", "i", nil, "Input file path or URL (repeatable, default: source.inputs from config)")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Input format: csv|excel|xls (optional, inferred from extension when omitted)")
	importCmd.Flags().StringVar(&importDBPath, "db", defaultDBPath, "Path to local SQLite database")
}
