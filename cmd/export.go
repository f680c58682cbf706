package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ponto/analysis"
	"ponto/output"
)

var (
	exportView       string
	exportFormat     string
	exportOutput     string
	exportPeriod     string
	exportGroup      string
	exportSupervisor string
	exportRefresh    bool
	exportDBPath     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the analysed records or the ranking to CSV/Excel",
	Long: `Export analysis results from the cached snapshot.

Views:
- records: every row with its derived worked, expected and overtime minutes and flags
- ranking: the employee ranking for the selected period and grouping

Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export all records to Excel
  ponto export --view records --output ./ponto-records.xlsx

  # Export the monthly ranking to CSV
  ponto export --view ranking --group month --period last90 --output ./ranking.csv

  # Force CSV independent of extension
  ponto export --format csv --output ./records.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.TrimSpace(exportFormat)
		if format == "" {
			detected, err := output.FormatForPath(exportOutput)
			if err != nil {
				return err
			}
			format = detected
		}
		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}

		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		period, err := resolvePeriod(cfg, exportPeriod)
		if err != nil {
			return err
		}
		group, err := analysis.ParseGroupBy(exportGroup)
		if err != nil {
			return err
		}

		result, err := analyse(cmd.Context(), cfg, exportDBPath, exportRefresh, logger)
		if err != nil {
			return err
		}
		filter := analysis.Filter{Period: period, Supervisor: exportSupervisor}

		switch view := strings.TrimSpace(strings.ToLower(exportView)); view {
		case "", "records":
			records := result.Table(filter)
			if err := output.WriteFile(exportOutput, func(w io.Writer) error {
				return writer.WriteRecords(w, records)
			}); err != nil {
				return err
			}
			fmt.Printf("Export completed. Rows: %d, View: records, Format: %s, File: %s\n", len(records), format, exportOutput)
		case "ranking":
			entries := result.Ranking(filter, group)
			if err := output.WriteFile(exportOutput, func(w io.Writer) error {
				return writer.WriteRanking(w, entries)
			}); err != nil {
				return err
			}
			fmt.Printf("Export completed. Rows: %d, View: ranking, Format: %s, File: %s\n", len(entries), format, exportOutput)
		default:
			return fmt.Errorf("unsupported export view: %s (supported: records, ranking)", exportView)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportView, "view", "records", "Export view: records|ranking")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportPeriod, "period", "", "Period: all|month|lastN|YYYY-MM|YYYY-MM-DD..YYYY-MM-DD (default: analysis.default_period)")
	exportCmd.Flags().StringVar(&exportGroup, "group", "", "Extra ranking grouping: month,supervisor")
	exportCmd.Flags().StringVar(&exportSupervisor, "supervisor", "", "Only include rows of this supervisor")
	exportCmd.Flags().BoolVar(&exportRefresh, "refresh", false, "Reload the configured source before analysing")
	exportCmd.Flags().StringVar(&exportDBPath, "db", defaultDBPath, "Path to local SQLite database")

	_ = exportCmd.MarkFlagRequired("output")
}
