package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ponto/punch"
)

var (
	detailsEmployee string
	detailsPeriod   string
	detailsRefresh  bool
	detailsDBPath   string
)

var detailsCmd = &cobra.Command{
	Use:   "details",
	Short: "List the flagged days of one employee",
	Long: `List every out-of-shift or overtime day of one employee, ordered by date.

The employee name is matched case-insensitively after collapsing whitespace.`,
	Example: `
  # Flagged days of one employee in March 2024
  ponto details --employee "Ana Souza" --period 2024-03
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		period, err := resolvePeriod(cfg, detailsPeriod)
		if err != nil {
			return err
		}

		result, err := analyse(cmd.Context(), cfg, detailsDBPath, detailsRefresh, logger)
		if err != nil {
			return err
		}

		return printDetails(os.Stdout, result.Details(detailsEmployee, period))
	},
}

func init() {
	rootCmd.AddCommand(detailsCmd)

	detailsCmd.Flags().StringVarP(&detailsEmployee, "employee", "e", "", "Employee name")
	detailsCmd.Flags().StringVar(&detailsPeriod, "period", "", "Period: all|month|lastN|YYYY-MM|YYYY-MM-DD..YYYY-MM-DD (default: analysis.default_period)")
	detailsCmd.Flags().BoolVar(&detailsRefresh, "refresh", false, "Reload the configured source before analysing")
	detailsCmd.Flags().StringVar(&detailsDBPath, "db", defaultDBPath, "Path to local SQLite database")

	_ = detailsCmd.MarkFlagRequired("employee")
}

func printDetails(w io.Writer, records []punch.DerivedRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No flagged days found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tIN\tOUT\tSCHEDULED\tWORKED\tEXPECTED\tOVERTIME\tFLAGS")
	for _, record := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s-%s\t%s\t%s\t%d\t%s\n",
			record.Record.Date.Format("2006-01-02"),
			punch.FormatClock(record.Record.ActualIn),
			punch.FormatClock(record.Record.ActualOut),
			punch.FormatClock(record.Record.ScheduledIn),
			punch.FormatClock(record.Record.ScheduledOut),
			formatMinutes(record.WorkedMinutes),
			formatMinutes(record.ExpectedMinutes),
			record.OvertimeMinutes,
			flagLabels(record),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Flagged days: %d\n", len(records))
	return nil
}

func formatMinutes(value *int) string {
	if value == nil {
		return "-"
	}
	return strconv.Itoa(*value)
}

func flagLabels(record punch.DerivedRecord) string {
	var flags []string
	if record.IsOutOfShift {
		flags = append(flags, "out-of-shift")
	}
	if record.IsOvertime {
		flags = append(flags, "overtime")
	}
	return strings.Join(flags, ",")
}
