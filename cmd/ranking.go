package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ponto/analysis"
	"ponto/output"
	"ponto/punch"
)

var (
	rankingPeriod     string
	rankingGroup      string
	rankingSupervisor string
	rankingRefresh    bool
	rankingDBPath     string
)

var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Print the deviation headline metrics and the employee ranking",
	Long: `Analyse the cached snapshot and rank employees by their out-of-shift days.

A day is out of shift when the clock-in is more than the shift tolerance away from
the scheduled start. It is overtime when worked time exceeds the scheduled duration
by more than the overtime tolerance. Employees with any flagged day are ranked by
out-of-shift days, ties broken by total overtime minutes and then by name. The
first three places receive gold, silver and bronze badges.

--period accepts all, month, lastN (e.g. last30), YYYY-MM or YYYY-MM-DD..YYYY-MM-DD.
--group accepts a comma separated list of month and supervisor.`,
	Example: `
  # Rank the current month
  ponto ranking --period month

  # Rank per month and supervisor over the last 90 days
  ponto ranking --period last90 --group month,supervisor

  # Reload the configured source before ranking one supervisor's team
  ponto ranking --refresh --supervisor "Lucia Prado"
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		period, err := resolvePeriod(cfg, rankingPeriod)
		if err != nil {
			return err
		}
		group, err := analysis.ParseGroupBy(rankingGroup)
		if err != nil {
			return err
		}

		result, err := analyse(cmd.Context(), cfg, rankingDBPath, rankingRefresh, logger)
		if err != nil {
			return err
		}

		filter := analysis.Filter{Period: period, Supervisor: rankingSupervisor}
		printSummary(os.Stdout, result, filter)
		fmt.Println()
		return printRanking(os.Stdout, result.Ranking(filter, group), group)
	},
}

func init() {
	rootCmd.AddCommand(rankingCmd)

	rankingCmd.Flags().StringVar(&rankingPeriod, "period", "", "Period: all|month|lastN|YYYY-MM|YYYY-MM-DD..YYYY-MM-DD (default: analysis.default_period)")
	rankingCmd.Flags().StringVar(&rankingGroup, "group", "", "Extra grouping: month,supervisor")
	rankingCmd.Flags().StringVar(&rankingSupervisor, "supervisor", "", "Only include rows of this supervisor")
	rankingCmd.Flags().BoolVar(&rankingRefresh, "refresh", false, "Reload the configured source before analysing")
	rankingCmd.Flags().StringVar(&rankingDBPath, "db", defaultDBPath, "Path to local SQLite database")
}

func printSummary(w io.Writer, result *analysis.Result, filter analysis.Filter) {
	summary := result.Summary(filter)
	fmt.Fprintf(w, "Snapshot %s loaded %s from %s\n", result.SnapshotID, result.LoadedAt.Local().Format("2006-01-02 15:04"), result.Source)
	fmt.Fprintf(w, "Period: %s, Records: %d, Employees: %d\n", filter.Period, summary.Records, summary.Employees)
	fmt.Fprintf(w, "Out of shift days: %d, Overtime days: %d, Overtime hours: %s\n",
		summary.OutOfShiftDays,
		summary.OvertimeDays,
		output.OvertimeHours(summary.OvertimeMinutesTotal).StringFixed(2),
	)
}

func printRanking(w io.Writer, entries []punch.RankingEntry, group analysis.GroupBy) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No deviations found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "RANK\tEMPLOYEE"
	if group.Month {
		header += "\tMONTH"
	}
	if group.Supervisor {
		header += "\tSUPERVISOR"
	}
	fmt.Fprintln(tw, header+"\tOUT OF SHIFT\tOVERTIME\tOVERTIME HOURS")

	for _, entry := range entries {
		line := fmt.Sprintf("%s\t%s", rankLabel(entry), entry.EmployeeName)
		if group.Month {
			line += "\t" + entry.Month
		}
		if group.Supervisor {
			line += "\t" + entry.Supervisor
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", line,
			entry.OutOfShiftCount,
			entry.OvertimeCount,
			output.OvertimeHours(entry.OvertimeMinutesTotal).StringFixed(2),
		)
	}
	return tw.Flush()
}

func rankLabel(entry punch.RankingEntry) string {
	switch entry.Badge {
	case punch.BadgeGold:
		return fmt.Sprintf("%d 🥇", entry.Rank)
	case punch.BadgeSilver:
		return fmt.Sprintf("%d 🥈", entry.Rank)
	case punch.BadgeBronze:
		return fmt.Sprintf("%d 🥉", entry.Rank)
	default:
		return fmt.Sprintf("%d", entry.Rank)
	}
}
