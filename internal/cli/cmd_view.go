package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezkam/daily/internal/domain"
	"github.com/rezkam/daily/internal/view"
)

const barWidth = 20

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress and breakdowns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := view.Aggregate(a.store().Snapshot().Tasks)
			out := cmd.OutOrStdout()

			if a.jsonOut {
				return writeJSON(out, stats)
			}

			c := stats.Counters
			fmt.Fprintf(out, "Progress  %s %d%%  (%d of %d completed)\n\n",
				bar(c.Completed, c.Total, barWidth), stats.Progress, c.Completed, c.Total)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STATUS\tTASKS")
			for _, s := range domain.Statuses {
				fmt.Fprintf(w, "%s\t%d\n", s, stats.ByStatus[s])
			}
			fmt.Fprintln(w, "\nPRIORITY (open)\tTASKS")
			for _, p := range domain.Priorities {
				fmt.Fprintf(w, "%s\t%d\n", p, stats.ByPriority[p])
			}
			fmt.Fprintln(w, "\nCATEGORY (open)\tTASKS")
			for _, cat := range domain.Categories {
				fmt.Fprintf(w, "%s\t%d\n", cat, stats.ByCategory[cat])
			}
			return w.Flush()
		},
	}
}

func newCalendarCmd(a *app) *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show tasks due in a month, grouped by day",
		Long: `Show the days of a month that have tasks due. Defaults to the current month.

Examples:
  daily calendar
  daily calendar --year 2025 --month 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.now().In(a.store().Location())
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}

			dates, err := view.DatesInMonth(year, time.Month(month))
			if err != nil {
				return err
			}

			groups := view.GroupByDate(a.store().Snapshot().Tasks)
			opts := view.SortOptions{Field: view.SortByDueDate, Direction: view.Asc, Location: a.store().Location()}

			days := make(map[string][]domain.Task)
			for _, date := range dates {
				if tasks := groups[date]; len(tasks) > 0 {
					days[date] = view.Sort(tasks, opts)
				}
			}

			out := cmd.OutOrStdout()
			if a.jsonOut {
				encoded := make(map[string][]string, len(days))
				for date, tasks := range days {
					for _, t := range tasks {
						encoded[date] = append(encoded[date], t.ID)
					}
				}
				return writeJSON(out, encoded)
			}

			fmt.Fprintf(out, "%s %d\n", time.Month(month), year)
			if len(days) == 0 {
				fmt.Fprintln(out, "No tasks due this month.")
				return nil
			}
			for _, date := range dates {
				tasks, ok := days[date]
				if !ok {
					continue
				}
				fmt.Fprintf(out, "\n%s\n", date)
				for _, t := range tasks {
					fmt.Fprintf(out, "  %s  %-13s  %s\n", shortID(t.ID), statusIcon(t.Status), t.Title)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "year (default current)")
	cmd.Flags().IntVar(&month, "month", 0, "month 1-12 (default current)")

	return cmd
}
