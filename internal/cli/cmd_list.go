package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezkam/daily/internal/domain"
	"github.com/rezkam/daily/internal/view"
)

func newListCmd(a *app) *cobra.Command {
	var (
		status, date, sortBy, dir string
		open                      bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks, most urgent first unless --sort says otherwise.

Examples:
  daily list
  daily list --status in_progress
  daily list --date 2025-03-10 --sort dueDate --dir asc
  daily list --open --sort title --dir asc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := view.ParseStatusFilter(status)
			if err != nil {
				return err
			}

			snap := a.store().Snapshot()
			tasks := view.FilterByStatus(snap.Tasks, filter)
			if open {
				tasks = view.FilterOpen(tasks)
			}
			if date != "" {
				if _, err := time.Parse(domain.DateLayout, date); err != nil {
					return fmt.Errorf("%w: --date must be YYYY-MM-DD", domain.ErrValidation)
				}
				tasks = view.FilterByDate(tasks, date)
			}

			tasks = view.Sort(tasks, view.SortOptions{
				Field:     view.ParseSortField(sortBy),
				Direction: view.ParseDirection(dir),
				Location:  a.store().Location(),
			})

			if err := a.writeTasks(cmd.OutOrStdout(), tasks); err != nil {
				return err
			}
			if !a.jsonOut && len(tasks) > 0 {
				c := snap.Counters
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d tasks, %d completed, %d pending\n", c.Total, c.Completed, c.Pending)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "all", "pending, in_progress, completed, expired or all")
	cmd.Flags().BoolVar(&open, "open", false, "hide completed tasks")
	cmd.Flags().StringVar(&date, "date", "", "only tasks due on this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sortBy, "sort", string(view.SortByPriority), "createdAt, priority, dueDate or title")
	cmd.Flags().StringVar(&dir, "dir", string(view.Desc), "asc or desc")

	return cmd
}
