package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezkam/daily/internal/domain"
)

// resolveID accepts a full id or a unique prefix of one, as printed by list.
// A blank argument is rejected rather than treated as a prefix of every id.
func (a *app) resolveID(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("%w: task id is required", domain.ErrValidation)
	}

	var matches []string
	for _, t := range a.store().Snapshot().Tasks {
		if t.ID == arg {
			return arg, nil
		}
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", domain.ErrTaskNotFound, arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: id prefix %q matches %d tasks", domain.ErrValidation, arg, len(matches))
	}
}

func newAddCmd(a *app) *cobra.Command {
	var params domain.CreateTaskParams

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Long: `Create a pending task. Priority defaults to Media and category to Personal.

Examples:
  daily add "Comprar pan"
  daily add "Informe trimestral" --priority Alta --category Trabajo --due 2025-03-31
  daily add "Llamar al médico" --due 2025-03-10T09:30`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Title = strings.Join(args, " ")

			t, err := a.store().Create(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.writeTask(cmd.OutOrStdout(), t)
		},
	}

	cmd.Flags().StringVarP(&params.Description, "desc", "d", "", "description")
	cmd.Flags().StringVarP(&params.Priority, "priority", "p", "", "Alta, Media or Baja")
	cmd.Flags().StringVarP(&params.Category, "category", "c", "", "Trabajo, Personal, Hogar or Estudios")
	cmd.Flags().StringVar(&params.DueDate, "due", "", "due date (YYYY-MM-DD or YYYY-MM-DDTHH:MM)")

	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}
			t, err := a.store().Get(id)
			if err != nil {
				return err
			}
			return a.writeTask(cmd.OutOrStdout(), t)
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <pending|in_progress|completed|expired>",
		Short: "Set the status of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}
			status, err := domain.NewStatus(args[1])
			if err != nil {
				return err
			}
			t, err := a.store().SetStatus(cmd.Context(), id, status)
			if err != nil {
				return err
			}
			return a.writeTask(cmd.OutOrStdout(), t)
		},
	}
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Complete a task, or reopen it if already completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}
			t, err := a.store().ToggleComplete(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.writeTask(cmd.OutOrStdout(), t)
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	var (
		title, desc, priority, category, due, status string
		clearDue                                     bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Long: `Change only the fields whose flags are given.

Examples:
  daily edit 0193a2b4 --title "Comprar pan integral"
  daily edit 0193a2b4 --priority Baja --due 2025-04-01
  daily edit 0193a2b4 --clear-due`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}

			params := domain.UpdateTaskParams{TaskID: id}
			flags := cmd.Flags()

			if flags.Changed("title") {
				params.UpdateMask = append(params.UpdateMask, domain.FieldTitle)
				params.Title = &title
			}
			if flags.Changed("desc") {
				params.UpdateMask = append(params.UpdateMask, domain.FieldDescription)
				params.Description = &desc
			}
			if flags.Changed("priority") {
				p, err := domain.NewPriority(priority)
				if err != nil {
					return err
				}
				params.UpdateMask = append(params.UpdateMask, domain.FieldPriority)
				params.Priority = &p
			}
			if flags.Changed("category") {
				c, err := domain.NewCategory(category)
				if err != nil {
					return err
				}
				params.UpdateMask = append(params.UpdateMask, domain.FieldCategory)
				params.Category = &c
			}
			if flags.Changed("due") && clearDue {
				return fmt.Errorf("%w: --due and --clear-due are exclusive", domain.ErrValidation)
			}
			if flags.Changed("due") || clearDue {
				d, err := domain.NewDueDatePtr(due)
				if err != nil {
					return err
				}
				params.UpdateMask = append(params.UpdateMask, domain.FieldDueDate)
				params.DueDate = d
			}
			if flags.Changed("status") {
				st, err := domain.NewStatus(status)
				if err != nil {
					return err
				}
				params.UpdateMask = append(params.UpdateMask, domain.FieldStatus)
				params.Status = &st
			}

			t, err := a.store().UpdateFields(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.writeTask(cmd.OutOrStdout(), t)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "new description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Alta, Media or Baja")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Trabajo, Personal, Hogar or Estudios")
	cmd.Flags().StringVar(&due, "due", "", "new due date")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "remove the due date")
	cmd.Flags().StringVar(&status, "status", "", "new status")

	return cmd
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}
			if err := a.store().Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			return nil
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete every task without --yes")
			}
			n := a.store().Snapshot().Counters.Total
			if err := a.store().Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d tasks\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm")
	return cmd
}
