package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezkam/daily/internal/domain"
)

func newCommentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Manage task comments",
		Long: `Manage comments on a task. Comments are numbered from 0 in the order
they were added; see them with: daily show <id>`,
	}

	cmd.AddCommand(newCommentAddCmd(a))
	cmd.AddCommand(newCommentRmCmd(a))

	return cmd
}

func newCommentAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <id> <text>",
		Short: "Add a comment to a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}
			t, err := a.store().AddComment(cmd.Context(), id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			return a.writeTask(cmd.OutOrStdout(), t)
		},
	}
}

func newCommentRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id> <index>",
		Short: "Remove a comment by position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: comment index %q is not a number", domain.ErrValidation, args[1])
			}
			t, err := a.store().RemoveComment(cmd.Context(), id, index)
			if err != nil {
				return err
			}
			return a.writeTask(cmd.OutOrStdout(), t)
		},
	}
}
