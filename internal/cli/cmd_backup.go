package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write a backup of every task",
		Long: `Write every task as a JSON array, to file or to stdout.
The backup can be restored with: daily import <file>`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.store().Export(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 0 || args[0] == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", a.store().Snapshot().Counters.Total, args[0])
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace every task with a backup",
		Long: `Replace the whole task list with a backup written by export.
Use - to read from stdin. Nothing changes if the file is not a task backup.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}

			n, err := a.store().Import(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks\n", n)
			return nil
		},
	}
}

func newExpireCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expire",
		Short: "Mark overdue tasks as expired and list them",
		Long: `Every command runs an expiration pass before it starts; this one
only reports what that pass changed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if a.jsonOut {
				ids := a.expired
				if ids == nil {
					ids = []string{}
				}
				return writeJSON(out, ids)
			}

			if len(a.expired) == 0 {
				fmt.Fprintln(out, "No overdue tasks.")
				return nil
			}
			for _, id := range a.expired {
				t, err := a.store().Get(id)
				if err != nil {
					continue
				}
				fmt.Fprintf(out, "Expired %s  %s\n", shortID(id), t.Title)
			}
			return nil
		},
	}
}
