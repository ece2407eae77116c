// cmd/college-tracker/task.go
package main

import (
	"fmt"

	"college-tracker/internal/common/errors"
	"college-tracker/internal/models"

	"github.com/spf13/cobra"
)

func newTaskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "tracker"},
		Short:   "Work with the application checklist",
	}

	cmd.AddCommand(
		newTaskListCmd(a),
		newTaskSetCmd(a),
		newTaskAddColumnCmd(a),
		newTaskRenameColumnCmd(a),
		newTaskDeleteColumnCmd(a),
	)

	return cmd
}

func newTaskListCmd(a *app) *cobra.Command {
	var status string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the checklist table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks := a.store.Tasks()
			if status != "" {
				s := models.CollegeStatus(status)
				if !s.Valid() {
					return errors.NewValidationFailedError(fmt.Sprintf("unknown status %q", status))
				}
				tasks = a.store.TasksByStatus(s)
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), tasks)
			}
			printTaskTable(cmd.OutOrStdout(), a.store.Columns(), tasks)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only rows whose college has this status")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newTaskSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <college-id|name> <column-id> <value>",
		Short: "Set one checklist cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.resolveCollege(args[0])
			if err != nil {
				return err
			}
			if _, err := a.store.UpdateTaskCell(cmd.Context(), c.ID, args[1], args[2]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s = %s\n", c.Name, args[1], args[2])
			return nil
		},
	}
}

func newTaskAddColumnCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add-column <name>",
		Short: "Add a checkbox column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := a.store.AddColumn(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added column %s (%s)\n", col.Name, col.ID)
			return nil
		},
	}
}

func newTaskRenameColumnCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename-column <column-id> <name>",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.RenameColumn(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed column %s to %s\n", args[0], args[1])
			return nil
		},
	}
}

func newTaskDeleteColumnCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-column <column-id>",
		Short: "Delete a column and its values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.DeleteColumn(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted column %s\n", args[0])
			return nil
		},
	}
}
