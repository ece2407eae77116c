// cmd/college-tracker/report.go
package main

import (
	"fmt"
	"os"

	"college-tracker/internal/models"

	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise progress and upcoming deadlines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats := a.store.Stats()
			if asJSON {
				return printJSON(cmd.OutOrStdout(), stats)
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, headingStyle.Render("Applications"))
			_, _ = fmt.Fprintf(w, "  Total: %d\n", stats.Total)
			for _, s := range models.CollegeStatuses {
				if n := stats.ByStatus[s]; n > 0 {
					_, _ = fmt.Fprintf(w, "  %s: %d\n", s, n)
				}
			}
			_, _ = fmt.Fprintf(w, "  Completion: %.0f%%\n", stats.CompletionRate)
			_, _ = fmt.Fprintf(w, "  Total fees: $%.2f\n", stats.TotalFees)

			_, _ = fmt.Fprintln(w, headingStyle.Render("Upcoming deadlines"))
			if len(stats.Upcoming) == 0 {
				_, _ = fmt.Fprintln(w, "  none")
			}
			for _, u := range stats.Upcoming {
				_, _ = fmt.Fprintf(w, "  %s  %s (%d days)\n", u.Deadline, u.Name, u.DaysRemaining)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tracker data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := a.store.Export(format)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o600); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "json, yaml or toml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}
