// cmd/college-tracker/root.go
package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	a := &app{}
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "college-tracker",
		Short: "Track college applications and research them with an AI assistant",
		Long: "college-tracker keeps your college list, deadlines, requirements and application checklist " +
			"in local storage, and answers research questions with a generation API plus optional web search.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.wire(cmd.Context(), configPath, cmd.OutOrStdout())
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config.yaml (default: ./configs, . and the user config dir)")

	rootCmd.AddCommand(
		newCollegeCmd(a),
		newTaskCmd(a),
		newProfileCmd(a),
		newAskCmd(a),
		newChatCmd(a),
		newLookupCmd(a),
		newStatsCmd(a),
		newExportCmd(a),
	)
	a.handleFailures(rootCmd)

	return rootCmd
}

// handleFailures routes every command error through the error handler. Post
// run hooks are skipped on failure, so storage is released here instead.
func (a *app) handleFailures(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		a.handleFailures(sub)
	}
	if cmd.RunE == nil {
		return
	}
	run := cmd.RunE
	cmd.RunE = func(c *cobra.Command, args []string) error {
		err := run(c, args)
		if err != nil && a.errs != nil {
			a.errs.Handle(c.CommandPath(), err)
			_ = a.close()
		}
		return err
	}
}
