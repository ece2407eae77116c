// cmd/college-tracker/assistant.go
package main

import (
	"fmt"
	"strings"

	"college-tracker/internal/common/errors"

	"github.com/spf13/cobra"
)

func newAskCmd(a *app) *cobra.Command {
	var noSearch, plain, asJSON bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the assistant one question about your applications",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.NewValidationFailedError("question is required")
			}

			resp := a.assistant.ProcessQuery(cmd.Context(), query, a.store.Colleges(), !noSearch, a.store.Profile())
			if asJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			printAnswer(cmd.OutOrStdout(), resp, plain)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSearch, "no-search", false, "never run a web search for this question")
	cmd.Flags().BoolVar(&plain, "plain", false, "print the answer without markdown rendering")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw response as JSON")
	return cmd
}

func newLookupCmd(a *app) *cobra.Command {
	var add, asJSON bool

	cmd := &cobra.Command{
		Use:   "lookup <college name>",
		Short: "Research a college and optionally add it to your list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			profile := a.store.Profile()

			if add {
				added, err := a.lookup.AddFromLookup(cmd.Context(), name, profile)
				if err != nil {
					return lookupFailure(err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", added.Name, added.ID)
				return nil
			}

			c, err := a.lookup.Lookup(cmd.Context(), name, profile)
			if err != nil {
				return lookupFailure(err)
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), c)
			}
			printCollege(cmd.OutOrStdout(), *c)
			return nil
		},
	}

	cmd.Flags().BoolVar(&add, "add", false, "save the result and open it")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func lookupFailure(err error) error {
	if errors.Is(err, errors.ErrParse) {
		return fmt.Errorf("%w\nPlease try a different college or add it with `college add`", err)
	}
	if errors.Is(err, errors.ErrTimeout) {
		return fmt.Errorf("could not fetch college info, please check your connection or API key and try again: %w", err)
	}
	return err
}
