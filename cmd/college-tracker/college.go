// cmd/college-tracker/college.go
package main

import (
	"fmt"
	"strings"

	"college-tracker/internal/common/errors"
	"college-tracker/internal/models"

	"github.com/spf13/cobra"
)

func newCollegeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "college",
		Aliases: []string{"colleges"},
		Short:   "Manage tracked colleges",
	}

	cmd.AddCommand(
		newCollegeListCmd(a),
		newCollegeShowCmd(a),
		newCollegeAddCmd(a),
		newCollegeUpdateCmd(a),
		newCollegeStatusCmd(a),
		newCollegeRemoveCmd(a),
	)

	return cmd
}

func newCollegeListCmd(a *app) *cobra.Command {
	var status string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked colleges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			colleges := a.store.Colleges()
			if status != "" {
				s := models.CollegeStatus(status)
				if !s.Valid() {
					return errors.NewValidationFailedError(fmt.Sprintf("unknown status %q", status))
				}
				filtered := colleges[:0]
				for _, c := range colleges {
					if c.Status == s {
						filtered = append(filtered, c)
					}
				}
				colleges = filtered
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), colleges)
			}
			if len(colleges) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No colleges tracked yet. Add one with `college add` or `lookup <name> --add`.")
				return nil
			}
			printCollegeTable(cmd.OutOrStdout(), colleges)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only show colleges with this status")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newCollegeShowCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show one college",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.resolveCollege(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), c)
			}
			printCollege(cmd.OutOrStdout(), c)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// collegeFlags are shared by add and update.
type collegeFlags struct {
	name          string
	location      string
	deadline      string
	earlyDeadline string
	fee           float64
	portal        string
	notes         string
	status        string
	essays        []string
	testScores    []string
	documents     []string
	scholarships  []string
}

func (f *collegeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "college name")
	cmd.Flags().StringVar(&f.location, "location", "", "city, country")
	cmd.Flags().StringVar(&f.deadline, "deadline", "", "application deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.earlyDeadline, "early-deadline", "", "early deadline (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&f.fee, "fee", 0, "application fee")
	cmd.Flags().StringVar(&f.portal, "portal", "", "application portal URL")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&f.status, "status", "", "application status")
	cmd.Flags().StringSliceVar(&f.essays, "essay", nil, "required essay (repeatable)")
	cmd.Flags().StringSliceVar(&f.testScores, "test-score", nil, "required test score (repeatable)")
	cmd.Flags().StringSliceVar(&f.documents, "document", nil, "required document (repeatable)")
	cmd.Flags().StringSliceVar(&f.scholarships, "scholarship", nil, "scholarship (repeatable)")
}

func (f *collegeFlags) college() models.College {
	return models.College{
		Name:                f.name,
		Location:            f.location,
		ApplicationDeadline: f.deadline,
		EarlyDeadline:       f.earlyDeadline,
		ApplicationFee:      f.fee,
		PortalLink:          f.portal,
		Notes:               f.notes,
		Status:              models.CollegeStatus(f.status),
		Requirements: models.Requirements{
			Essays:     nonNil(f.essays),
			TestScores: nonNil(f.testScores),
			Documents:  nonNil(f.documents),
		},
		Scholarships: nonNil(f.scholarships),
	}
}

// patch includes only the flags the user actually passed.
func (f *collegeFlags) patch(cmd *cobra.Command, current models.College) models.CollegePatch {
	changed := cmd.Flags().Changed
	var p models.CollegePatch
	if changed("name") {
		p.Name = &f.name
	}
	if changed("location") {
		p.Location = &f.location
	}
	if changed("deadline") {
		p.ApplicationDeadline = &f.deadline
	}
	if changed("early-deadline") {
		p.EarlyDeadline = &f.earlyDeadline
	}
	if changed("fee") {
		p.ApplicationFee = &f.fee
	}
	if changed("portal") {
		p.PortalLink = &f.portal
	}
	if changed("notes") {
		p.Notes = &f.notes
	}
	if changed("status") {
		s := models.CollegeStatus(f.status)
		p.Status = &s
	}
	if changed("essay") || changed("test-score") || changed("document") {
		reqs := current.Requirements
		if changed("essay") {
			reqs.Essays = nonNil(f.essays)
		}
		if changed("test-score") {
			reqs.TestScores = nonNil(f.testScores)
		}
		if changed("document") {
			reqs.Documents = nonNil(f.documents)
		}
		p.Requirements = &reqs
	}
	if changed("scholarship") {
		p.Scholarships = nonNil(f.scholarships)
	}
	return p
}

func newCollegeAddCmd(a *app) *cobra.Command {
	var f collegeFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a college by hand",
		RunE: func(cmd *cobra.Command, _ []string) error {
			added, err := a.store.AddCollege(cmd.Context(), f.college())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", added.Name, added.ID)
			return nil
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCollegeUpdateCmd(a *app) *cobra.Command {
	var f collegeFlags

	cmd := &cobra.Command{
		Use:   "update <id|name>",
		Short: "Change fields of a tracked college",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := a.resolveCollege(strings.Join(args, " "))
			if err != nil {
				return err
			}
			updated, err := a.store.UpdateCollege(cmd.Context(), current.ID, f.patch(cmd, current))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", updated.Name)
			return nil
		},
	}

	f.register(cmd)
	return cmd
}

func newCollegeStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id|name> <status>",
		Short: "Set the application status (" + statusList() + ")",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := models.CollegeStatus(args[len(args)-1])
			current, err := a.resolveCollege(strings.Join(args[:len(args)-1], " "))
			if err != nil {
				return err
			}
			updated, err := a.store.SetStatus(cmd.Context(), current.ID, status)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", updated.Name, updated.Status)
			return nil
		},
	}
}

func newCollegeRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id|name>",
		Aliases: []string{"rm"},
		Short:   "Stop tracking a college",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := a.resolveCollege(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if err := a.store.RemoveCollege(cmd.Context(), current.ID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", current.Name)
			return nil
		},
	}
}

// resolveCollege accepts an ID or a case-insensitive name.
func (a *app) resolveCollege(ref string) (models.College, error) {
	if c, ok := a.store.College(ref); ok {
		return c, nil
	}
	if c, ok := a.store.FindByName(ref); ok {
		return c, nil
	}
	return models.College{}, errors.NewNotFoundError("college", ref)
}

func statusList() string {
	names := make([]string, len(models.CollegeStatuses))
	for i, s := range models.CollegeStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
