// cmd/college-tracker/profile.go
package main

import (
	"fmt"
	"strings"

	"college-tracker/internal/common/errors"
	"college-tracker/internal/models"
	"college-tracker/internal/store"

	"github.com/spf13/cobra"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your student profile",
	}

	cmd.AddCommand(
		newProfileShowCmd(a),
		newProfileInitCmd(a),
		newProfileSetCmd(a),
	)

	return cmd
}

func newProfileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := a.store.Profile()
			if p == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No profile saved. Run `profile init` to create one.")
				return nil
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
}

func newProfileInitCmd(a *app) *cobra.Command {
	var name, email, grade string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a profile from the onboarding answers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			saved, err := a.store.SaveProfile(cmd.Context(), store.OnboardingProfile(name, email, grade))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s (grade %s)\n", saved.Name, saved.Grade)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "your name")
	cmd.Flags().StringVar(&email, "email", "", "your email")
	cmd.Flags().StringVar(&grade, "grade", "12", "your grade (9-12)")
	return cmd
}

func newProfileSetCmd(a *app) *cobra.Command {
	var (
		p        models.UserProfile
		grade    string
		subjects []string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change profile fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := a.store.Profile()
			if current == nil {
				seed := store.OnboardingProfile("", "", "")
				current = &seed
			}

			changed := cmd.Flags().Changed
			if changed("name") {
				current.Name = p.Name
			}
			if changed("email") {
				current.Email = p.Email
			}
			if changed("grade") {
				current.Grade = models.GradeLevel(grade)
			}
			if changed("country") {
				current.Country = p.Country
			}
			if changed("gpa") {
				current.GPA = p.GPA
			}
			if changed("extracurriculars") {
				current.Extracurriculars = p.Extracurriculars
			}
			if changed("resume-text") {
				current.Resume.Text = p.Resume.Text
			}
			if changed("resume-file") {
				current.Resume.FileRef = p.Resume.FileRef
			}
			if changed("theme") {
				current.Preferences.Theme = p.Preferences.Theme
			}
			if changed("notifications") {
				current.Preferences.Notifications = p.Preferences.Notifications
			}
			if changed("auto-sync") {
				current.Preferences.AutoSync = p.Preferences.AutoSync
			}
			if changed("subject") {
				parsed, err := parseSubjects(subjects)
				if err != nil {
					return err
				}
				current.Subjects = parsed
			}

			if _, err := a.store.SaveProfile(cmd.Context(), *current); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Profile saved")
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Name, "name", "", "your name")
	cmd.Flags().StringVar(&p.Email, "email", "", "your email")
	cmd.Flags().StringVar(&grade, "grade", "", "grade or level, e.g. 12 or \"College Freshman\"")
	cmd.Flags().StringVar(&p.Country, "country", "", "country of residence")
	cmd.Flags().StringVar(&p.GPA, "gpa", "", "GPA or grade representation")
	cmd.Flags().StringVar(&p.Extracurriculars, "extracurriculars", "", "activities, free text")
	cmd.Flags().StringVar(&p.Resume.Text, "resume-text", "", "resume as plain text")
	cmd.Flags().StringVar(&p.Resume.FileRef, "resume-file", "", "reference to an uploaded resume")
	cmd.Flags().StringVar(&p.Preferences.Theme, "theme", "", "display theme")
	cmd.Flags().BoolVar(&p.Preferences.Notifications, "notifications", false, "enable notifications")
	cmd.Flags().BoolVar(&p.Preferences.AutoSync, "auto-sync", false, "enable auto sync")
	cmd.Flags().StringArrayVar(&subjects, "subject", nil, "subject as Name:Grade (repeatable)")
	return cmd
}

func parseSubjects(raw []string) ([]models.Subject, error) {
	out := make([]models.Subject, 0, len(raw))
	for _, r := range raw {
		name, grade, _ := strings.Cut(r, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.NewValidationFailedError(fmt.Sprintf("invalid subject %q, want Name:Grade", r))
		}
		out = append(out, models.Subject{Name: name, Grade: strings.TrimSpace(grade)})
	}
	return out, nil
}
