// cmd/college-tracker/render.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"college-tracker/internal/models"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headingStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	userStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	assistantStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	suggestionStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("11"))

	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCollege(w io.Writer, c models.College) {
	_, _ = fmt.Fprintln(w, headingStyle.Render(c.Name))
	row := func(label, value string) {
		if value != "" {
			_, _ = fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(label+":"), value)
		}
	}
	row("ID", c.ID)
	row("Location", c.Location)
	row("Status", string(c.Status))
	row("Deadline", c.ApplicationDeadline)
	row("Early deadline", c.EarlyDeadline)
	row("Fee", "$"+strconv.FormatFloat(c.ApplicationFee, 'f', -1, 64))
	row("Portal", c.PortalLink)
	row("Essays", strings.Join(c.Requirements.Essays, ", "))
	row("Test scores", strings.Join(c.Requirements.TestScores, ", "))
	row("Documents", strings.Join(c.Requirements.Documents, ", "))
	row("Scholarships", strings.Join(c.Scholarships, ", "))
	row("Notes", c.Notes)
}

func printCollegeTable(w io.Writer, colleges []models.College) {
	t := newTable("ID", "NAME", "STATUS", "DEADLINE", "FEE")
	for _, c := range colleges {
		t.Row(c.ID, c.Name, string(c.Status), c.ApplicationDeadline,
			"$"+strconv.FormatFloat(c.ApplicationFee, 'f', -1, 64))
	}
	_, _ = fmt.Fprintln(w, t.Render())
}

func printTaskTable(w io.Writer, columns []models.TaskColumn, tasks []models.ApplicationTask) {
	header := []string{"COLLEGE ID"}
	for _, col := range columns {
		header = append(header, strings.ToUpper(col.Name))
	}
	t := newTable(header...)

	for _, task := range tasks {
		cells := []string{task.CollegeID}
		for _, col := range columns {
			v, ok := task.Get(col.ID)
			cells = append(cells, formatCell(col, v, ok))
		}
		t.Row(cells...)
	}
	_, _ = fmt.Fprintln(w, t.Render())
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(labelStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers(headers...)
}

func formatCell(col models.TaskColumn, v interface{}, ok bool) string {
	if !ok || v == nil {
		if col.Type == models.ColumnCheckbox {
			return "[ ]"
		}
		return "-"
	}
	if b, isBool := v.(bool); isBool {
		if b {
			return "[x]"
		}
		return "[ ]"
	}
	s := fmt.Sprint(v)
	if s == "" {
		return "-"
	}
	return s
}

// renderMarkdown formats an answer for the terminal. plain skips rendering.
func renderMarkdown(content string, plain bool) string {
	if plain {
		return content
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

func printAnswer(w io.Writer, resp *models.AIResponse, plain bool) {
	_, _ = fmt.Fprintln(w, strings.TrimRight(renderMarkdown(resp.Content, plain), "\n"))

	if len(resp.SearchResults) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, headingStyle.Render("Sources:"))
		for i, r := range resp.SearchResults {
			_, _ = fmt.Fprintf(w, "  %d. %s\n     %s\n", i+1, r.Title, r.URL)
		}
	}

	if len(resp.Suggestions) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, headingStyle.Render("Suggestions:"))
		for _, s := range resp.Suggestions {
			_, _ = fmt.Fprintf(w, "  %s\n", suggestionStyle.Render(suggestionHint(s)))
		}
	}
}

// suggestionHint turns a suggestion into the command that would act on it.
func suggestionHint(s models.Suggestion) string {
	id, _ := s.Payload["collegeId"].(string)
	switch s.Kind {
	case models.SuggestOpenCollege:
		return fmt.Sprintf("%s (college show %s)", s.Title, id)
	case models.SuggestUpdateCollege:
		return fmt.Sprintf("%s (college update %s --deadline YYYY-MM-DD)", s.Title, id)
	case models.SuggestAddCollege:
		return fmt.Sprintf("%s (lookup <name> --add)", s.Title)
	}
	return s.Title
}
