// internal/workers/ai-conversation/process-query/prompt.go
package processquery

import (
	"fmt"
	"strconv"
	"strings"

	"college-tracker/internal/models"
)

const (
	systemFraming = "You are a college application assistant helping students with their college applications. " +
		"You have access to the student's current college list and can help with research, deadlines, requirements, and application tracking."

	closingInstructions = `Please provide a helpful response. If you're suggesting updates to college information, clearly indicate what should be updated. Be specific about deadlines, requirements, and application steps. If you found conflicting information, mention it.

Guidelines:
- Be encouraging and supportive
- Provide specific, actionable advice
- If information might be outdated, suggest verifying with official sources
- Keep responses conversational but informative
- If you recommend updating college data, be explicit about the changes`

	searchExcerptLimit = 500

	fallbackTemplate = `I'm having trouble connecting to my AI services right now. Here's what I can help you with:

• Research college deadlines and requirements
• Track your application progress
• Find scholarship opportunities
• Get application tips and advice

Please try your question again, or check if your API keys are properly configured.

Error details: %s`
)

// BuildPrompt assembles the single prompt sent to the generation API.
// Sections appear in a fixed order: framing, tracked colleges, profile,
// question, search results, guidelines.
func BuildPrompt(query string, colleges []models.College, profile *models.UserProfile, results []models.SearchResult) string {
	var b strings.Builder

	b.WriteString(systemFraming)
	b.WriteString("\n\nCurrent colleges the student is tracking:\n")
	for _, c := range colleges {
		writeCollege(&b, c)
	}

	if block := profileBlock(profile); block != "" {
		b.WriteString("\n")
		b.WriteString(block)
	}

	fmt.Fprintf(&b, "\nUser Question: \"%s\"\n", query)

	if len(results) > 0 {
		b.WriteString("\nI found the following recent information from web search:\n")
		for i, r := range results {
			fmt.Fprintf(&b, "\n%d. %s\n", i+1, r.Title)
			fmt.Fprintf(&b, "   URL: %s\n", r.URL)
			fmt.Fprintf(&b, "   Content: %s...\n", truncateRunes(r.Content, searchExcerptLimit))
			if r.PublishedDate != "" {
				fmt.Fprintf(&b, "   Published: %s\n", r.PublishedDate)
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(closingInstructions)
	return b.String()
}

func writeCollege(b *strings.Builder, c models.College) {
	fmt.Fprintf(b, "\n- %s (%s)\n", c.Name, c.Location)
	fmt.Fprintf(b, "  Status: %s\n", c.Status)
	fmt.Fprintf(b, "  Application Deadline: %s\n", c.ApplicationDeadline)
	if c.EarlyDeadline != "" {
		fmt.Fprintf(b, "  Early Deadline: %s\n", c.EarlyDeadline)
	}
	fmt.Fprintf(b, "  Fee: $%s\n", formatFee(c.ApplicationFee))
	fmt.Fprintf(b, "  Requirements: %s | %s | %s\n",
		strings.Join(c.Requirements.Essays, ", "),
		strings.Join(c.Requirements.TestScores, ", "),
		strings.Join(c.Requirements.Documents, ", "))
	if len(c.Scholarships) > 0 {
		fmt.Fprintf(b, "  Scholarships: %s\n", strings.Join(c.Scholarships, ", "))
	}
}

// profileBlock renders the non-empty profile fields, or "" when there are none.
func profileBlock(p *models.UserProfile) string {
	if p == nil {
		return ""
	}
	fields := []struct{ label, value string }{
		{"Grade", string(p.Grade)},
		{"Country", p.Country},
		{"GPA", p.GPA},
		{"Extracurriculars", p.Extracurriculars},
	}
	var lines []string
	for _, f := range fields {
		if v := strings.TrimSpace(f.value); v != "" {
			lines = append(lines, fmt.Sprintf("- %s: %s", f.label, v))
		}
	}
	if len(p.Subjects) > 0 {
		subjects := make([]string, 0, len(p.Subjects))
		for _, s := range p.Subjects {
			if s.Grade != "" {
				subjects = append(subjects, s.Name+" ("+s.Grade+")")
			} else {
				subjects = append(subjects, s.Name)
			}
		}
		lines = append(lines, "- Subjects: "+strings.Join(subjects, ", "))
	}
	if len(lines) == 0 {
		return ""
	}
	return "Student profile:\n" + strings.Join(lines, "\n") + "\n"
}

// FallbackContent is returned in place of an answer when generation fails.
func FallbackContent(err error) string {
	msg := "Unknown error"
	if err != nil {
		msg = err.Error()
	}
	return fmt.Sprintf(fallbackTemplate, msg)
}

func formatFee(fee float64) string {
	return strconv.FormatFloat(fee, 'f', -1, 64)
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
