// internal/workers/ai-conversation/process-query/suggestions.go
package processquery

import (
	"regexp"
	"strings"

	"college-tracker/internal/models"
)

// ExtractSuggestions scans an answer for follow-up actions. The result is
// advisory: nothing here touches the store.
func ExtractSuggestions(answer string, colleges []models.College) []models.Suggestion {
	lower := strings.ToLower(answer)

	var named []models.College
	for _, c := range colleges {
		if mentions(answer, c.Name) {
			named = append(named, c)
		}
	}

	var out []models.Suggestion
	for _, c := range named {
		out = append(out, models.Suggestion{
			Kind:  models.SuggestOpenCollege,
			Title: "Open " + c.Name,
			Payload: map[string]interface{}{
				"collegeId": c.ID,
				"name":      c.Name,
			},
		})
	}

	if strings.Contains(lower, "update") && strings.Contains(lower, "deadline") {
		for _, c := range named {
			out = append(out, models.Suggestion{
				Kind:  models.SuggestUpdateCollege,
				Title: "Update " + c.Name + " application deadline",
				Payload: map[string]interface{}{
					"collegeId": c.ID,
					"name":      c.Name,
					"field":     "applicationDeadline",
				},
			})
		}
	}

	if len(named) == 0 && strings.Contains(lower, "add") && strings.Contains(lower, "college") {
		out = append(out, models.Suggestion{
			Kind:    models.SuggestAddCollege,
			Title:   "Add a college to your list",
			Payload: map[string]interface{}{},
		})
	}

	return out
}

// mentions reports whether name appears in text as a whole word sequence, so
// "MIT" is not found inside "submit".
func mentions(text, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	pattern := `(?i)(?:^|[^\p{L}\p{N}])` + regexp.QuoteMeta(name) + `(?:$|[^\p{L}\p{N}])`
	return regexp.MustCompile(pattern).MatchString(text)
}
