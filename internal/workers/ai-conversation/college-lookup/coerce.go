// internal/workers/ai-conversation/college-lookup/coerce.go
package collegelookup

import (
	"regexp"
	"strings"

	"college-tracker/internal/common/validation"
	"college-tracker/internal/models"

	"github.com/spf13/cast"
)

var leadingNumber = regexp.MustCompile(`^[\s$]*([0-9][0-9,]*(?:\.[0-9]+)?)`)

// collegeFromObject maps a recovered object onto a College. Missing or
// mistyped fields fall back to their zero values.
func collegeFromObject(obj map[string]interface{}) models.College {
	reqs, _ := obj["requirements"].(map[string]interface{})

	return models.College{
		Name:                strings.TrimSpace(stringField(obj, "name")),
		Location:            stringField(obj, "location"),
		ApplicationDeadline: stringField(obj, "applicationDeadline"),
		EarlyDeadline:       stringField(obj, "earlyDeadline"),
		ApplicationFee:      feeField(obj["applicationFee"]),
		PortalLink:          linkField(stringField(obj, "portalLink")),
		Requirements: models.Requirements{
			Essays:     listField(reqs, "essays"),
			TestScores: listField(reqs, "testScores"),
			Documents:  listField(reqs, "documents"),
		},
		Scholarships: listField(obj, "scholarships"),
		Notes:        stringField(obj, "notes"),
		Status:       models.StatusNotStarted,
	}
}

func stringField(obj map[string]interface{}, key string) string {
	v, ok := obj[key]
	if !ok || v == nil {
		return ""
	}
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return ""
	}
	return strings.TrimSpace(cast.ToString(v))
}

// linkField keeps a usable portal URL. A bare host gets https://, anything
// else is dropped.
func linkField(raw string) string {
	if raw == "" || validation.ValidateURL(raw) {
		return raw
	}
	if withScheme := "https://" + raw; !strings.Contains(raw, "://") && validation.ValidateURL(withScheme) {
		return withScheme
	}
	return ""
}

// feeField accepts a number or a string starting with one ("90 USD", "$1,000").
func feeField(v interface{}) float64 {
	var fee float64
	switch val := v.(type) {
	case string:
		m := leadingNumber.FindStringSubmatch(val)
		if m == nil {
			return 0
		}
		fee = cast.ToFloat64(strings.ReplaceAll(m[1], ",", ""))
	default:
		fee = cast.ToFloat64(val)
	}
	if fee < 0 {
		return 0
	}
	return fee
}

// listField accepts an array or a comma-separated string.
func listField(obj map[string]interface{}, key string) []string {
	if obj == nil {
		return []string{}
	}
	out := []string{}
	switch val := obj[key].(type) {
	case []interface{}:
		for _, item := range val {
			if s := strings.TrimSpace(cast.ToString(item)); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, part := range strings.Split(val, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
