// pkg/vocabulary/vocabulary.go
package vocabulary

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Load reads a vocabulary file. Sections left empty in the file keep their defaults.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v Vocabulary
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid vocabulary %s: %w", path, err)
	}

	def := Default()
	if len(v.Keywords) == 0 {
		v.Keywords = def.Keywords
	}
	if len(v.Topics) == 0 {
		v.Topics = def.Topics
	}
	if len(v.Domains) == 0 {
		v.Domains = def.Domains
	}
	if v.LongQueryThreshold <= 0 {
		v.LongQueryThreshold = def.LongQueryThreshold
	}
	for i := range v.Keywords {
		v.Keywords[i] = strings.ToLower(v.Keywords[i])
	}
	return &v, nil
}

// LoadOrDefault loads path when set, otherwise returns Default.
func LoadOrDefault(path string) (*Vocabulary, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// NeedsSearch reports whether the question mentions any search keyword.
// Matching is substring based, so "new" also matches "renewal".
func (v *Vocabulary) NeedsSearch(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range v.Keywords {
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// SearchQuery returns the text sent to the search provider. Short questions
// pass through verbatim. Long ones become their matched topic phrases plus the
// current and next calendar year, or stay verbatim when no topic matches.
func (v *Vocabulary) SearchQuery(query string, now time.Time) string {
	if utf8.RuneCountInString(query) <= v.LongQueryThreshold {
		return query
	}

	lower := strings.ToLower(query)
	var terms []string
	for _, t := range v.Topics {
		if strings.Contains(lower, strings.ToLower(t.Keyword)) {
			terms = append(terms, t.Phrase)
		}
	}
	if len(terms) == 0 {
		return query
	}

	year := now.Year()
	terms = append(terms, strconv.Itoa(year), strconv.Itoa(year+1))
	return strings.Join(terms, " ")
}
