// internal/models/assistant.go
package models

// SearchResult is a single web search hit. It lives only for one query.
type SearchResult struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Content       string `json:"content"`
	PublishedDate string `json:"publishedDate,omitempty"`
}

type SuggestionKind string

const (
	SuggestOpenCollege   SuggestionKind = "open_college"
	SuggestUpdateCollege SuggestionKind = "update_college"
	SuggestAddCollege    SuggestionKind = "add_college"
)

// Suggestion is advisory metadata attached to an answer. Nothing applies it
// automatically; the caller decides whether to prompt the user.
type Suggestion struct {
	Kind    SuggestionKind         `json:"kind"`
	Title   string                 `json:"title"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

type AIResponse struct {
	Content       string         `json:"content"`
	SearchResults []SearchResult `json:"searchResults,omitempty"`
	Suggestions   []Suggestion   `json:"suggestions,omitempty"`
}
