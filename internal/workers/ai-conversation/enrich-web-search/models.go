// internal/workers/ai-conversation/enrich-web-search/models.go
package enrichwebsearch

import "college-tracker/internal/models"

type Input struct {
	Query string `json:"query"`
}

type Output struct {
	Results []models.SearchResult `json:"results"`
	// Skipped is set when no search key is configured and no request was made.
	Skipped bool `json:"skipped,omitempty"`
}

type searchRequest struct {
	APIKey            string   `json:"api_key"`
	Query             string   `json:"query"`
	SearchDepth       string   `json:"search_depth"`
	IncludeAnswer     bool     `json:"include_answer"`
	IncludeImages     bool     `json:"include_images"`
	IncludeRawContent bool     `json:"include_raw_content"`
	MaxResults        int      `json:"max_results"`
	IncludeDomains    []string `json:"include_domains"`
}

type searchResponse struct {
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Content       string  `json:"content"`
		PublishedDate string  `json:"published_date"`
		Score         float64 `json:"score"`
	} `json:"results"`
}
