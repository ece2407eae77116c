// internal/workers/ai-conversation/enrich-web-search/config.go
package enrichwebsearch

import (
	"time"

	"college-tracker/internal/common/config"
)

type Config struct {
	SearchAPIBaseURL string
	SearchAPIKey     string
	Timeout          time.Duration
	MaxResults       int
	SearchDepth      string
	IncludeDomains   []string
}

func LoadConfig() *Config {
	return &Config{
		SearchAPIBaseURL: "https://api.tavily.com/search",
		Timeout:          10 * time.Second,
		MaxResults:       5,
		SearchDepth:      "basic",
	}
}

// FromAppConfig maps the apis.web_search section. Domains come from the vocabulary.
func FromAppConfig(cfg config.WebSearchConfig, domains []string) *Config {
	c := LoadConfig()
	if cfg.BaseURL != "" {
		c.SearchAPIBaseURL = cfg.BaseURL
	}
	c.SearchAPIKey = cfg.APIKey
	if cfg.Timeout > 0 {
		c.Timeout = config.GetDuration(cfg.Timeout)
	}
	if cfg.MaxResults > 0 {
		c.MaxResults = cfg.MaxResults
	}
	if cfg.SearchDepth != "" {
		c.SearchDepth = cfg.SearchDepth
	}
	c.IncludeDomains = append([]string(nil), domains...)
	return c
}
