// internal/workers/ai-conversation/process-query/config.go
package processquery

import (
	"college-tracker/internal/common/config"
	"college-tracker/pkg/vocabulary"
)

type Config struct {
	// AllowSearch is the session-wide switch. A per-call false still wins.
	AllowSearch bool
	Vocabulary  *vocabulary.Vocabulary
}

func LoadConfig() *Config {
	return &Config{
		AllowSearch: true,
		Vocabulary:  vocabulary.Default(),
	}
}

// FromAppConfig maps the assistant section and loads the vocabulary override, if any.
func FromAppConfig(cfg config.AssistantConfig) (*Config, error) {
	vocab, err := vocabulary.LoadOrDefault(cfg.VocabularyPath)
	if err != nil {
		return nil, err
	}
	return &Config{
		AllowSearch: cfg.AllowSearch,
		Vocabulary:  vocab,
	}, nil
}
