// internal/workers/ai-conversation/llm-synthesis/config.go
package llmsynthesis

import (
	"time"

	"college-tracker/internal/common/config"
)

type Config struct {
	GenAIBaseURL    string
	APIKey          string
	Model           string
	Timeout         time.Duration
	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int32
}

func LoadConfig() *Config {
	return &Config{
		Model:           "gemini-1.5-flash-latest",
		Timeout:         60 * time.Second,
		Temperature:     0.7,
		TopP:            0.8,
		TopK:            40,
		MaxOutputTokens: 2048,
	}
}

// FromAppConfig maps the apis.genai section.
func FromAppConfig(cfg config.GenAIConfig) *Config {
	c := LoadConfig()
	c.GenAIBaseURL = cfg.BaseURL
	c.APIKey = cfg.APIKey
	if cfg.Model != "" {
		c.Model = cfg.Model
	}
	if cfg.Timeout > 0 {
		c.Timeout = config.GetDuration(cfg.Timeout)
	}
	if cfg.Temperature != 0 {
		c.Temperature = cfg.Temperature
	}
	if cfg.TopP != 0 {
		c.TopP = cfg.TopP
	}
	if cfg.TopK != 0 {
		c.TopK = cfg.TopK
	}
	if cfg.MaxOutputTokens != 0 {
		c.MaxOutputTokens = cfg.MaxOutputTokens
	}
	return c
}
