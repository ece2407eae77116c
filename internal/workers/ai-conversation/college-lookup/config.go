// internal/workers/ai-conversation/college-lookup/config.go
package collegelookup

import (
	"time"

	"college-tracker/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{Timeout: 15 * time.Second}
}

func FromAppConfig(cfg config.AssistantConfig) *Config {
	c := LoadConfig()
	if cfg.LookupTimeout > 0 {
		c.Timeout = config.GetDuration(cfg.LookupTimeout)
	}
	return c
}
