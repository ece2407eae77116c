// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const appDirName = "college-tracker"

// Load reads config.yaml (and config.<env>.yaml) from the usual locations.
// A missing file is fine: every setting has a default.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, appDirName))
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	// APIS_GENAI_API_KEY style overrides
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// bools whose zero value is not the default
	v.SetDefault("assistant.allow_search", true)
	v.SetDefault("metrics.enabled", true)
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{".env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills secrets from the conventional variable names
// when the config file left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.APIs.GenAI.APIKey == "" {
		cfg.APIs.GenAI.APIKey = firstEnv("GEMINI_API_KEY", "GENAI_API_KEY")
	}
	if cfg.APIs.WebSearch.APIKey == "" {
		cfg.APIs.WebSearch.APIKey = firstEnv("TAVILY_API_KEY", "WEB_SEARCH_API_KEY")
	}
	if cfg.Storage.Redis.Address == "" {
		cfg.Storage.Redis.Address = os.Getenv("REDIS_ADDRESS")
	}
	if cfg.Storage.Postgres.URL == "" {
		cfg.Storage.Postgres.URL = os.Getenv("DATABASE_URL")
	}
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if val := os.Getenv(name); val != "" {
			return val
		}
	}
	return ""
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = appDirName
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Generation defaults
	g := &cfg.APIs.GenAI
	if g.BaseURL == "" {
		g.BaseURL = "https://generativelanguage.googleapis.com/"
	}
	if g.Model == "" {
		g.Model = "gemini-1.5-flash-latest"
	}
	if g.Timeout == 0 {
		g.Timeout = 60000
	}
	if g.Temperature == 0 {
		g.Temperature = 0.7
	}
	if g.TopP == 0 {
		g.TopP = 0.8
	}
	if g.TopK == 0 {
		g.TopK = 40
	}
	if g.MaxOutputTokens == 0 {
		g.MaxOutputTokens = 2048
	}

	// Search defaults
	s := &cfg.APIs.WebSearch
	if s.BaseURL == "" {
		s.BaseURL = "https://api.tavily.com/search"
	}
	if s.Timeout == 0 {
		s.Timeout = 10000
	}
	if s.MaxResults == 0 {
		s.MaxResults = 5
	}
	if s.SearchDepth == "" {
		s.SearchDepth = "basic"
	}

	// Storage defaults
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "file"
	}
	if cfg.Storage.File.Dir == "" {
		cfg.Storage.File.Dir = defaultDataDir()
	}
	if cfg.Storage.Redis.KeyPrefix == "" {
		cfg.Storage.Redis.KeyPrefix = appDirName + ":"
	}
	if cfg.Storage.Postgres.Port == 0 {
		cfg.Storage.Postgres.Port = 5432
	}
	if cfg.Storage.Postgres.MaxConnections == 0 {
		cfg.Storage.Postgres.MaxConnections = 5
	}
	if cfg.Storage.Postgres.MaxIdle == 0 {
		cfg.Storage.Postgres.MaxIdle = 2
	}
	if cfg.Storage.Postgres.SSLMode == "" {
		cfg.Storage.Postgres.SSLMode = "disable"
	}

	if cfg.Assistant.LookupTimeout == 0 {
		cfg.Assistant.LookupTimeout = 15000
	}

	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = "127.0.0.1:9464"
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "college_tracker"
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName, "data")
	}
	return filepath.Join(".", "."+appDirName)
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	switch cfg.Storage.Backend {
	case "file":
		if cfg.Storage.File.Dir == "" {
			return fmt.Errorf("storage.file.dir is required")
		}
	case "redis":
		if cfg.Storage.Redis.Address == "" {
			return fmt.Errorf("storage.redis.address is required for the redis backend")
		}
	case "postgres":
		p := cfg.Storage.Postgres
		if p.URL == "" && (p.Host == "" || p.Database == "" || p.User == "") {
			return fmt.Errorf("storage.postgres.url or host, database and user are required for the postgres backend")
		}
	default:
		return fmt.Errorf("storage.backend %q is not one of file, redis, postgres", cfg.Storage.Backend)
	}

	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q is not one of json, console", cfg.Logging.Format)
	}

	if cfg.APIs.WebSearch.MaxResults < 0 {
		return fmt.Errorf("apis.web_search.max_results must not be negative")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// Default returns a configuration with every default applied and no file read.
func Default() *Config {
	cfg := &Config{
		Assistant: AssistantConfig{AllowSearch: true},
		Metrics:   MetricsConfig{Enabled: true},
	}
	applyDefaults(cfg)
	return cfg
}
