package app

import (
	"os"
	"path/filepath"
	"time"
)

// Defaults applied by ApplyDefaults when nothing else set a value.
const (
	DefaultModel           = "gpt-3.5-turbo"
	DefaultMaxOutputTokens = 100
	DefaultTimeout         = 60 * time.Second
	DefaultWatchDebounce   = 750 * time.Millisecond
)

// Config holds runtime configuration for the application.
type Config struct {
	// LLM
	LLMBaseURL      string
	LLMModel        string
	LLMAPIKey       string
	MaxOutputTokens int
	// CachedModels, when set, is returned by model discovery without a
	// network call.
	CachedModels []string
	// Timeout bounds one keyword extraction call.
	Timeout time.Duration

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool

	// Behavior
	DryRun        bool
	Verbose       bool
	WatchDebounce time.Duration
}

// ApplyDefaults fills zero-valued fields with defaults.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = DefaultModel
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.WatchDebounce == 0 {
		cfg.WatchDebounce = DefaultWatchDebounce
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultCacheDir()
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "autolink")
	}
	return ".autolink-cache"
}
