// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "evidence-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// WebSearchConfig holds settings for the direct web-search path.
type WebSearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the Google Custom Search API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// EngineID is the custom search engine identifier (cx).
	EngineID string `json:"engine_id,omitempty" yaml:"engine_id,omitempty"`

	// MaxPages bounds pagination; with PageSize 10 the default of 10
	// pages covers up to 100 results.
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// PageSize is the number of results requested per page (max 10 for
	// the Custom Search API).
	PageSize int `json:"page_size" yaml:"page_size"`

	// InterPageDelay is the wait between page fetches, respecting
	// provider rate limits (default 500ms).
	InterPageDelay time.Duration `json:"inter_page_delay" yaml:"inter_page_delay"`
}

// AISearchConfig holds settings for the generative-AI fallback path.
type AISearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Model is the generative model identifier.
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts on rate-limited AI
	// calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// DateResolveConfig holds settings for source-page date inspection.
type DateResolveConfig struct {
	HTTPConfig `yaml:",inline"`

	// PageCacheSize is the number of fetched source pages kept in the
	// in-session cache (default 128).
	PageCacheSize int `json:"page_cache_size" yaml:"page_cache_size"`
}

// LoggingConfig holds settings for diagnostic logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// FilePath is the rotated log file; empty means stderr only.
	FilePath string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	WebSearch   WebSearchConfig   `json:"web_search" yaml:"web_search"`
	AISearch    AISearchConfig    `json:"ai_search" yaml:"ai_search"`
	DateResolve DateResolveConfig `json:"date_resolve" yaml:"date_resolve"`
	Logging     LoggingConfig     `json:"logging" yaml:"logging"`
}

// Defaults returns the pipeline configuration with default values
// applied for any unset field.
func (c PipelineConfig) Defaults() PipelineConfig {
	if c.WebSearch.Timeout == 0 {
		c.WebSearch.Timeout = 30 * time.Second
	}
	if c.WebSearch.UserAgent == "" {
		c.WebSearch.UserAgent = "evidence-engine/0.1"
	}
	if c.WebSearch.MaxPages == 0 {
		c.WebSearch.MaxPages = 10
	}
	if c.WebSearch.PageSize == 0 {
		c.WebSearch.PageSize = 10
	}
	if c.WebSearch.InterPageDelay == 0 {
		c.WebSearch.InterPageDelay = 500 * time.Millisecond
	}
	if c.AISearch.Timeout == 0 {
		c.AISearch.Timeout = 120 * time.Second
	}
	if c.AISearch.Model == "" {
		c.AISearch.Model = "gemini-2.5-flash-preview-04-17"
	}
	if c.AISearch.MaxRetries == 0 {
		c.AISearch.MaxRetries = 3
	}
	if c.DateResolve.Timeout == 0 {
		c.DateResolve.Timeout = 15 * time.Second
	}
	if c.DateResolve.UserAgent == "" {
		c.DateResolve.UserAgent = "Mozilla/5.0 (compatible; TrademarkBot/1.0)"
	}
	if c.DateResolve.PageCacheSize == 0 {
		c.DateResolve.PageCacheSize = 128
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	return c
}
