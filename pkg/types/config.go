// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "platewatch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// OpenDataConfig holds settings for the source query layer.
type OpenDataConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the Socrata host serving the violation datasets.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// AppToken is the optional Socrata application token. Requests
	// without a token share a heavily throttled anonymous pool.
	AppToken string `json:"app_token,omitempty" yaml:"app_token,omitempty"`

	// MaxRetries is the retry budget per HTTP call (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// GeocodeConfig holds settings for the geocoding collaborator.
type GeocodeConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the geocoding API endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey authenticates geocoding requests.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// StorageConfig holds settings for the lookup history database.
type StorageConfig struct {
	// DBPath is the SQLite database file (default "platewatch.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// ServerConfig holds settings for the HTTP transport adapter.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigins is the CORS allow-list. Empty allows all origins.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	OpenData OpenDataConfig `json:"open_data" yaml:"open_data"`
	Geocode  GeocodeConfig  `json:"geocode" yaml:"geocode"`
	Storage  StorageConfig  `json:"storage" yaml:"storage"`
	Server   ServerConfig   `json:"server" yaml:"server"`
}
