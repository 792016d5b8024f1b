package config

import (
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	path   string
}

// NewLoader creates a new configuration loader reading the default file
func NewLoader() *Loader {
	return NewLoaderWithFile(DefaultFilePath())
}

// NewLoaderWithFile creates a loader reading the TOML file at path. An empty
// path skips the file layer.
func NewLoaderWithFile(path string) *Loader {
	return &Loader{
		config: NewConfig(),
		path:   path,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if l.path != "" {
		if err := l.config.LoadFromFile(l.path); err != nil {
			return nil, err
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	overrides.Apply(config)

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Gateway overrides
	BaseURL        *string
	GatewayTimeout *time.Duration

	// Table overrides
	PageSize *int
	Filter   *string

	// Server overrides
	ServerAddr *string
	DBDir      *string
	DBFilename *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
	LogFile *string

	// Commands overrides
	ListDefaultFormat *string
}

// Apply copies every set override into config. A nil receiver is a no-op.
func (overrides *ConfigOverrides) Apply(config *Config) {
	if overrides == nil {
		return
	}
	if overrides.BaseURL != nil {
		config.Gateway.BaseURL = *overrides.BaseURL
	}
	if overrides.GatewayTimeout != nil {
		config.Gateway.Timeout = *overrides.GatewayTimeout
	}

	if overrides.PageSize != nil {
		config.Table.PageSize = *overrides.PageSize
	}
	if overrides.Filter != nil {
		config.Table.Filter = *overrides.Filter
	}

	if overrides.ServerAddr != nil {
		config.Server.Addr = *overrides.ServerAddr
	}
	if overrides.DBDir != nil {
		config.Server.DBDir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Server.DBFilename = *overrides.DBFilename
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	if overrides.LogFile != nil {
		config.Application.LogFile = *overrides.LogFile
	}

	if overrides.ListDefaultFormat != nil {
		config.Commands.ListDefaultFormat = *overrides.ListDefaultFormat
	}
}
