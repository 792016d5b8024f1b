package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultConfigFileName is looked up under HomeDir when UADMIN_CONFIG is unset
const DefaultConfigFileName = "config.toml"

// DefaultFilePath returns $UADMIN_CONFIG or ~/.uadmin/config.toml
func DefaultFilePath() string {
	if p := os.Getenv("UADMIN_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(HomeDir(), DefaultConfigFileName)
}

// fileConfig mirrors Config for the TOML file. Unset keys stay nil so only
// what the file names overrides the defaults.
type fileConfig struct {
	Gateway struct {
		BaseURL *string `toml:"base_url"`
		Timeout *string `toml:"timeout"`
	} `toml:"gateway"`
	Table struct {
		PageSize *int    `toml:"page_size"`
		Filter   *string `toml:"filter"`
	} `toml:"table"`
	Notify struct {
		Duration *string `toml:"duration"`
	} `toml:"notify"`
	Server struct {
		Addr       *string `toml:"addr"`
		DBDir      *string `toml:"db_dir"`
		DBFilename *string `toml:"db_filename"`
	} `toml:"server"`
	Application struct {
		Timeout *string `toml:"timeout"`
		Verbose *bool   `toml:"verbose"`
		LogFile *string `toml:"log_file"`
	} `toml:"application"`
	Commands struct {
		ListDefaultFormat *string `toml:"list_default_format"`
	} `toml:"commands"`
	Keys Keymap `toml:"keys"`
}

// LoadFromFile overlays the TOML file at path onto c. A missing file is not
// an error.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &ConfigError{Field: "file", Message: err.Error()}
	}

	fc := fileConfig{Keys: c.Keys}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return &ConfigError{Field: "file", Message: fmt.Sprintf("%s: %v", path, err)}
	}
	return c.applyFile(&fc)
}

func (c *Config) applyFile(fc *fileConfig) error {
	setString(&c.Gateway.BaseURL, fc.Gateway.BaseURL)
	if err := setDuration(&c.Gateway.Timeout, fc.Gateway.Timeout, "gateway.timeout"); err != nil {
		return err
	}
	if fc.Table.PageSize != nil {
		c.Table.PageSize = *fc.Table.PageSize
	}
	setString(&c.Table.Filter, fc.Table.Filter)
	if err := setDuration(&c.Notify.Duration, fc.Notify.Duration, "notify.duration"); err != nil {
		return err
	}
	setString(&c.Server.Addr, fc.Server.Addr)
	setString(&c.Server.DBDir, fc.Server.DBDir)
	setString(&c.Server.DBFilename, fc.Server.DBFilename)
	if err := setDuration(&c.Application.Timeout, fc.Application.Timeout, "application.timeout"); err != nil {
		return err
	}
	if fc.Application.Verbose != nil {
		c.Application.Verbose = *fc.Application.Verbose
	}
	setString(&c.Application.LogFile, fc.Application.LogFile)
	setString(&c.Commands.ListDefaultFormat, fc.Commands.ListDefaultFormat)
	c.Keys = fc.Keys
	return nil
}

// WriteFile stores c as TOML at path, creating the parent directory.
func (c *Config) WriteFile(path string) error {
	fc := fileConfig{Keys: c.Keys}
	fc.Gateway.BaseURL = &c.Gateway.BaseURL
	gatewayTimeout := c.Gateway.Timeout.String()
	fc.Gateway.Timeout = &gatewayTimeout
	fc.Table.PageSize = &c.Table.PageSize
	fc.Table.Filter = &c.Table.Filter
	notifyDuration := c.Notify.Duration.String()
	fc.Notify.Duration = &notifyDuration
	fc.Server.Addr = &c.Server.Addr
	fc.Server.DBDir = &c.Server.DBDir
	fc.Server.DBFilename = &c.Server.DBFilename
	appTimeout := c.Application.Timeout.String()
	fc.Application.Timeout = &appTimeout
	fc.Application.Verbose = &c.Application.Verbose
	fc.Application.LogFile = &c.Application.LogFile
	fc.Commands.ListDefaultFormat = &c.Commands.ListDefaultFormat

	data, err := toml.Marshal(fc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string, field string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return &ConfigError{Field: field, Message: fmt.Sprintf("invalid duration %q", *v)}
	}
	*dst = d
	return nil
}
