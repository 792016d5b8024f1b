package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"uadmin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable the loader reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"UADMIN_CONFIG", "UADMIN_BASE_URL", "UADMIN_GATEWAY_TIMEOUT",
		"UADMIN_PAGE_SIZE", "UADMIN_FILTER", "UADMIN_NOTIFY_DURATION",
		"UADMIN_SERVER_ADDR", "UADMIN_DB_DIR", "UADMIN_DB_FILENAME",
		"UADMIN_APP_TIMEOUT", "UADMIN_APP_VERBOSE", "UADMIN_LOG_FILE",
		"UADMIN_LIST_DEFAULT_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "http://localhost:3000", cfg.Gateway.BaseURL)
	assert.Equal(t, 3, cfg.Table.PageSize)
	assert.Equal(t, "Todos", cfg.Table.Filter)
	assert.Equal(t, 3*time.Second, cfg.Notify.Duration)
	assert.Equal(t, "table", cfg.Commands.ListDefaultFormat)
	assert.Equal(t, "q", cfg.Keys.Quit)
	assert.True(t, cfg.GetFilter().IsAll())
	assert.Equal(t, "uadmin.db", filepath.Base(cfg.GetDatabasePath()))
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("UADMIN_BASE_URL", "https://api.example.com")
	t.Setenv("UADMIN_GATEWAY_TIMEOUT", "2s")
	t.Setenv("UADMIN_PAGE_SIZE", "10")
	t.Setenv("UADMIN_FILTER", "En Progreso")
	t.Setenv("UADMIN_NOTIFY_DURATION", "not-a-duration")
	t.Setenv("UADMIN_APP_VERBOSE", "true")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "https://api.example.com", cfg.Gateway.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 10, cfg.Table.PageSize)
	assert.Equal(t, domain.FilterBy(domain.StatusInProgress), cfg.GetFilter())
	assert.Equal(t, 3*time.Second, cfg.Notify.Duration, "malformed values keep the previous setting")
	assert.True(t, cfg.Application.Verbose)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"relative base URL", func(c *Config) { c.Gateway.BaseURL = "localhost:3000" }, "gateway.base_url"},
		{"ftp base URL", func(c *Config) { c.Gateway.BaseURL = "ftp://example.com" }, "gateway.base_url"},
		{"zero gateway timeout", func(c *Config) { c.Gateway.Timeout = 0 }, "gateway.timeout"},
		{"page size not offered", func(c *Config) { c.Table.PageSize = 4 }, "table.page_size"},
		{"unknown filter", func(c *Config) { c.Table.Filter = "Archivada" }, "table.filter"},
		{"zero notify duration", func(c *Config) { c.Notify.Duration = 0 }, "notify.duration"},
		{"empty server addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"empty db dir", func(c *Config) { c.Server.DBDir = "" }, "server.db_dir"},
		{"empty db filename", func(c *Config) { c.Server.DBFilename = "" }, "server.db_filename"},
		{"zero app timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout"},
		{"unknown list format", func(c *Config) { c.Commands.ListDefaultFormat = "csv" }, "commands.list_default_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var configErr *ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.field, configErr.Field)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[gateway]
base_url = "http://api.internal:8080"
timeout = "4s"

[table]
page_size = 5
filter = "Completada"

[keys]
quit = "x"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "http://api.internal:8080", cfg.Gateway.BaseURL)
	assert.Equal(t, 4*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 5, cfg.Table.PageSize)
	assert.Equal(t, "Completada", cfg.Table.Filter)
	assert.Equal(t, "x", cfg.Keys.Quit)
	assert.Equal(t, "a", cfg.Keys.Add, "unset keys keep their defaults")
	assert.Equal(t, 3*time.Second, cfg.Notify.Duration, "unset sections keep their defaults")
}

func TestLoadFromFile_MissingIsIgnored(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromFile(filepath.Join(t.TempDir(), "absent.toml")))
	assert.Equal(t, NewConfig(), cfg)
}

func TestLoadFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("[gateway\n"), 0o644))
	err := NewConfig().LoadFromFile(broken)
	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "file", configErr.Field)

	badDuration := filepath.Join(dir, "duration.toml")
	require.NoError(t, os.WriteFile(badDuration, []byte("[notify]\nduration = \"soon\"\n"), 0o644))
	err = NewConfig().LoadFromFile(badDuration)
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "notify.duration", configErr.Field)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	original := NewConfig()
	original.Gateway.BaseURL = "https://api.example.com"
	original.Table.PageSize = 10
	original.Notify.Duration = 5 * time.Second
	original.Keys.Help = "h"
	require.NoError(t, original.WriteFile(path))

	loaded := NewConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, original, loaded)
}
