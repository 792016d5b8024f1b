package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"uadmin/internal/domain"
	"uadmin/internal/table"
)

// Config holds all configuration options for the admin client
type Config struct {
	Gateway     GatewayConfig
	Table       TableConfig
	Notify      NotifyConfig
	Server      ServerConfig
	Application ApplicationConfig
	Commands    CommandsConfig
	Keys        Keymap
}

// GatewayConfig holds the remote API settings
type GatewayConfig struct {
	BaseURL string        `env:"UADMIN_BASE_URL"`
	Timeout time.Duration `env:"UADMIN_GATEWAY_TIMEOUT"`
}

// TableConfig holds the initial table view
type TableConfig struct {
	PageSize int    `env:"UADMIN_PAGE_SIZE"`
	Filter   string `env:"UADMIN_FILTER"`
}

// NotifyConfig holds notification settings
type NotifyConfig struct {
	Duration time.Duration `env:"UADMIN_NOTIFY_DURATION"`
}

// ServerConfig holds the development API server settings
type ServerConfig struct {
	Addr       string `env:"UADMIN_SERVER_ADDR"`
	DBDir      string `env:"UADMIN_DB_DIR"`
	DBFilename string `env:"UADMIN_DB_FILENAME"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"UADMIN_APP_TIMEOUT"`
	Verbose bool          `env:"UADMIN_APP_VERBOSE"`
	LogFile string        `env:"UADMIN_LOG_FILE"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ListDefaultFormat string `env:"UADMIN_LIST_DEFAULT_FORMAT"`
}

// Keymap binds the interactive screen's actions to keys
type Keymap struct {
	Quit     string `toml:"quit"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	NextPage string `toml:"next_page"`
	PrevPage string `toml:"prev_page"`
	Filter   string `toml:"filter"`
	PageSize string `toml:"page_size"`
	Add      string `toml:"add"`
	Edit     string `toml:"edit"`
	Delete   string `toml:"delete"`
	View     string `toml:"view"`
	Refresh  string `toml:"refresh"`
	Confirm  string `toml:"confirm"`
	Cancel   string `toml:"cancel"`
	Next     string `toml:"next_field"`
	Prev     string `toml:"prev_field"`
	Help     string `toml:"help"`
}

// DefaultKeymap returns the built-in key bindings
func DefaultKeymap() Keymap {
	return Keymap{
		Quit:     "q",
		Up:       "k",
		Down:     "j",
		NextPage: "l",
		PrevPage: "h",
		Filter:   "f",
		PageSize: "s",
		Add:      "a",
		Edit:     "e",
		Delete:   "d",
		View:     "v",
		Refresh:  "r",
		Confirm:  "enter",
		Cancel:   "esc",
		Next:     "tab",
		Prev:     "shift+tab",
		Help:     "?",
	}
}

// HomeDir returns the per-user directory holding the config file, the
// development database and the log file
func HomeDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".uadmin")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	dir := HomeDir()

	return &Config{
		Gateway: GatewayConfig{
			BaseURL: "http://localhost:3000",
			Timeout: 10 * time.Second,
		},
		Table: TableConfig{
			PageSize: table.DefaultPageSize,
			Filter:   domain.FilterAllLabel,
		},
		Notify: NotifyConfig{
			Duration: 3 * time.Second,
		},
		Server: ServerConfig{
			Addr:       "localhost:3000",
			DBDir:      dir,
			DBFilename: "uadmin.db",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
			LogFile: filepath.Join(dir, "uadmin.log"),
		},
		Commands: CommandsConfig{
			ListDefaultFormat: "table",
		},
		Keys: DefaultKeymap(),
	}
}

// GetDatabasePath returns the full path to the development server database
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Server.DBDir, c.Server.DBFilename)
}

// GetFilter returns the configured initial status filter
func (c *Config) GetFilter() domain.Filter {
	f, err := domain.ParseFilter(c.Table.Filter)
	if err != nil {
		return domain.FilterAll
	}
	return f
}

// LoadFromEnvironment loads configuration from environment variables.
// Malformed values are ignored and the previous value is kept.
func (c *Config) LoadFromEnvironment() error {
	// Gateway configuration
	if base := os.Getenv("UADMIN_BASE_URL"); base != "" {
		c.Gateway.BaseURL = base
	}
	if timeout := os.Getenv("UADMIN_GATEWAY_TIMEOUT"); timeout != "" {
		c.Gateway.Timeout = ParseDurationWithFallback(timeout, c.Gateway.Timeout)
	}

	// Table configuration
	if size := os.Getenv("UADMIN_PAGE_SIZE"); size != "" {
		c.Table.PageSize = ParseIntWithFallback(size, c.Table.PageSize)
	}
	if filter := os.Getenv("UADMIN_FILTER"); filter != "" {
		c.Table.Filter = filter
	}

	// Notification configuration
	if d := os.Getenv("UADMIN_NOTIFY_DURATION"); d != "" {
		c.Notify.Duration = ParseDurationWithFallback(d, c.Notify.Duration)
	}

	// Server configuration
	if addr := os.Getenv("UADMIN_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if dir := os.Getenv("UADMIN_DB_DIR"); dir != "" {
		c.Server.DBDir = dir
	}
	if filename := os.Getenv("UADMIN_DB_FILENAME"); filename != "" {
		c.Server.DBFilename = filename
	}

	// Application configuration
	if timeout := os.Getenv("UADMIN_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("UADMIN_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if logFile := os.Getenv("UADMIN_LOG_FILE"); logFile != "" {
		c.Application.LogFile = logFile
	}

	// Commands configuration
	if format := os.Getenv("UADMIN_LIST_DEFAULT_FORMAT"); format != "" {
		c.Commands.ListDefaultFormat = format
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate gateway configuration
	u, err := url.Parse(c.Gateway.BaseURL)
	if c.Gateway.BaseURL == "" || err != nil || u.Scheme == "" || u.Host == "" {
		return &ConfigError{Field: "gateway.base_url", Message: "base URL must be an absolute http(s) URL"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ConfigError{Field: "gateway.base_url", Message: "base URL scheme must be http or https"}
	}
	if c.Gateway.Timeout <= 0 {
		return &ConfigError{Field: "gateway.timeout", Message: "gateway timeout must be positive"}
	}

	// Validate table configuration
	if !table.IsPageSize(c.Table.PageSize) {
		return &ConfigError{Field: "table.page_size", Message: "page size must be one of " + table.PageSizesLabel()}
	}
	if _, err := domain.ParseFilter(c.Table.Filter); err != nil {
		return &ConfigError{Field: "table.filter", Message: err.Error()}
	}

	// Validate notification configuration
	if c.Notify.Duration <= 0 {
		return &ConfigError{Field: "notify.duration", Message: "notification duration must be positive"}
	}

	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "server address cannot be empty"}
	}
	if c.Server.DBDir == "" {
		return &ConfigError{Field: "server.db_dir", Message: "database directory cannot be empty"}
	}
	if c.Server.DBFilename == "" {
		return &ConfigError{Field: "server.db_filename", Message: "database filename cannot be empty"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	// Validate commands configuration
	switch c.Commands.ListDefaultFormat {
	case "table", "json":
	default:
		return &ConfigError{Field: "commands.list_default_format", Message: "format must be table or json"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}
