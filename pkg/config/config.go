package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Defaults.
const (
	DefaultPort            = 8080
	DefaultSuggestionModel = "claude-sonnet-4-20250514"
	DefaultLatexModel      = "claude-sonnet-4-20250514"
	DefaultUserID          = "default"
	configDirName          = ".cvforge"
)

// Config represents the application configuration.
type Config struct {
	UserID          string        `json:"user_id"`
	AnthropicAPIKey string        `json:"anthropic_api_key,omitempty"`
	Models          ModelsConfig  `json:"models,omitempty"`
	Store           StoreConfig   `json:"store"`
	Server          ServerConfig  `json:"server"`
	Pandoc          PandocConfig  `json:"pandoc"`
	Chrome          ChromeConfig  `json:"chrome,omitempty"`
	Defaults        DefaultConfig `json:"defaults"`
}

// ModelsConfig holds model selection for section order suggestions and LaTeX
// generation.
type ModelsConfig struct {
	Suggestion string `json:"suggestion,omitempty"`
	Latex      string `json:"latex,omitempty"`
}

// StoreConfig selects where profile snapshots live.
type StoreConfig struct {
	Driver      string `json:"driver"`
	Path        string `json:"path,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `json:"port"`
}

// PandocConfig holds pandoc-related configuration. Both fields are optional.
type PandocConfig struct {
	TemplatePath string `json:"template_path,omitempty"`
	ClassFile    string `json:"class_file,omitempty"`
}

// ChromeConfig points at a specific Chrome binary for PDF printing.
type ChromeConfig struct {
	ExecPath string `json:"exec_path,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir"`
}

// GetSuggestionModel returns the suggestion model or default if not specified.
func (c *Config) GetSuggestionModel() (model string) {
	if c.Models.Suggestion != "" {
		model = c.Models.Suggestion
		return model
	}
	model = DefaultSuggestionModel
	return model
}

// GetLatexModel returns the LaTeX generation model or default if not
// specified.
func (c *Config) GetLatexModel() (model string) {
	if c.Models.Latex != "" {
		model = c.Models.Latex
		return model
	}
	model = DefaultLatexModel
	return model
}

// DefaultPath returns ~/.cvforge/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, configDirName, "config.json")
	return path, err
}

// Load reads configuration from file with .env and environment variable
// overrides.
func Load(configPath string) (cfg Config, err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	// Read config file
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'cvforge init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	// Parse JSON
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	// A missing .env file is fine
	_ = godotenv.Load()

	err = cfg.ApplyEnv()
	if err != nil {
		return cfg, err
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// ApplyEnv overrides configuration from ANTHROPIC_API_KEY,
// CVFORGE_DATABASE_URL and CVFORGE_PORT.
func (c *Config) ApplyEnv() (err error) {
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		c.AnthropicAPIKey = apiKey
	}

	if dbURL := os.Getenv("CVFORGE_DATABASE_URL"); dbURL != "" {
		c.Store.DatabaseURL = dbURL
		if c.Store.Driver == "" {
			c.Store.Driver = DriverPostgres
		}
	}

	if port := os.Getenv("CVFORGE_PORT"); port != "" {
		c.Server.Port, err = strconv.Atoi(port)
		if err != nil {
			err = errors.Wrapf(err, "invalid CVFORGE_PORT: %s", port)
			return err
		}
	}

	return err
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() (err error) {
	if c.UserID == "" {
		c.UserID = DefaultUserID
	}

	if c.Store.Driver == "" {
		c.Store.Driver = DriverSQLite
	}

	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.Path == "" {
			var homeDir string
			homeDir, err = os.UserHomeDir()
			if err != nil {
				err = errors.Wrap(err, "failed to get user home directory")
				return err
			}
			c.Store.Path = filepath.Join(homeDir, configDirName, "profiles.db")
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			err = errors.New("store.database_url is required for the postgres driver (set in config or CVFORGE_DATABASE_URL env var)")
			return err
		}
	default:
		err = errors.Errorf("unknown store driver: %s", c.Store.Driver)
		return err
	}

	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		err = errors.Errorf("invalid server port: %d", c.Server.Port)
		return err
	}

	// Set default output_dir if not specified
	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "./output"
	}

	return err
}

// RequireAPIKey fails when no Anthropic API key is configured. Only commands
// that call the model need one.
func (c *Config) RequireAPIKey() (err error) {
	if c.AnthropicAPIKey == "" {
		err = errors.New("anthropic_api_key is required (set in config or ANTHROPIC_API_KEY env var)")
		return err
	}
	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return err
	}

	defaultConfig := Config{
		UserID: DefaultUserID,
		Store: StoreConfig{
			Driver: DriverSQLite,
			Path:   filepath.Join(homeDir, configDirName, "profiles.db"),
		},
		Server: ServerConfig{
			Port: DefaultPort,
		},
		Defaults: DefaultConfig{
			OutputDir: filepath.Join(homeDir, "Documents", "CV"),
		},
	}

	// Write to file
	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
