package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Storage   StorageConfig   `mapstructure:"storage"`
	UI        UIConfig        `mapstructure:"ui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// CatalogConfig holds TMDb configuration
type CatalogConfig struct {
	APIKey           string        `mapstructure:"api_key"` // Seeds the stored key when none is saved
	BaseURL          string        `mapstructure:"base_url"`
	ImageBaseURL     string        `mapstructure:"image_base_url"`
	PlaceholderImage string        `mapstructure:"placeholder_image"`
	Language         string        `mapstructure:"language"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// AssistantConfig holds Gemini configuration
type AssistantConfig struct {
	APIKey         string `mapstructure:"api_key"`
	LiteModel      string `mapstructure:"lite_model"`
	ThinkingModel  string `mapstructure:"thinking_model"`
	SearchModel    string `mapstructure:"search_model"`
	ThinkingBudget int32  `mapstructure:"thinking_budget"`
}

// StorageConfig holds local state configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // Empty = memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultCategory string `mapstructure:"default_category"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:          "https://api.themoviedb.org/3",
			ImageBaseURL:     "https://image.tmdb.org/t/p/w500",
			PlaceholderImage: "https://picsum.photos/400/600",
			Language:         "en-US",
			Timeout:          30 * time.Second,
		},
		Assistant: AssistantConfig{
			LiteModel:      "gemini-flash-lite-latest",
			ThinkingModel:  "gemini-2.5-pro",
			SearchModel:    "gemini-2.5-flash",
			ThinkingBudget: 32768,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "state.db"),
		},
		UI: UIConfig{
			DefaultCategory: "all",
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "streamverse.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "streamverse")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "streamverse")
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "streamverse")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "streamverse")
	}
}

// LoadConfig loads configuration from .env, the default config file and environment
func LoadConfig() (*Config, error) {
	// A missing .env is fine
	_ = godotenv.Load()
	return LoadConfigFrom(DefaultConfigPath(), ".")
}

// LoadConfigFrom loads config.yaml from the first of dirs that has one,
// then applies STREAMVERSE_* environment overrides.
func LoadConfigFrom(dirs ...string) (*Config, error) {
	v := newViper(dirs...)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

func newViper(dirs ...string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Environment variable overrides: STREAMVERSE_CATALOG_API_KEY etc.
	v.SetEnvPrefix("STREAMVERSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())
	return v
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("catalog.api_key", cfg.Catalog.APIKey)
	v.SetDefault("catalog.base_url", cfg.Catalog.BaseURL)
	v.SetDefault("catalog.image_base_url", cfg.Catalog.ImageBaseURL)
	v.SetDefault("catalog.placeholder_image", cfg.Catalog.PlaceholderImage)
	v.SetDefault("catalog.language", cfg.Catalog.Language)
	v.SetDefault("catalog.timeout", cfg.Catalog.Timeout)

	v.SetDefault("assistant.api_key", cfg.Assistant.APIKey)
	v.SetDefault("assistant.lite_model", cfg.Assistant.LiteModel)
	v.SetDefault("assistant.thinking_model", cfg.Assistant.ThinkingModel)
	v.SetDefault("assistant.search_model", cfg.Assistant.SearchModel)
	v.SetDefault("assistant.thinking_budget", cfg.Assistant.ThinkingBudget)

	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("ui.default_category", cfg.UI.DefaultCategory)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// SaveConfig writes cfg to dir/config.yaml
func SaveConfig(cfg *Config, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	setDefaults(v, cfg)

	// Set fields individually to keep snake_case key names
	v.Set("catalog.api_key", cfg.Catalog.APIKey)
	v.Set("catalog.base_url", cfg.Catalog.BaseURL)
	v.Set("catalog.image_base_url", cfg.Catalog.ImageBaseURL)
	v.Set("catalog.placeholder_image", cfg.Catalog.PlaceholderImage)
	v.Set("catalog.language", cfg.Catalog.Language)
	v.Set("catalog.timeout", cfg.Catalog.Timeout.String())

	v.Set("assistant.api_key", cfg.Assistant.APIKey)
	v.Set("assistant.lite_model", cfg.Assistant.LiteModel)
	v.Set("assistant.thinking_model", cfg.Assistant.ThinkingModel)
	v.Set("assistant.search_model", cfg.Assistant.SearchModel)
	v.Set("assistant.thinking_budget", cfg.Assistant.ThinkingBudget)

	v.Set("storage.path", cfg.Storage.Path)
	v.Set("ui.default_category", cfg.UI.DefaultCategory)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
