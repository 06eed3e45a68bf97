package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultOrigin = "Färbergraben 16, München"

// Config holds everything the composition roots need. Credentials are
// opaque strings handed to adapter constructors.
type Config struct {
	ORS          ProviderConfig `mapstructure:"ors"`
	Bing         ProviderConfig `mapstructure:"bing"`
	Geocode      GeocodeConfig  `mapstructure:"geocode"`
	HTTP         HTTPConfig     `mapstructure:"http"`
	Server       ServerConfig   `mapstructure:"server"`
	Origin       OriginConfig   `mapstructure:"origin"`
	Destinations SourceConfig   `mapstructure:"destinations"`
	Database     DatabaseConfig `mapstructure:"database"`
	Log          LogConfig      `mapstructure:"log"`
}

type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type GeocodeConfig struct {
	Country     string `mapstructure:"country"`
	Concurrency int    `mapstructure:"concurrency"`
}

type HTTPConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	BuildTimeout time.Duration `mapstructure:"build_timeout"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type OriginConfig struct {
	Default string `mapstructure:"default"`
}

type SourceConfig struct {
	Path string `mapstructure:"path"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URL    string `mapstructure:"url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LoadDotEnv loads a .env file if present. A missing file is not an error.
func LoadDotEnv() (bool, error) {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load .env: %w", err)
	}
	return true, nil
}

// Load merges defaults, an optional YAML file and the environment
// (ORS_API_KEY overrides ors.api_key and so on).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	if cfg.Geocode.Concurrency < 1 {
		return nil, fmt.Errorf("load config: geocode.concurrency must be >= 1, got %d", cfg.Geocode.Concurrency)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ors.api_key", "")
	v.SetDefault("ors.base_url", "https://api.openrouteservice.org")
	v.SetDefault("bing.api_key", "")
	v.SetDefault("bing.base_url", "http://dev.virtualearth.net")
	v.SetDefault("geocode.country", "DE")
	v.SetDefault("geocode.concurrency", 4)
	v.SetDefault("http.timeout", 10*time.Second)
	v.SetDefault("http.build_timeout", 90*time.Second)
	v.SetDefault("server.port", "8080")
	v.SetDefault("origin.default", DefaultOrigin)
	v.SetDefault("destinations.path", "input/input_clean.xlsx")
	v.SetDefault("database.driver", "pgx")
	v.SetDefault("database.url", "")
	v.SetDefault("log.level", "info")
}

// RequireCredentials fails when a provider key is missing.
func (c *Config) RequireCredentials() error {
	if strings.TrimSpace(c.ORS.APIKey) == "" {
		return errors.New("ORS_API_KEY is required")
	}
	if strings.TrimSpace(c.Bing.APIKey) == "" {
		return errors.New("BING_API_KEY is required")
	}
	return nil
}
