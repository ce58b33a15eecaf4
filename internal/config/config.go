package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Confluence ConfluenceConfig `yaml:"confluence"`
	Legacy     LegacyConfig     `yaml:"legacy"`
	Cache      CacheConfig      `yaml:"cache"`
	Log        LogConfig        `yaml:"log"`
}

type ConfluenceConfig struct {
	BaseURL  string `yaml:"base_url"`
	Username string `yaml:"username"`
	APIToken string `yaml:"api_token"`
	SpaceKey string `yaml:"space_key"`
}

// LegacyConfig selects the retired RPC endpoint when Token is set.
type LegacyConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

type CacheConfig struct {
	RedisAddr string        `yaml:"redis_addr"`
	KeyPrefix string        `yaml:"key_prefix"`
	TTL       time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

func Load(path string) (*Config, error) {
	config, err := parse(path)
	if err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// LoadForSpace loads config for commands scoped to a single space; space_key
// must be present in the file since there is no flag fallback.
func LoadForSpace(path string) (*Config, error) {
	config, err := parse(path)
	if err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if config.Confluence.SpaceKey == "" {
		return nil, fmt.Errorf("invalid config: confluence.space_key is required")
	}
	return config, nil
}

func parse(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &config, nil
}

func (c *Config) validate() error {
	if c.Confluence.BaseURL == "" {
		return fmt.Errorf("confluence.base_url is required")
	}
	if c.Legacy.Token != "" {
		if c.Legacy.URL == "" {
			return fmt.Errorf("legacy.url is required when legacy.token is set")
		}
		return nil
	}
	if c.Confluence.Username == "" {
		return fmt.Errorf("confluence.username is required")
	}
	if c.Confluence.APIToken == "" {
		return fmt.Errorf("confluence.api_token is required")
	}
	return nil
}

// UseLegacy reports whether the legacy RPC variant should be constructed.
func (c *Config) UseLegacy() bool {
	return c.Legacy.Token != ""
}
