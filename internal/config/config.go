package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents runtime configuration for the service.
type Config struct {
	BasicConfig BasicConfig               `json:"basic_config"`
	Providers   map[string]ProviderConfig `json:"providers"`
}

type ProviderConfig struct {
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
	APIKey  string `json:"api_key"`
}

type BasicConfig struct {
	ServerAddress      string `json:"server_address"`
	Provider           string `json:"provider"`
	TranscriptionModel string `json:"transcription_model"`
}

// apiKeyEnv maps a provider name to the environment variable consulted
// when the config file carries no key for it.
var apiKeyEnv = map[string]string{
	"openai": "OPENAI_API_KEY",
	"claude": "ANTHROPIC_API_KEY",
	"gemini": "GEMINI_API_KEY",
}

// Load reads configuration from the provided path (defaults to config.json).
// A missing file is not an error: the service starts on defaults plus
// whatever API keys the environment provides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.json"
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	cfg := defaults()
	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("open config %s: %w", absPath, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	fillDefaults(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	fillDefaults(cfg)
	return cfg
}

func fillDefaults(cfg *Config) {
	if cfg.BasicConfig.ServerAddress == "" {
		cfg.BasicConfig.ServerAddress = ":5000"
	}
	if cfg.BasicConfig.Provider == "" {
		cfg.BasicConfig.Provider = "openai"
	}
	if cfg.BasicConfig.TranscriptionModel == "" {
		cfg.BasicConfig.TranscriptionModel = "whisper-1"
	}
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	if prov := cfg.Providers["openai"]; prov.Model == "" {
		prov.Model = "gpt-4o-mini"
		cfg.Providers["openai"] = prov
	}
}

// Provider returns the configuration for the named provider, resolving a
// missing API key from the environment.
func (c *Config) Provider(name string) ProviderConfig {
	prov := c.Providers[name]
	if prov.APIKey == "" {
		if env, ok := apiKeyEnv[name]; ok {
			prov.APIKey = os.Getenv(env)
		}
	}
	return prov
}
