package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App       AppConfig                 `yaml:"app"`
	Server    ServerConfig              `yaml:"server"`
	Providers map[string]ProviderConfig `yaml:"providers"`
	History   HistoryConfig             `yaml:"history"`
	Memory    MemoryConfig              `yaml:"memory"`
	Audit     AuditConfig               `yaml:"audit"`
	Speech    SpeechConfig              `yaml:"speech"`
}

type AppConfig struct {
	Name      string `yaml:"name"`
	PromptDir string `yaml:"prompt_dir"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr"`
	AuthToken string `yaml:"auth_token"`
}

type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url,omitempty"`
	Enabled bool   `yaml:"enabled"`
}

type HistoryConfig struct {
	Path               string `yaml:"path"`
	MaxConsecutiveDays int    `yaml:"max_consecutive_days"`
	WeeklyGoal         int    `yaml:"weekly_goal"`
}

type MemoryConfig struct {
	Path string `yaml:"path"`
}

type AuditConfig struct {
	Path string `yaml:"path"`
}

type SpeechConfig struct {
	APIKey  string `yaml:"api_key"`
	VoiceID string `yaml:"voice_id"`
	Enabled bool   `yaml:"enabled"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "coachd"
	}
	if c.App.PromptDir == "" {
		c.App.PromptDir = "./prompts"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8088"
	}
	if c.History.Path == "" {
		c.History.Path = "data/workout_history.json"
	}
	if c.History.MaxConsecutiveDays == 0 {
		c.History.MaxConsecutiveDays = 3
	}
	if c.History.WeeklyGoal == 0 {
		c.History.WeeklyGoal = 4
	}
	if c.Memory.Path == "" {
		c.Memory.Path = "data/memory.db"
	}
	if c.Audit.Path == "" {
		c.Audit.Path = "logs/audit.jsonl"
	}
}

func (c *Config) validate() error {
	if c.Server.AuthToken == "" {
		return fmt.Errorf("server.auth_token is required")
	}
	if c.Speech.Enabled && c.Speech.APIKey == "" {
		return fmt.Errorf("speech.api_key is required when speech is enabled")
	}
	return nil
}

// GetDefaultProvider returns the first enabled provider
func (c *Config) GetDefaultProvider() (string, ProviderConfig) {
	for name, p := range c.Providers {
		if p.Enabled {
			return name, p
		}
	}
	return "", ProviderConfig{}
}
