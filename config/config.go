// Package config loads the JSON config file, .env and environment overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service settings. API credentials are never stored here;
// they belong to the user session.
type Config struct {
	ServerAddr   string     `json:"server_addr,omitempty"`
	LogLevel     string     `json:"log_level,omitempty"`
	LLM          LLMConfig  `json:"llm"`
	SessionTTL   Duration   `json:"session_ttl,omitempty"`
	GenerateRate RateConfig `json:"generate_rate"`
}

// LLMConfig 生成模块的模型配置。
type LLMConfig struct {
	Provider    string  `json:"provider,omitempty"`
	Model       string  `json:"model,omitempty"`
	BaseURL     string  `json:"base_url,omitempty"`
	MaxTokens   int64   `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	// APIKeyEnv names the variable the CLI reads its credential from.
	APIKeyEnv string `json:"api_key_env,omitempty"`
}

// RateConfig limits how often generation may be triggered across the server.
type RateConfig struct {
	PerSecond float64 `json:"per_second,omitempty"`
	Burst     int     `json:"burst,omitempty"`
}

// Duration is a time.Duration written as "90m" in JSON.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"30m\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

var providers = map[string]bool{"anthropic": true, "openai": true, "deepseek": true, "mock": true}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ServerAddr: ":8080",
		LogLevel:   "info",
		LLM: LLMConfig{
			Provider:    "anthropic",
			Model:       "claude-3-opus-20240229",
			MaxTokens:   4000,
			Temperature: 0.7,
			APIKeyEnv:   "ANTHROPIC_API_KEY",
		},
		SessionTTL:   Duration{2 * time.Hour},
		GenerateRate: RateConfig{PerSecond: 1, Burst: 3},
	}
}

// Load reads path over the defaults, then applies .env and SEO_* variables.
// An empty path or a missing file keeps the defaults.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, err
		default:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.ServerAddr, "SEO_SERVER_ADDR")
	setFromEnv(&cfg.LogLevel, "SEO_LOG_LEVEL")
	setFromEnv(&cfg.LLM.Provider, "SEO_LLM_PROVIDER")
	setFromEnv(&cfg.LLM.Model, "SEO_LLM_MODEL")
	setFromEnv(&cfg.LLM.BaseURL, "SEO_LLM_BASE_URL")
}

func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Validate checks the fields the service cannot run without.
func (c Config) Validate() error {
	if !providers[c.LLM.Provider] {
		return fmt.Errorf("llm provider %s not supported", c.LLM.Provider)
	}
	if c.LLM.Provider == "deepseek" && c.LLM.BaseURL == "" {
		// DeepSeek 提供 OpenAI 兼容接口，需填写 base_url。
		return errors.New("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
	}
	if c.LLM.Model == "" && c.LLM.Provider != "mock" {
		return errors.New("llm model is required")
	}
	if c.SessionTTL.Duration <= 0 {
		return errors.New("session_ttl must be positive")
	}
	return nil
}

// Credential returns the CLI credential from the configured env var.
func (c Config) Credential() string {
	if c.LLM.APIKeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(c.LLM.APIKeyEnv))
}
