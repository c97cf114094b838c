// Load envs from .env
// Load YAML config
// Apply env overrides
// Provide default values

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	APIBaseURL string `yaml:"api_base_url" env:"RECRUITART_API_URL"`

	//Search criteria
	Keywords  []string `yaml:"keywords"`
	Locations []string `yaml:"locations"`

	//Telegram reporting (optional: empty token disables it)
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`

	//Paths
	TokenPath   string `yaml:"token_path" env:"RECRUITART_TOKEN_PATH"`
	CachePath   string `yaml:"cache_path" env:"RECRUITART_CACHE_PATH"`
	HistoryPath string `yaml:"history_path" env:"RECRUITART_HISTORY_PATH"`

	// yaml can't decode "90s" straight into a time.Duration, so the raw
	// string is parsed after loading
	PollInterval    time.Duration `yaml:"-" env:"RECRUITART_POLL_INTERVAL"`
	RawPollInterval string        `yaml:"poll_interval"`
}

// Load reads configs/config.yaml (when present), then lets environment
// variables override, then fills defaults.
func Load() (*Config, error) {
	return LoadFile("configs/config.yaml")
}

func LoadFile(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("⚠️ Could not read config file, relying on env")
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	//Override with env vars
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	//Set default values if not set
	if cfg.TokenPath == "" {
		cfg.TokenPath = ".recruitart/tokens.json"
	}
	if cfg.CachePath == "" {
		cfg.CachePath = ".recruitart/cache"
	}
	if cfg.HistoryPath == "" {
		cfg.HistoryPath = ".recruitart/history.db"
	}
	if cfg.PollInterval == 0 && cfg.RawPollInterval != "" {
		d, err := time.ParseDuration(cfg.RawPollInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid poll_interval %q: %w", cfg.RawPollInterval, err)
		}
		cfg.PollInterval = d
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Minute
	}

	//Validate required fields
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url is required (or set RECRUITART_API_URL)")
	}

	return cfg, nil
}

// MustLoad is Load for mains.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to load config")
	}
	return cfg
}

// ReporterEnabled reports whether Telegram settings are complete.
func (c *Config) ReporterEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
