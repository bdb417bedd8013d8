package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultTickers is the dashboard's ticker list when none is configured.
var DefaultTickers = []string{
	"SPY", "QQQ", "VTI", "GLD", "VWO", "DFAI", "DISV", "DFIS", "IXUS", "VEU",
	"VSS", "VIGI", "VXUS", "AAPL", "MSFT", "GOOGL", "INTC", "NVDA", "TCEHY", "BAYRY",
	"YUMC", "BABA", "LYG", "NTES", "SWGAY", "TIGO", "BMWYY", "RHHBY", "MA", "SHOP",
	"TSLA", "META", "DIS", "ZM", "ISRG", "HD", "PFE", "EL", "RCL", "V",
}

// Config holds all application configuration.
type Config struct {
	Server struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8050" validate:"min=1,max=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"json" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	DataSource struct {
		BaseURL      string        `yaml:"base_url" validate:"omitempty,url"`
		APIKey       string        `yaml:"api_key"`
		YahooBaseURL string        `yaml:"yahoo_base_url" default:"https://query1.finance.yahoo.com" validate:"url"`
		Timeout      time.Duration `yaml:"timeout" default:"30s"`
	} `yaml:"data_source"`
	Engine struct {
		ShortWindow int `yaml:"short_window" default:"50" validate:"min=1"`
		LongWindow  int `yaml:"long_window" default:"200" validate:"min=1"`
		RSIPeriod   int `yaml:"rsi_period" default:"14" validate:"min=1"`
	} `yaml:"engine"`
	Dashboard struct {
		Tickers              []string `yaml:"tickers"`
		DefaultLookbackYears int      `yaml:"default_lookback_years" default:"1" validate:"min=1,max=5"`
	} `yaml:"dashboard"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
		APIBase  string `yaml:"api_base" default:"https://api.telegram.org" validate:"url"`
		Polling  bool   `yaml:"polling"`
	} `yaml:"telegram"`
	Digest struct {
		Enabled       bool     `yaml:"enabled"`
		Cron          string   `yaml:"cron" default:"0 30 22 * * 1-5"`
		LookbackYears int      `yaml:"lookback_years" default:"1" validate:"min=1,max=5"`
		Watchlist     []string `yaml:"watchlist"`
	} `yaml:"digest"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy" validate:"omitempty,url"`
}

var validate = validator.New()

// Load fills defaults, reads config from a YAML file, then applies .env and
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if len(cfg.Dashboard.Tickers) == 0 {
		cfg.Dashboard.Tickers = append([]string(nil), DefaultTickers...)
	}
	if len(cfg.Digest.Watchlist) == 0 {
		cfg.Digest.Watchlist = append([]string(nil), cfg.Dashboard.Tickers...)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse HTTP_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DIGEST_CRON"); v != "" {
		cfg.Digest.Cron = v
		cfg.Digest.Enabled = true
	}
	if v := os.Getenv("TICKERS"); v != "" {
		cfg.Dashboard.Tickers = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToUpper(p))
		}
	}
	return out
}

// Validate checks field constraints and cross-field requirements.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s failed %q validation (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("validate config: %w", err)
	}
	if c.Engine.ShortWindow > c.Engine.LongWindow {
		return fmt.Errorf("engine.short_window (%d) must not exceed engine.long_window (%d)",
			c.Engine.ShortWindow, c.Engine.LongWindow)
	}
	if c.Digest.Enabled || c.Telegram.Polling {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when digest or polling is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when digest or polling is enabled")
		}
	}
	return nil
}

// NotifierEnabled reports whether Telegram credentials are configured.
func (c *Config) NotifierEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
