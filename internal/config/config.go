package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	CFBD      CFBDConfig      `mapstructure:"cfbd"`
	ESPN      ESPNConfig      `mapstructure:"espn"`
	News      NewsConfig      `mapstructure:"news"`
	Rankings  RankingsConfig  `mapstructure:"rankings"`
	Redis     RedisConfig     `mapstructure:"redis"`
	History   HistoryConfig   `mapstructure:"history"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Betting   BettingConfig   `mapstructure:"betting"`
}

// ServerConfig holds HTTP/WebSocket listener configuration
type ServerConfig struct {
	RESTPort string `mapstructure:"rest_port"`
	WSPort   string `mapstructure:"ws_port"`
}

// CFBDConfig holds CollegeFootballData API configuration.
// An empty APIKey switches every CFBD-backed resource to the bundled
// sample dataset.
type CFBDConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ESPNConfig holds ESPN API configuration
type ESPNConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// NewsConfig holds RSS news feed configuration
type NewsConfig struct {
	Feeds []string `mapstructure:"feeds"`
}

// RankingsConfig holds AP poll scraper configuration
type RankingsConfig struct {
	PollURL string `mapstructure:"poll_url"`
	Enabled bool   `mapstructure:"enabled"`
}

// RedisConfig holds the optional cache mirror configuration
type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

// HistoryConfig holds the optional prediction history store configuration
type HistoryConfig struct {
	DSN     string `mapstructure:"dsn"`
	Enabled bool   `mapstructure:"enabled"`
}

// TelegramConfig holds strong-play alert configuration
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
	Enabled  bool   `mapstructure:"enabled"`
}

// BettingConfig holds scorer/staking parameters
type BettingConfig struct {
	KellyFraction float64 `mapstructure:"kelly_fraction"`
	MaxStakePct   float64 `mapstructure:"max_stake_pct"`
	MinEdge       float64 `mapstructure:"min_edge"`
	AlertEdge     float64 `mapstructure:"alert_edge"`
}

// Load reads configuration from an optional config file and GRIDIRON_*
// environment variables. Every key has a default, so an empty environment
// still yields a runnable (sample data) configuration.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("GRIDIRON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.rest_port", "8090")
	v.SetDefault("server.ws_port", "8091")

	v.SetDefault("cfbd.base_url", "https://api.collegefootballdata.com")
	v.SetDefault("cfbd.api_key", "")
	v.SetDefault("cfbd.timeout", 15*time.Second)

	v.SetDefault("espn.base_url", "https://site.api.espn.com/apis/site/v2/sports")

	v.SetDefault("news.feeds", []string{
		"https://www.espn.com/espn/rss/ncf/news",
		"https://www.cbssports.com/rss/headlines/college-football/",
	})

	v.SetDefault("rankings.poll_url", "https://apnews.com/hub/ap-top-25-college-football-poll")
	v.SetDefault("rankings.enabled", false)

	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("redis.enabled", false)

	v.SetDefault("history.dsn", "")
	v.SetDefault("history.enabled", false)

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", int64(0))
	v.SetDefault("telegram.enabled", false)

	v.SetDefault("betting.kelly_fraction", 0.25)
	v.SetDefault("betting.max_stake_pct", 0.25)
	v.SetDefault("betting.min_edge", 2.0)
	v.SetDefault("betting.alert_edge", 50.0)
}

func (c *Config) validate() error {
	if c.Betting.KellyFraction <= 0 || c.Betting.KellyFraction > 1 {
		return fmt.Errorf("betting.kelly_fraction must be in (0, 1], got %v", c.Betting.KellyFraction)
	}
	if c.Betting.MaxStakePct <= 0 || c.Betting.MaxStakePct > 1 {
		return fmt.Errorf("betting.max_stake_pct must be in (0, 1], got %v", c.Betting.MaxStakePct)
	}
	if c.History.Enabled && c.History.DSN == "" {
		return fmt.Errorf("history.enabled requires history.dsn")
	}
	if c.Telegram.Enabled && (c.Telegram.BotToken == "" || c.Telegram.ChatID == 0) {
		return fmt.Errorf("telegram.enabled requires bot_token and chat_id")
	}
	return nil
}

// HasCFBDKey reports whether live CollegeFootballData calls are possible
func (c *Config) HasCFBDKey() bool {
	return c.CFBD.APIKey != ""
}
