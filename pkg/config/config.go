package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"RiskDesk/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		BundleTopic  string   `yaml:"bundle_topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
	MarketData struct {
		APIKey         string        `yaml:"api_key"`
		BaseURL        string        `yaml:"base_url"`
		WebSocketURL   string        `yaml:"websocket_url"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
		CacheTTL       time.Duration `yaml:"cache_ttl"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay"`
		PingInterval   time.Duration `yaml:"ping_interval"`
	} `yaml:"marketdata"`
	Universe struct {
		Watchlist    []string `yaml:"watchlist"`
		IndexTickers []string `yaml:"index_tickers"`
	} `yaml:"universe"`
	Risk struct {
		RiskPerTradePct  float64 `yaml:"risk_per_trade_pct"`
		HardStopPct      float64 `yaml:"hard_stop_pct"`
		ProfitTargetPct  float64 `yaml:"profit_target_pct"`
		TrailingStopPct  float64 `yaml:"trailing_stop_pct"`
		TimeStopDays     int     `yaml:"time_stop_days"`
		ATRMultiplier    float64 `yaml:"atr_multiplier"`
		ATRPeriod        int     `yaml:"atr_period"`
		MaxPortfolioHeat float64 `yaml:"max_portfolio_heat"`
		BreakoutWindow   int     `yaml:"breakout_window"`
		RegimeMAPeriod   int     `yaml:"regime_ma_period"`
	} `yaml:"risk"`
	Portfolio struct {
		SnapshotPath string `yaml:"snapshot_path"`
	} `yaml:"portfolio"`
	Bundle struct {
		LookbackDays int           `yaml:"lookback_days"`
		Timeout      time.Duration `yaml:"timeout"`
		CronSpec     string        `yaml:"cron_spec"`
	} `yaml:"bundle"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("MARKETDATA_API_KEY"); v != "" {
		c.MarketData.APIKey = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		c.Universe.Watchlist = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_BUNDLE_TOPIC"); v != "" {
		c.Kafka.BundleTopic = v
	}
	if v := os.Getenv("PORTFOLIO_SNAPSHOT"); v != "" {
		c.Portfolio.SnapshotPath = v
	}
	if v := os.Getenv("BUNDLE_LOOKBACK_DAYS"); v != "" {
		c.Bundle.LookbackDays = util.ParseIntDefault(v, c.Bundle.LookbackDays)
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.MarketData.APIKey == "" {
		return fmt.Errorf("marketdata.api_key is required")
	}
	if c.MarketData.BaseURL == "" {
		return fmt.Errorf("marketdata.base_url is required")
	}
	if len(c.Universe.Watchlist) == 0 {
		return fmt.Errorf("universe.watchlist cannot be empty")
	}
	if len(c.Universe.IndexTickers) == 0 {
		return fmt.Errorf("universe.index_tickers cannot be empty")
	}
	if c.Portfolio.SnapshotPath == "" {
		return fmt.Errorf("portfolio.snapshot_path is required")
	}
	return nil
}
