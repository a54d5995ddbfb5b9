package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	CoinGecko CoinGeckoConfig `mapstructure:"coingecko"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Uploads   UploadsConfig   `mapstructure:"uploads"`
	Stream    StreamConfig    `mapstructure:"stream"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CoinGeckoConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds one TTL per market-data bucket. Spot prices churn
// fastest, chart history slowest.
type CacheConfig struct {
	SpotPriceTTL      time.Duration `mapstructure:"spot_price_ttl"`
	MarketsTTL        time.Duration `mapstructure:"markets_ttl"`
	GlobalStatsTTL    time.Duration `mapstructure:"global_stats_ttl"`
	CoinDetailTTL     time.Duration `mapstructure:"coin_detail_ttl"`
	ChartTTL          time.Duration `mapstructure:"chart_ttl"`
	MarketCapChartTTL time.Duration `mapstructure:"market_cap_chart_ttl"`
}

type EngineConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

type AdminConfig struct {
	Password string `mapstructure:"password"`
	APIKey   string `mapstructure:"api_key"`
}

type UploadsConfig struct {
	Dir        string `mapstructure:"dir"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	PublicPath string `mapstructure:"public_path"`
}

type StreamConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	PushInterval time.Duration `mapstructure:"push_interval"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("coingecko.base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("coingecko.timeout", "15s")
	v.SetDefault("cache.spot_price_ttl", "60s")
	v.SetDefault("cache.markets_ttl", "120s")
	v.SetDefault("cache.global_stats_ttl", "120s")
	v.SetDefault("cache.coin_detail_ttl", "120s")
	v.SetDefault("cache.chart_ttl", "300s")
	v.SetDefault("cache.market_cap_chart_ttl", "120s")
	v.SetDefault("engine.enabled", true)
	v.SetDefault("engine.interval", "30s")
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.api_key", "")
	v.SetDefault("uploads.dir", "uploads/payments")
	v.SetDefault("uploads.max_size_mb", 5)
	v.SetDefault("uploads.public_path", "/uploads")
	v.SetDefault("stream.enabled", true)
	v.SetDefault("stream.push_interval", "5s")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
