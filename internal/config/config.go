// Package config loads application configuration from file and
// environment and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. It is passed
// explicitly into the pipeline entry points; business logic never reads
// the environment directly.
type Config struct {
	Input  InputConfig  `yaml:"input" mapstructure:"input"`
	Sink   SinkConfig   `yaml:"sink" mapstructure:"sink"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// InputConfig configures dataset ingestion.
type InputConfig struct {
	Path      string `yaml:"path" mapstructure:"path"`
	Format    string `yaml:"format" mapstructure:"format"`         // csv or xlsx
	Sheet     string `yaml:"sheet" mapstructure:"sheet"`           // xlsx only; empty = first sheet
	AliasFile string `yaml:"alias_file" mapstructure:"alias_file"` // optional YAML column-alias map
}

// SinkConfig configures where the assembled report is published.
type SinkConfig struct {
	Kind        string `yaml:"kind" mapstructure:"kind"` // file, ftp, http or none
	Key         string `yaml:"key" mapstructure:"key"`
	Dir         string `yaml:"dir" mapstructure:"dir"`
	URL         string `yaml:"url" mapstructure:"url"`
	FTPAddr     string `yaml:"ftp_addr" mapstructure:"ftp_addr"`
	FTPUser     string `yaml:"ftp_user" mapstructure:"ftp_user"`
	FTPPassword string `yaml:"ftp_password" mapstructure:"ftp_password"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	LocalCopy   string `yaml:"local_copy" mapstructure:"local_copy"`
}

// StoreConfig configures the run-history backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // sqlite or postgres
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the on-demand query server.
type ServerConfig struct {
	Port       int     `yaml:"port" mapstructure:"port"`
	RatePerSec float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	RateBurst  int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SALES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input.format", "csv")
	v.SetDefault("sink.kind", "file")
	v.SetDefault("sink.key", "processed/aggregated_sales.json")
	v.SetDefault("sink.dir", ".")
	v.SetDefault("sink.timeout_secs", 30)
	v.SetDefault("sink.local_copy", "aggregated_sales.json")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "sales-analytics.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_sec", 1)
	v.SetDefault("server.rate_burst", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
