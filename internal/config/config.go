package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/salish-sea/orcastat/internal/encounter"
)

// Config holds the full application configuration.
type Config struct {
	Data      DataConfig       `yaml:"data" mapstructure:"data"`
	Density   DensityConfig    `yaml:"density" mapstructure:"density"`
	Encounter encounter.Config `yaml:"encounter" mapstructure:"encounter"`
	Pods      PodsConfig       `yaml:"pods" mapstructure:"pods"`
	Server    ServerConfig     `yaml:"server" mapstructure:"server"`
	Log       LogConfig        `yaml:"log" mapstructure:"log"`
}

// DataConfig points at the sighting datasets. Path is the cleaned dataset
// used for location, probability, and pod queries; ArchivePath is the full
// history feeding the inter-arrival model and defaults to Path when unset.
type DataConfig struct {
	Path        string `yaml:"path" mapstructure:"path"`
	ArchivePath string `yaml:"archive_path" mapstructure:"archive_path"`
}

// Archive returns the dataset feeding the inter-arrival model.
func (d DataConfig) Archive() string {
	if d.ArchivePath != "" {
		return d.ArchivePath
	}
	return d.Path
}

// DensityConfig configures the density grid.
type DensityConfig struct {
	Scale float64 `yaml:"scale" mapstructure:"scale"` // bins per degree
}

// PodsConfig names the known pods, in tie-break order.
type PodsConfig struct {
	Labels []string `yaml:"labels" mapstructure:"labels"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port      int     `yaml:"port" mapstructure:"port"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per second
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
	v.SetEnvPrefix("ORCASTAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("density.scale", 100)
	v.SetDefault("encounter.daily_range", encounter.DefaultDailyRange)
	v.SetDefault("encounter.point_radius", encounter.DefaultPointRadius)
	v.SetDefault("encounter.trials", encounter.DefaultTrials)
	v.SetDefault("encounter.seed", 0)
	v.SetDefault("pods.labels", []string{"J", "K", "L"})
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20)
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
