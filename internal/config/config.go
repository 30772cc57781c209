package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. It is constructed once
// per process and passed into constructors; nothing reads it globally.
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset" mapstructure:"dataset"`
	Geo       GeoConfig       `yaml:"geo" mapstructure:"geo"`
	Narrative NarrativeConfig `yaml:"narrative" mapstructure:"narrative"`
	Scoring   ScoringConfig   `yaml:"scoring" mapstructure:"scoring"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DatasetConfig configures where pre-computed endpoint datasets are loaded
// from. Sources are tried in order: snapshot store (when a driver is set),
// blob store, local files, FTP archive.
type DatasetConfig struct {
	Driver      string  `yaml:"driver" mapstructure:"driver"` // "", "sqlite", "postgres"
	DatabaseURL string  `yaml:"database_url" mapstructure:"database_url"`
	BlobBaseURL string  `yaml:"blob_base_url" mapstructure:"blob_base_url"`
	BlobRPS     float64 `yaml:"blob_rps" mapstructure:"blob_rps"`
	BlobBurst   int     `yaml:"blob_burst" mapstructure:"blob_burst"`
	DataDir     string  `yaml:"data_dir" mapstructure:"data_dir"`
	FTPAddr     string  `yaml:"ftp_addr" mapstructure:"ftp_addr"`
	FTPUser     string  `yaml:"ftp_user" mapstructure:"ftp_user"`
	FTPPassword string  `yaml:"ftp_password" mapstructure:"ftp_password"`
	FTPDir      string  `yaml:"ftp_dir" mapstructure:"ftp_dir"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// GeoConfig configures the geographic resolver.
type GeoConfig struct {
	ShapefilePath string `yaml:"shapefile_path" mapstructure:"shapefile_path"`
}

// NarrativeConfig holds Anthropic API settings for the narrative layer.
type NarrativeConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ServerConfig configures the query API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("INSIGHTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("dataset.driver", "")
	v.SetDefault("dataset.data_dir", "./data")
	v.SetDefault("dataset.blob_rps", 4.0)
	v.SetDefault("dataset.blob_burst", 8)
	v.SetDefault("dataset.timeout_secs", 30)
	v.SetDefault("narrative.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("narrative.max_tokens", 1024)

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
	if cfg.Scoring.IntentBonuses == nil {
		cfg.Scoring = DefaultScoringConfig()
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
