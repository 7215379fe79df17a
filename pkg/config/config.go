// Package config loads application configuration from files and
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"

	"github.com/soundprediction/strata/pkg/types"
)

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Data configuration
	Data DataConfig `mapstructure:"data"`

	// Search configuration
	Search SearchConfig `mapstructure:"search"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// DataConfig holds record source configuration
type DataConfig struct {
	// Format selects the record file format: yaml or parquet.
	Format string `mapstructure:"format"`
	// Research, Investor and Founder point at the per-layer record files.
	Research string `mapstructure:"research"`
	Investor string `mapstructure:"investor"`
	Founder  string `mapstructure:"founder"`
	// StorePath, when set, stages records in a local badger database
	// so rebuilds do not re-read the record files.
	StorePath string `mapstructure:"store_path"`
	// Demo serves the built-in demo record set instead of files.
	Demo bool `mapstructure:"demo"`
}

// LayerPaths returns the configured per-layer record file paths.
func (d *DataConfig) LayerPaths() map[types.LayerID]string {
	return map[types.LayerID]string{
		types.LayerResearch: d.Research,
		types.LayerInvestor: d.Investor,
		types.LayerFounder:  d.Founder,
	}
}

// SearchConfig holds layer search configuration
type SearchConfig struct {
	TopK     int     `mapstructure:"top_k"`
	MinScore float64 `mapstructure:"min_score"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Data defaults
	viper.SetDefault("data.format", "yaml")
	viper.SetDefault("data.demo", false)

	// Search defaults
	viper.SetDefault("search.top_k", 5)
	viper.SetDefault("search.min_score", 0.1)
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if format := os.Getenv("STRATA_DATA_FORMAT"); format != "" {
		config.Data.Format = format
	}
	if path := os.Getenv("STRATA_RESEARCH_RECORDS"); path != "" {
		config.Data.Research = path
	}
	if path := os.Getenv("STRATA_INVESTOR_RECORDS"); path != "" {
		config.Data.Investor = path
	}
	if path := os.Getenv("STRATA_FOUNDER_RECORDS"); path != "" {
		config.Data.Founder = path
	}
	if path := os.Getenv("STRATA_STORE_PATH"); path != "" {
		config.Data.StorePath = path
	}
}
