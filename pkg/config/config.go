package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// Environment
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Dataset
	DataDir string `mapstructure:"DATA_DIR"`

	// Chart output
	ChartOut string `mapstructure:"CHART_OUT"`

	// Season filtering
	IncludePostseason bool `mapstructure:"INCLUDE_POSTSEASON"`
	KeepWeek17        bool `mapstructure:"KEEP_WEEK17"`

	// Default roster
	Players []string `mapstructure:"PLAYERS"`

	// Weight overrides, parsed from SCORING_OVERRIDES
	ScoringOverrides map[string]float64 `mapstructure:"-"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("DATA_DIR", "Data")
	viper.SetDefault("CHART_OUT", "points.png")
	viper.SetDefault("INCLUDE_POSTSEASON", false)
	viper.SetDefault("KEEP_WEEK17", false)
	viper.SetDefault("PLAYERS", "")
	viper.SetDefault("SCORING_OVERRIDES", "")

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse default roster from comma-separated string
	config.Players = nil
	if playersStr := viper.GetString("PLAYERS"); playersStr != "" {
		for _, name := range strings.Split(playersStr, ",") {
			if name = strings.TrimSpace(name); name != "" {
				config.Players = append(config.Players, name)
			}
		}
	}

	// Parse weight overrides from comma-separated category=value pairs,
	// e.g. "receptions=1,passing_tds=6"
	if overridesStr := viper.GetString("SCORING_OVERRIDES"); overridesStr != "" {
		config.ScoringOverrides = make(map[string]float64)
		for _, pair := range strings.Split(overridesStr, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			category, value, found := strings.Cut(pair, "=")
			if !found {
				return nil, fmt.Errorf("invalid scoring override %q, want category=value", pair)
			}
			weight, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid weight in scoring override %q: %w", pair, err)
			}
			config.ScoringOverrides[strings.TrimSpace(category)] = weight
		}
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
