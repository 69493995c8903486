// Package config provides configuration loading and validation for symptomline.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidTimezone  = errors.New("invalid timeline timezone")
	ErrInvalidLayout    = errors.New("date layout must not be empty")
	ErrInvalidTheme     = errors.New("invalid render theme")
	ErrInvalidLogLevel  = errors.New("invalid logging level")
	ErrInvalidLogFormat = errors.New("invalid logging format")
	ErrInvalidSampling  = errors.New("sample ratio must be within [0, 1]")
)

// EnvPrefix is prepended to environment overrides, e.g. SYMPTOMLINE_RENDER_THEME.
const EnvPrefix = "SYMPTOMLINE"

var (
	validThemes     = []string{"light", "dark"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Config holds all configuration for symptomline.
type Config struct {
	Timeline      TimelineConfig      `mapstructure:"timeline"`
	Render        RenderConfig        `mapstructure:"render"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// TimelineConfig controls how instants map to calendar days and labels.
type TimelineConfig struct {
	Timezone   string `mapstructure:"timezone"`
	DateLayout string `mapstructure:"date_layout"`
	AxisLayout string `mapstructure:"axis_layout"`
	// HistoryDays limits the history view to the most recent N days; 0 shows all.
	HistoryDays int `mapstructure:"history_days"`
}

// Location resolves Timezone.
func (t TimelineConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTimezone, t.Timezone, err)
	}

	return loc, nil
}

// RenderConfig controls chart output.
type RenderConfig struct {
	Theme     string `mapstructure:"theme"`
	OutputDir string `mapstructure:"output_dir"`
	Width     string `mapstructure:"width"`
	Height    string `mapstructure:"height"`
	Ephemeral bool   `mapstructure:"ephemeral"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ObservabilityConfig holds tracing and diagnostics settings.
type ObservabilityConfig struct {
	OTLPEndpoint    string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure    bool    `mapstructure:"otlp_insecure"`
	SampleRatio     float64 `mapstructure:"sample_ratio"`
	DiagnosticsAddr string  `mapstructure:"diagnostics_addr"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath searches ".", "./config" and "$HOME/.symptomline"
// for config.yaml; a missing file there is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("config")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("$HOME/.symptomline")
	}

	viperCfg.SetEnvPrefix(EnvPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Timeline: TimelineConfig{
			Timezone:    DefaultTimezone,
			DateLayout:  DefaultDateLayout,
			AxisLayout:  DefaultAxisLayout,
			HistoryDays: DefaultHistoryDays,
		},
		Render: RenderConfig{
			Theme:     DefaultTheme,
			OutputDir: DefaultOutputDir,
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Ephemeral: DefaultEphemeral,
		},
		Logging: LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Observability: ObservabilityConfig{
			OTLPEndpoint:    DefaultOTLPEndpoint,
			OTLPInsecure:    DefaultOTLPInsecure,
			SampleRatio:     DefaultSampleRatio,
			DiagnosticsAddr: DefaultDiagnosticsAddr,
		},
	}
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	// Timeline defaults.
	viperCfg.SetDefault("timeline.timezone", DefaultTimezone)
	viperCfg.SetDefault("timeline.date_layout", DefaultDateLayout)
	viperCfg.SetDefault("timeline.axis_layout", DefaultAxisLayout)
	viperCfg.SetDefault("timeline.history_days", DefaultHistoryDays)

	// Render defaults.
	viperCfg.SetDefault("render.theme", DefaultTheme)
	viperCfg.SetDefault("render.output_dir", DefaultOutputDir)
	viperCfg.SetDefault("render.width", DefaultWidth)
	viperCfg.SetDefault("render.height", DefaultHeight)
	viperCfg.SetDefault("render.ephemeral", DefaultEphemeral)

	// Logging defaults.
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	// Observability defaults.
	viperCfg.SetDefault("observability.otlp_endpoint", DefaultOTLPEndpoint)
	viperCfg.SetDefault("observability.otlp_insecure", DefaultOTLPInsecure)
	viperCfg.SetDefault("observability.sample_ratio", DefaultSampleRatio)
	viperCfg.SetDefault("observability.diagnostics_addr", DefaultDiagnosticsAddr)
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	_, err := config.Timeline.Location()
	if err != nil {
		return err
	}

	if strings.TrimSpace(config.Timeline.DateLayout) == "" || strings.TrimSpace(config.Timeline.AxisLayout) == "" {
		return ErrInvalidLayout
	}

	if !slices.Contains(validThemes, config.Render.Theme) {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, config.Render.Theme)
	}

	if !slices.Contains(validLogLevels, strings.ToLower(config.Logging.Level)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	if !slices.Contains(validLogFormats, strings.ToLower(config.Logging.Format)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	if config.Observability.SampleRatio < 0 || config.Observability.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampling, config.Observability.SampleRatio)
	}

	return nil
}
