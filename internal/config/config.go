package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/finsight-dev/finsight/internal/indicator"
	"github.com/finsight-dev/finsight/internal/period"
	"github.com/finsight-dev/finsight/pkg/errors"
)

const envPrefix = "FINSIGHT"

// Config is the full application configuration. Values are resolved in
// three layers: built-in defaults, an optional YAML file, then
// FINSIGHT_* environment variables, each layer overriding the previous.
type Config struct {
	// Provider selects the market data backend.
	Provider string `yaml:"provider" envconfig:"PROVIDER" validate:"oneof=yahoo polygon"`
	// Symbol is the ticker shown when the dashboard starts.
	Symbol string `yaml:"symbol" envconfig:"SYMBOL" validate:"required"`
	// Period is the trailing window selected on startup.
	Period string `yaml:"period" envconfig:"PERIOD" validate:"required"`
	// LookbackDays bounds how much history is fetched from the provider.
	LookbackDays int `yaml:"lookback_days" envconfig:"LOOKBACK_DAYS" validate:"gt=0"`

	PolygonAPIKey string `yaml:"polygon_api_key" envconfig:"POLYGON_API_KEY"`
	SerpAPIKey    string `yaml:"serp_api_key" envconfig:"SERP_API_KEY"`
	GoogleAPIKey  string `yaml:"google_api_key" envconfig:"GOOGLE_API_KEY"`

	// GeminiModel is the model used for analysis narratives.
	GeminiModel string `yaml:"gemini_model" envconfig:"GEMINI_MODEL" validate:"required"`

	// Indicators carries the startup control state. Its enabled
	// families are validated separately so a disabled family may stay
	// unconfigured.
	Indicators indicator.Config `yaml:"indicators" validate:"structonly"`
}

var validate = validator.New()

// Default returns the built-in configuration. It is valid on its own so
// the dashboard runs with no config file and no environment.
func Default() *Config {
	return &Config{
		Provider:     "yahoo",
		Symbol:       "AAPL",
		Period:       string(period.PeriodDefault),
		LookbackDays: 1825,
		GeminiModel:  "gemini-2.0-flash",
		Indicators:   indicator.DefaultConfig(),
	}
}

// Load resolves the configuration. path may be empty, in which case only
// defaults and environment variables apply. A .env file in the working
// directory is folded into the environment first; its absence is not an
// error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file %s", path)
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to read environment overrides", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration, including that the period selector
// parses and every enabled indicator family has a valid config.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	if _, err := period.Parse(c.Period); err != nil {
		return err
	}

	return c.Indicators.Validate()
}
