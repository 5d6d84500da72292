package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Provider ProviderConfig `yaml:"provider" mapstructure:"provider"`
	Scoring  ScoringConfig  `yaml:"scoring" mapstructure:"scoring"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ProviderConfig configures the upstream listings provider.
type ProviderConfig struct {
	BaseURL        string  `yaml:"base_url" mapstructure:"base_url"`
	APIKey         string  `yaml:"api_key" mapstructure:"api_key"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSecond  float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	SampleSize     int     `yaml:"sample_size" mapstructure:"sample_size"`
	BroadSampleCap int     `yaml:"broad_sample_cap" mapstructure:"broad_sample_cap"`
}

// ScoringConfig gathers every scoring weight, fallback constant, and fixed
// normalization range in one place so they are visible and overridable
// without touching algorithm code.
type ScoringConfig struct {
	// Component weights; must sum to 1.0.
	PriceGrowthWeight   float64 `yaml:"price_growth_weight" mapstructure:"price_growth_weight"`
	CapRateWeight       float64 `yaml:"cap_rate_weight" mapstructure:"cap_rate_weight"`
	JobGrowthWeight     float64 `yaml:"job_growth_weight" mapstructure:"job_growth_weight"`
	AffordabilityWeight float64 `yaml:"affordability_weight" mapstructure:"affordability_weight"`

	// Aggregation fallbacks.
	LastYearPriceProxy  float64 `yaml:"last_year_price_proxy" mapstructure:"last_year_price_proxy"`
	RentRuleOfThumb     float64 `yaml:"rent_rule_of_thumb" mapstructure:"rent_rule_of_thumb"`
	PlaceholderJobGrowth float64 `yaml:"placeholder_job_growth" mapstructure:"placeholder_job_growth"`

	// Leaderboard depth.
	TopN int `yaml:"top_n" mapstructure:"top_n"`

	// Fixed plausible ranges for the single-city opportunity score, which
	// has no peer set to min-max against.
	KpiRanges KpiRangesConfig `yaml:"kpi_ranges" mapstructure:"kpi_ranges"`
}

// KpiRangesConfig holds the hand-chosen plausible ranges used to rescale
// single-city KPI components onto 0-100.
type KpiRangesConfig struct {
	PriceGrowthMin   float64 `yaml:"price_growth_min" mapstructure:"price_growth_min"`
	PriceGrowthMax   float64 `yaml:"price_growth_max" mapstructure:"price_growth_max"`
	CapRateMin       float64 `yaml:"cap_rate_min" mapstructure:"cap_rate_min"`
	CapRateMax       float64 `yaml:"cap_rate_max" mapstructure:"cap_rate_max"`
	JobGrowthMin     float64 `yaml:"job_growth_min" mapstructure:"job_growth_min"`
	JobGrowthMax     float64 `yaml:"job_growth_max" mapstructure:"job_growth_max"`
	AffordabilityMin float64 `yaml:"affordability_min" mapstructure:"affordability_min"`
	AffordabilityMax float64 `yaml:"affordability_max" mapstructure:"affordability_max"`
}

// CacheConfig configures the result cache consulted by the HTTP handlers.
type CacheConfig struct {
	Path     string        `yaml:"path" mapstructure:"path"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Disabled bool          `yaml:"disabled" mapstructure:"disabled"`
}

// ServerConfig configures the HTTP API server.
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
	v.SetEnvPrefix("MARKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, val := range Defaults() {
		v.SetDefault(key, val)
	}

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

// Defaults returns every configuration default keyed by viper path.
// Shared by Load and the `config init` starter-file writer.
func Defaults() map[string]any {
	return map[string]any{
		"provider.base_url":         "https://api.realtylistings.example.com/v2",
		"provider.timeout_secs":     20,
		"provider.rate_per_second":  5.0,
		"provider.sample_size":      500,
		"provider.broad_sample_cap": 1000,

		"scoring.price_growth_weight":    0.30,
		"scoring.cap_rate_weight":        0.30,
		"scoring.job_growth_weight":      0.20,
		"scoring.affordability_weight":   0.20,
		"scoring.last_year_price_proxy":  0.90,
		"scoring.rent_rule_of_thumb":     0.006,
		"scoring.placeholder_job_growth": 2.5,
		"scoring.top_n":                  10,

		"scoring.kpi_ranges.price_growth_min":  -10.0,
		"scoring.kpi_ranges.price_growth_max":  15.0,
		"scoring.kpi_ranges.cap_rate_min":      2.0,
		"scoring.kpi_ranges.cap_rate_max":      12.0,
		"scoring.kpi_ranges.job_growth_min":    0.0,
		"scoring.kpi_ranges.job_growth_max":    8.0,
		"scoring.kpi_ranges.affordability_min": 5.0,
		"scoring.kpi_ranges.affordability_max": 30.0,

		"cache.path": "market-cache.db",
		"cache.ttl":  "10m",

		"server.port": 8080,

		"log.level":  "info",
		"log.format": "json",
	}
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
