// Package config loads service configuration from file and environment
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Pricing     PricingConfig  `mapstructure:"pricing"`
	Analysis    AnalysisConfig `mapstructure:"analysis"`
	Logging     LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPPort     int           `mapstructure:"http_port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Debug        bool          `mapstructure:"debug"`
}

// PricingConfig holds cloud pricing resolver configuration
type PricingConfig struct {
	LookupTimeout time.Duration     `mapstructure:"lookup_timeout"`
	Endpoints     map[string]string `mapstructure:"endpoints"`
	RedisAddr     string            `mapstructure:"redis_addr"`
	RedisPassword string            `mapstructure:"redis_password"`
	RedisDB       int               `mapstructure:"redis_db"`
}

// AnalysisConfig holds analyzer tunables
type AnalysisConfig struct {
	MaxTraversalDepth     int     `mapstructure:"max_traversal_depth"`
	UnitMonthlyCost       float64 `mapstructure:"unit_monthly_cost"`
	ProcessMaturity       float64 `mapstructure:"process_maturity"`
	AutomationMaturity    float64 `mapstructure:"automation_maturity"`
	DocumentationMaturity float64 `mapstructure:"documentation_maturity"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from config.yaml (optional) and ARCHLENS_*
// environment variables, applying defaults for everything unset.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("environment", "development")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.debug", false)
	v.SetDefault("pricing.lookup_timeout", "3s")
	v.SetDefault("analysis.max_traversal_depth", 3)
	v.SetDefault("analysis.unit_monthly_cost", 450.0)
	v.SetDefault("analysis.process_maturity", 70.0)
	v.SetDefault("analysis.automation_maturity", 60.0)
	v.SetDefault("analysis.documentation_maturity", 55.0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/archlens")

	v.SetEnvPrefix("ARCHLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration invariants
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port %d", c.Server.HTTPPort)
	}
	if c.Pricing.LookupTimeout <= 0 {
		return fmt.Errorf("pricing lookup timeout must be positive")
	}
	if c.Analysis.MaxTraversalDepth <= 0 {
		return fmt.Errorf("max traversal depth must be positive")
	}
	return nil
}
