// Package config provides configuration management for the bet journal.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Report    ReportConfig    `mapstructure:"report" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
	Secrets   SecretsConfig   `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// AnalyticsConfig tunes the performance aggregations
type AnalyticsConfig struct {
	OddsBands     []OddsBandConfig `mapstructure:"odds_bands" validate:"omitempty,oddsbands,dive"`
	MonthlyWindow int              `mapstructure:"monthly_window" validate:"gte=0,lte=120"`
	WeeklyWindow  int              `mapstructure:"weekly_window" validate:"gte=0,lte=520"`
	WeekStart     string           `mapstructure:"week_start" validate:"omitempty,weekday"`
	Insights      InsightsConfig   `mapstructure:"insights"`
}

// OddsBandConfig is one odds range; a zero max leaves the band open-ended
type OddsBandConfig struct {
	Label string  `mapstructure:"label" validate:"required"`
	Min   float64 `mapstructure:"min" validate:"gte=1"`
	Max   float64 `mapstructure:"max" validate:"gte=0"`
}

// InsightsConfig holds the insight rule thresholds
type InsightsConfig struct {
	MinSample     int     `mapstructure:"min_sample" validate:"gte=0"`
	StrikeRateGap float64 `mapstructure:"strike_rate_gap" validate:"gte=0,lte=100"`
	StreakAlert   int     `mapstructure:"streak_alert" validate:"gte=0"`
	MaxInsights   int     `mapstructure:"max_insights" validate:"gte=0"`
}

// ReportConfig represents report scheduling and caching configuration
type ReportConfig struct {
	Schedule            string `mapstructure:"schedule" validate:"required,cron"`
	CacheTTLSeconds     int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	CacheCleanupSeconds int    `mapstructure:"cache_cleanup_seconds" validate:"gte=0"`
	TopVenues           int    `mapstructure:"top_venues" validate:"gte=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// SecretsConfig controls the AWS Secrets Manager overlay
type SecretsConfig struct {
	AWSEnabled bool   `mapstructure:"aws_enabled"`
	Region     string `mapstructure:"region" validate:"required_if=AWSEnabled true"`
	SecretName string `mapstructure:"secret_name" validate:"required_if=AWSEnabled true"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// CacheTTL returns the report cache expiry
func (r ReportConfig) CacheTTL() time.Duration {
	return time.Duration(r.CacheTTLSeconds) * time.Second
}

// CacheCleanup returns the report cache purge interval, defaulting to twice the TTL
func (r ReportConfig) CacheCleanup() time.Duration {
	if r.CacheCleanupSeconds <= 0 {
		return 2 * r.CacheTTL()
	}
	return time.Duration(r.CacheCleanupSeconds) * time.Second
}
