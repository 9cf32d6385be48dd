package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("cron", validateCron)
	_ = v.RegisterValidation("oddsbands", validateOddsBands)
	_ = v.RegisterValidation("weekday", validateWeekday)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCron accepts standard five-field cron expressions and descriptors such as @monthly
func validateCron(fl validator.FieldLevel) bool {
	_, err := cron.ParseStandard(fl.Field().String())
	return err == nil
}

func validateWeekday(fl validator.FieldLevel) bool {
	day := strings.ToLower(fl.Field().String())
	switch day {
	case "sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday":
		return true
	default:
		return false
	}
}

// validateOddsBands requires ascending, contiguous bands where only the last may be open-ended
func validateOddsBands(fl validator.FieldLevel) bool {
	bands, ok := fl.Field().Interface().([]OddsBandConfig)
	if !ok {
		return false
	}
	return checkOddsBands(bands) == nil
}

func checkOddsBands(bands []OddsBandConfig) error {
	for i, b := range bands {
		last := i == len(bands)-1
		if b.Max == 0 && !last {
			return fmt.Errorf("odds band %q is open-ended but not last", b.Label)
		}
		if b.Max != 0 && b.Max <= b.Min {
			return fmt.Errorf("odds band %q max must exceed min", b.Label)
		}
		if i > 0 && b.Min != bands[i-1].Max {
			return fmt.Errorf("odds band %q must start where %q ends", b.Label, bands[i-1].Label)
		}
	}
	return nil
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	if cfg.IsProduction() && cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
	}

	if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("max_idle_connections cannot exceed max_connections")
	}

	if err := checkOddsBands(cfg.Analytics.OddsBands); err != nil {
		return fmt.Errorf("invalid analytics.odds_bands: %w", err)
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg strings.Builder
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required", "required_if":
			fmt.Fprintf(&errMsg, "- Field '%s' is required\n", field)
		case "min", "max":
			fmt.Fprintf(&errMsg, "- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			fmt.Fprintf(&errMsg, "- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			fmt.Fprintf(&errMsg, "- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			fmt.Fprintf(&errMsg, "- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "cron":
			fmt.Fprintf(&errMsg, "- Field '%s' must be a valid cron expression, got '%v'\n", field, value)
		case "oddsbands":
			fmt.Fprintf(&errMsg, "- Field '%s' must list ascending, contiguous odds bands\n", field)
		case "weekday":
			fmt.Fprintf(&errMsg, "- Field '%s' must be a day of the week, got '%v'\n", field, value)
		case "oneof":
			fmt.Fprintf(&errMsg, "- Field '%s' has invalid value '%v'\n", field, value)
		default:
			fmt.Fprintf(&errMsg, "- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg.String())
}
