package config

import (
	"fmt"
	"strings"
)

// Lower bounds for the chart so axes, ticks and legend still fit
const (
	MinChartWidth  = 200
	MinChartHeight = 100
)

// ValidationError is a single invalid config value
type ValidationError struct {
	Field   string // config key, e.g. "chart.width"
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every invalid value found
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Validate checks c and returns every problem found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(c.Input) == "" {
		errs = append(errs, ValidationError{Field: "input", Value: c.Input, Message: "roster file is required"})
	}
	if strings.TrimSpace(c.Output) == "" && (c.Export.ZWO || c.Export.PNG) {
		errs = append(errs, ValidationError{Field: "output", Value: c.Output, Message: "output directory is required when exporting files"})
	}
	if c.Rotations < 1 {
		errs = append(errs, ValidationError{Field: "rotations", Value: c.Rotations, Message: "must be at least 1"})
	}

	errs = append(errs, c.validateChart()...)
	errs = append(errs, c.validateConsole()...)
	errs = append(errs, c.validateLogging()...)

	return errs
}

func (c *Config) validateChart() []ValidationError {
	var errs []ValidationError
	if c.Chart.Width < MinChartWidth {
		errs = append(errs, ValidationError{
			Field:   "chart.width",
			Value:   c.Chart.Width,
			Message: fmt.Sprintf("must be at least %d", MinChartWidth),
		})
	}
	if c.Chart.Height < MinChartHeight {
		errs = append(errs, ValidationError{
			Field:   "chart.height",
			Value:   c.Chart.Height,
			Message: fmt.Sprintf("must be at least %d", MinChartHeight),
		})
	}
	return errs
}

func (c *Config) validateConsole() []ValidationError {
	var errs []ValidationError
	if c.Console.MaxRotations < 1 {
		errs = append(errs, ValidationError{Field: "console.max_rotations", Value: c.Console.MaxRotations, Message: "must be at least 1"})
	}
	if c.Console.BarHeight < 1 {
		errs = append(errs, ValidationError{Field: "console.bar_height", Value: c.Console.BarHeight, Message: "must be at least 1"})
	}
	return errs
}

func (c *Config) validateLogging() []ValidationError {
	var errs []ValidationError
	if c.Logging.MaxSizeMB < 0 {
		errs = append(errs, ValidationError{Field: "logging.max_size_mb", Value: c.Logging.MaxSizeMB, Message: "must be non-negative"})
	}
	if c.Logging.MaxBackups < 0 {
		errs = append(errs, ValidationError{Field: "logging.max_backups", Value: c.Logging.MaxBackups, Message: "must be non-negative"})
	}
	if c.Logging.MaxAgeDays < 0 {
		errs = append(errs, ValidationError{Field: "logging.max_age_days", Value: c.Logging.MaxAgeDays, Message: "must be non-negative"})
	}
	return errs
}
