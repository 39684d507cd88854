package distfield

import "github.com/gogpu/fontatlas/shape"

// Config holds MSDF generation parameters.
type Config struct {
	// Size is the output texture size (width = height) used by Generate.
	// Typical values: 32, 48, 64.
	// Default: 32
	Size int

	// Range is the distance range in pixels.
	// This controls how far from the edge the distance field extends.
	// Larger values = softer edges, smaller = sharper but less scalable.
	// Default: 4.0
	Range float64

	// MaxAngleDegrees is the turning angle above which a join between two
	// edges is a corner and the edge color switches.
	// Default: 15
	MaxAngleDegrees float64

	// ErrorThreshold enables ErrorCorrection after sampling when positive.
	// It is the largest allowed distance of a channel from the median, as
	// a fraction of the byte range.
	// Default: 0 (disabled)
	ErrorThreshold float64

	// Workers is the number of goroutines sampling rows in parallel.
	// Default: 4
	Workers int
}

// DefaultConfig returns the default MSDF configuration.
// These values work well for most text rendering scenarios.
func DefaultConfig() Config {
	return Config{
		Size:            32,
		Range:           4.0,
		MaxAngleDegrees: shape.DefaultMaxAngleDegrees,
		Workers:         4,
	}
}

// Validate checks if the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.Size < 8 {
		return &ConfigError{Field: "Size", Reason: "must be at least 8"}
	}
	if c.Size > 4096 {
		return &ConfigError{Field: "Size", Reason: "must be at most 4096"}
	}
	if c.Range <= 0 {
		return &ConfigError{Field: "Range", Reason: "must be positive"}
	}
	if c.MaxAngleDegrees <= 0 || c.MaxAngleDegrees > 180 {
		return &ConfigError{Field: "MaxAngleDegrees", Reason: "must be in (0, 180]"}
	}
	if c.ErrorThreshold < 0 || c.ErrorThreshold > 1 {
		return &ConfigError{Field: "ErrorThreshold", Reason: "must be in [0, 1]"}
	}
	if c.Workers < 1 {
		return &ConfigError{Field: "Workers", Reason: "must be at least 1"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "distfield: invalid config." + e.Field + ": " + e.Reason
}
