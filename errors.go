package fontatlas

import "errors"

// Sentinel errors for font management.
var (
	// ErrInvalidHandle is returned for a handle that was never allocated
	// or has been destroyed.
	ErrInvalidHandle = errors.New("fontatlas: invalid handle")

	// ErrMasterFontGone is returned when a scaled font needs a glyph its
	// destroyed master font would have to bake.
	ErrMasterFontGone = errors.New("fontatlas: master font destroyed")

	// ErrGlyphNotFound is returned when a valid font has no glyph for a
	// code point.
	ErrGlyphNotFound = errors.New("fontatlas: glyph not found")

	// ErrNotMasterFont is returned when a scaled font is used as the base
	// of another scaled font.
	ErrNotMasterFont = errors.New("fontatlas: font is not a master font")

	// ErrTooManyFiles is returned when the file arena is full.
	ErrTooManyFiles = errors.New("fontatlas: too many font files")

	// ErrTooManyFonts is returned when the font arena is full.
	ErrTooManyFonts = errors.New("fontatlas: too many fonts")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "fontatlas: invalid config." + e.Field + ": " + e.Reason
}
