package atlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for the atlas package.
var (
	// ErrAtlasFull is returned when no layer can hold a region and no new
	// face can be opened.
	ErrAtlasFull = errors.New("atlas: no space left for region")

	// ErrRegionLimit is returned when the region table is full. A restored
	// atlas always reports it, since its packing state is not persisted.
	ErrRegionLimit = errors.New("atlas: region limit reached")

	// ErrInvalidRegion is returned for a region index that was never issued.
	ErrInvalidRegion = errors.New("atlas: invalid region index")

	// ErrInvalidLayer is returned for a layer index that is not in use.
	ErrInvalidLayer = errors.New("atlas: invalid layer index")

	// ErrBitmapSize is returned when a bitmap is shorter than its region.
	ErrBitmapSize = errors.New("atlas: bitmap too small for region")

	// ErrBufferTooSmall is returned when a vertex buffer cannot hold the
	// four packed vertices.
	ErrBufferTooSmall = errors.New("atlas: vertex buffer too small")

	// ErrInvalidData is returned when decoding a malformed serialized atlas.
	ErrInvalidData = errors.New("atlas: malformed serialized atlas")
)

// FullError describes a region that could not be placed.
// It wraps ErrAtlasFull.
type FullError struct {
	Width, Height int
	Type          BitmapType
	Faces         int
}

func (e *FullError) Error() string {
	return fmt.Sprintf("atlas: no space for %dx%d %s region (%d faces in use)",
		e.Width, e.Height, e.Type, e.Faces)
}

func (e *FullError) Unwrap() error { return ErrAtlasFull }

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}
