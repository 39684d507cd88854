package fontatlas

import (
	"fmt"

	"github.com/gogpu/fontatlas/outline"
)

// FontType selects how a master font bakes its glyphs.
type FontType uint8

const (
	// Alpha bakes antialiased coverage masks into gray regions.
	Alpha FontType = iota

	// SDF bakes single-channel signed distance fields into gray regions.
	SDF

	// MSDF bakes multi-channel signed distance fields into BGRA regions.
	MSDF
)

// String returns a string representation of the font type.
func (t FontType) String() string {
	switch t {
	case Alpha:
		return "Alpha"
	case SDF:
		return "SDF"
	case MSDF:
		return "MSDF"
	default:
		return fmt.Sprintf("FontType(%d)", uint8(t))
	}
}

// FontInfo holds font-wide metrics in pixels. Distances above the baseline
// are positive, so Descender and UnderlinePosition are usually negative.
type FontInfo struct {
	Type      FontType
	PixelSize int

	Ascender           float64
	Descender          float64
	LineGap            float64
	UnderlineThickness float64
	UnderlinePosition  float64

	// Scale is 1 for master fonts and the size ratio to the master for
	// scaled fonts.
	Scale float64
}

// LineHeight returns ascender - descender + line gap.
func (f FontInfo) LineHeight() float64 {
	return f.Ascender - f.Descender + f.LineGap
}

// GlyphInfo describes one baked glyph. Positions are in pixels, y down,
// relative to the pen position on the baseline.
type GlyphInfo struct {
	// GlyphIndex is the glyph index in the font file.
	GlyphIndex outline.GlyphID

	// Width and Height are the bitmap size, padding included.
	Width, Height float64

	// OffsetX and OffsetY locate the bitmap's top-left corner.
	OffsetX, OffsetY float64

	// AdvanceX moves the pen to the next glyph; AdvanceY to the next line.
	AdvanceX, AdvanceY float64

	// BitmapScale is the factor between bitmap texels and pixels at this
	// font's size: 1 for master fonts.
	BitmapScale float64

	// Region is the atlas region holding the bitmap, or
	// atlas.InvalidRegion for glyphs without one (such as space).
	Region int
}

// scaled returns g with every geometric field multiplied by s.
func (g GlyphInfo) scaled(s float64) GlyphInfo {
	g.Width *= s
	g.Height *= s
	g.OffsetX *= s
	g.OffsetY *= s
	g.AdvanceX *= s
	g.AdvanceY *= s
	g.BitmapScale *= s
	return g
}

// FontConfig describes a master font.
type FontConfig struct {
	// PixelSize is the em size in pixels. Must be 1-1024.
	PixelSize int

	// Type selects the bitmap kind.
	Type FontType

	// Padding is the number of pixels added around each glyph bitmap so
	// distance fields can fall off outside the outline.
	Padding int
}

// DefaultFontConfig returns a configuration for a font of the given size
// and type, padded by the manager's SDF spread or MSDF range.
func (m *Manager) DefaultFontConfig(pixelSize int, typ FontType) FontConfig {
	cfg := FontConfig{PixelSize: pixelSize, Type: typ}
	switch typ {
	case SDF:
		cfg.Padding = m.opts.sdfSpread
	case MSDF:
		cfg.Padding = int(m.opts.msdf.Range + 0.999)
	}
	return cfg
}

// Validate checks if the configuration is valid.
func (c *FontConfig) Validate() error {
	if c.PixelSize < 1 || c.PixelSize > 1024 {
		return &ConfigError{Field: "PixelSize", Reason: "must be 1-1024"}
	}
	if c.Type > MSDF {
		return &ConfigError{Field: "Type", Reason: "unknown font type"}
	}
	if c.Padding < 0 || c.Padding > 64 {
		return &ConfigError{Field: "Padding", Reason: "must be 0-64"}
	}
	return nil
}
