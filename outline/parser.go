package outline

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownParser is returned when no parser is registered under a name.
	ErrUnknownParser = errors.New("outline: unknown font parser")

	// ErrNoOutline is returned for glyphs stored as bitmaps or SVG.
	ErrNoOutline = errors.New("outline: glyph has no vector outline")
)

// GlyphID is a glyph index within a font.
type GlyphID uint32

// Metrics holds font-wide metrics in pixels at a given size. Distances
// above the baseline are positive, so Descent and UnderlinePosition are
// usually negative.
type Metrics struct {
	Ascent             float64
	Descent            float64
	LineGap            float64
	UnderlinePosition  float64
	UnderlineThickness float64
}

// Height returns the line height (ascent - descent + line gap).
func (m Metrics) Height() float64 {
	return m.Ascent - m.Descent + m.LineGap
}

// FontParser is a font parsing backend.
type FontParser interface {
	// Parse parses font data (TTF or OTF).
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont is a parsed font file. Sizes are given in pixels per em.
//
// Implementations are safe for concurrent use.
type ParsedFont interface {
	// UnitsPerEm returns the design units per em.
	UnitsPerEm() int

	// GlyphIndex returns the glyph mapped to r by the font's cmap.
	GlyphIndex(r rune) (GlyphID, bool)

	// Advance returns the horizontal advance of a glyph in pixels.
	Advance(gid GlyphID, ppem float64) float64

	// Metrics returns the font metrics in pixels.
	Metrics(ppem float64) Metrics

	// LoadOutline sends the glyph outline to pen in pixel space, y down.
	// Glyphs without contours (such as space) send nothing.
	LoadOutline(gid GlyphID, ppem float64, pen Pen) error
}

// DefaultParser is the name of the default parser.
const DefaultParser = "ximage"

// parserRegistry holds registered font parsers.
var parserRegistry = map[string]FontParser{
	"ximage": ximageParser{},
	"gotext": gotextParser{},
}

// RegisterParser registers a font parser under name, replacing any parser
// of that name. It is meant to be called from init functions.
func RegisterParser(name string, parser FontParser) {
	parserRegistry[name] = parser
}

// Parsers returns the registered parser names in sorted order.
func Parsers() []string {
	names := make([]string, 0, len(parserRegistry))
	for name := range parserRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse parses font data with the named parser. An empty name selects
// DefaultParser.
func Parse(data []byte, parser string) (ParsedFont, error) {
	if parser == "" {
		parser = DefaultParser
	}
	p, ok := parserRegistry[parser]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParser, parser)
	}
	return p.Parse(data)
}
