package outline

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// gotextParser implements FontParser using go-text/typesetting.
type gotextParser struct{}

// Parse implements FontParser.Parse.
func (gotextParser) Parse(data []byte) (ParsedFont, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("outline: failed to parse font: %w", err)
	}
	return &gotextFont{face: face}, nil
}

// gotextFont implements ParsedFont using a go-text face. The face is only
// read after parsing and carries no variation coordinates.
type gotextFont struct {
	face *font.Face
}

func (f *gotextFont) UnitsPerEm() int {
	return int(f.face.Upem())
}

func (f *gotextFont) scale(ppem float64) float64 {
	return ppem / float64(f.face.Upem())
}

func (f *gotextFont) GlyphIndex(r rune) (GlyphID, bool) {
	gid, ok := f.face.NominalGlyph(r)
	if !ok || gid == 0 {
		return 0, false
	}
	return GlyphID(gid), true
}

func (f *gotextFont) Advance(gid GlyphID, ppem float64) float64 {
	return float64(f.face.HorizontalAdvance(font.GID(gid))) * f.scale(ppem)
}

func (f *gotextFont) Metrics(ppem float64) Metrics {
	ext, ok := f.face.FontHExtents()
	if !ok {
		return Metrics{}
	}
	s := f.scale(ppem)
	return Metrics{
		Ascent:             float64(ext.Ascender) * s,
		Descent:            float64(ext.Descender) * s,
		LineGap:            float64(ext.LineGap) * s,
		UnderlinePosition:  float64(f.face.LineMetric(font.UnderlinePosition)) * s,
		UnderlineThickness: float64(f.face.LineMetric(font.UnderlineThickness)) * s,
	}
}

func (f *gotextFont) LoadOutline(gid GlyphID, ppem float64, pen Pen) error {
	data, ok := f.face.GlyphData(font.GID(gid)).(font.GlyphOutline)
	if !ok {
		return ErrNoOutline
	}

	// Font units are y up; flip into pixel space.
	s := float32(f.scale(ppem))
	open := false
	for _, seg := range data.Segments {
		a := seg.Args
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if open {
				pen.ClosePath()
			}
			pen.MoveTo(a[0].X*s, -a[0].Y*s)
			open = true
		case ot.SegmentOpLineTo:
			pen.LineTo(a[0].X*s, -a[0].Y*s)
		case ot.SegmentOpQuadTo:
			pen.QuadTo(a[0].X*s, -a[0].Y*s, a[1].X*s, -a[1].Y*s)
		case ot.SegmentOpCubeTo:
			pen.CubeTo(a[0].X*s, -a[0].Y*s, a[1].X*s, -a[1].Y*s, a[2].X*s, -a[2].Y*s)
		}
	}
	if open {
		pen.ClosePath()
	}
	return nil
}
