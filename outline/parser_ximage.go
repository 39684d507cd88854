package outline

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements FontParser using golang.org/x/image/font/sfnt.
type ximageParser struct{}

// Parse implements FontParser.Parse.
func (ximageParser) Parse(data []byte) (ParsedFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("outline: failed to parse font: %w", err)
	}
	return &ximageFont{font: f}, nil
}

// ximageFont implements ParsedFont using sfnt.Font. The sfnt.Font is
// read-only; every call uses its own sfnt.Buffer.
type ximageFont struct {
	font *sfnt.Font
}

func (f *ximageFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

func (f *ximageFont) GlyphIndex(r rune) (GlyphID, bool) {
	var buf sfnt.Buffer
	idx, err := f.font.GlyphIndex(&buf, r)
	if err != nil || idx == 0 {
		return 0, false
	}
	return GlyphID(idx), true
}

func (f *ximageFont) Advance(gid GlyphID, ppem float64) float64 {
	var buf sfnt.Buffer
	advance, err := f.font.GlyphAdvance(&buf, sfnt.GlyphIndex(gid), toFixed(ppem), font.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(advance)
}

func (f *ximageFont) Metrics(ppem float64) Metrics {
	var buf sfnt.Buffer
	m, err := f.font.Metrics(&buf, toFixed(ppem), font.HintingNone)
	if err != nil {
		return Metrics{}
	}

	// sfnt reports the descent as a positive distance below the baseline.
	out := Metrics{
		Ascent:  fromFixed(m.Ascent),
		Descent: -fromFixed(m.Descent),
		LineGap: fromFixed(m.Height) - fromFixed(m.Ascent) - fromFixed(m.Descent),
	}
	scale := ppem / float64(f.font.UnitsPerEm())
	if post := f.font.PostTable(); post != nil {
		out.UnderlinePosition = float64(post.UnderlinePosition) * scale
		out.UnderlineThickness = float64(post.UnderlineThickness) * scale
	}
	return out
}

func (f *ximageFont) LoadOutline(gid GlyphID, ppem float64, pen Pen) error {
	var buf sfnt.Buffer
	segments, err := f.font.LoadGlyph(&buf, sfnt.GlyphIndex(gid), toFixed(ppem), nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrColoredGlyph) {
			return ErrNoOutline
		}
		return fmt.Errorf("outline: load glyph %d: %w", gid, err)
	}

	open := false
	for _, seg := range segments {
		a := seg.Args
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				pen.ClosePath()
			}
			pen.MoveTo(fromFixed32(a[0].X), fromFixed32(a[0].Y))
			open = true
		case sfnt.SegmentOpLineTo:
			pen.LineTo(fromFixed32(a[0].X), fromFixed32(a[0].Y))
		case sfnt.SegmentOpQuadTo:
			pen.QuadTo(fromFixed32(a[0].X), fromFixed32(a[0].Y),
				fromFixed32(a[1].X), fromFixed32(a[1].Y))
		case sfnt.SegmentOpCubeTo:
			pen.CubeTo(fromFixed32(a[0].X), fromFixed32(a[0].Y),
				fromFixed32(a[1].X), fromFixed32(a[1].Y),
				fromFixed32(a[2].X), fromFixed32(a[2].Y))
		}
	}
	if open {
		pen.ClosePath()
	}
	return nil
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fromFixed converts fixed.Int26_6 to float64.
func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

func fromFixed32(x fixed.Int26_6) float32 {
	return float32(x) / 64.0
}
