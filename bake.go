package fontatlas

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/fontatlas/atlas"
	"github.com/gogpu/fontatlas/distfield"
	"github.com/gogpu/fontatlas/outline"
)

// bake renders a glyph of a master font and stores its bitmap in the
// atlas. The caller holds m.mu.
func (m *Manager) bake(f *fontEntry, r rune) (GlyphInfo, error) {
	gid, ok := f.parsed.GlyphIndex(r)
	if !ok {
		return GlyphInfo{}, fmt.Errorf("%w: %q", ErrGlyphNotFound, r)
	}

	ppem := float64(f.info.PixelSize)
	var path outline.Path
	if err := f.parsed.LoadOutline(gid, ppem, &path); err != nil {
		return GlyphInfo{}, fmt.Errorf("fontatlas: load glyph %q: %w", r, err)
	}

	g := GlyphInfo{
		GlyphIndex:  gid,
		AdvanceX:    math.Round(f.parsed.Advance(gid, ppem)),
		AdvanceY:    f.info.LineHeight(),
		BitmapScale: 1,
		Region:      atlas.InvalidRegion,
	}
	if path.IsEmpty() {
		return g, nil
	}

	var (
		rect   image.Rectangle
		bitmap []byte
		typ    atlas.BitmapType
		err    error
	)
	switch f.info.Type {
	case Alpha:
		rect = outline.PixelBounds(path.Bounds(), f.padding)
		bitmap = outline.Rasterize(&path, rect).Pix
		typ = atlas.Gray
	case SDF:
		rect = outline.PixelBounds(path.Bounds(), f.padding)
		var sdf *image.Gray
		sdf, err = distfield.GenerateSDF(outline.Rasterize(&path, rect), m.opts.sdfSpread)
		if err != nil {
			return GlyphInfo{}, fmt.Errorf("fontatlas: sdf %q: %w", r, err)
		}
		bitmap = sdf.Pix
		typ = atlas.Gray
	case MSDF:
		rect, bitmap, err = m.bakeMSDF(&path, f.padding)
		if err != nil {
			return GlyphInfo{}, fmt.Errorf("fontatlas: msdf %q: %w", r, err)
		}
		typ = atlas.BGRA
	}
	if rect.Empty() {
		return g, nil
	}

	region, err := m.atlas.AddRegion(rect.Dx(), rect.Dy(), bitmap, typ, 0)
	if err != nil {
		Logger().Warn("glyph does not fit in atlas",
			"rune", string(r), "type", f.info.Type.String(), "err", err)
		return GlyphInfo{}, err
	}

	g.Width = float64(rect.Dx())
	g.Height = float64(rect.Dy())
	g.OffsetX = float64(rect.Min.X)
	g.OffsetY = float64(rect.Min.Y)
	g.Region = region
	return g, nil
}

// bakeMSDF samples the outline's MSDF at one texel per pixel.
func (m *Manager) bakeMSDF(path *outline.Path, padding int) (image.Rectangle, []byte, error) {
	s := path.Shape()
	s.ApplyPreprocessing()
	s.OrientContours()

	field, err := m.msdf.GenerateGlyph(s, 1, padding)
	if err != nil {
		return image.Rectangle{}, nil, err
	}
	if field.Width == 0 || field.Height == 0 {
		return image.Rectangle{}, nil, nil
	}
	x := int(math.Round(field.Bounds.MinX))
	y := int(math.Round(field.Bounds.MinY))
	return image.Rect(x, y, x+field.Width, y+field.Height), field.Data, nil
}
