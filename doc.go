// Package fontatlas bakes font glyphs into a GPU-ready cube texture atlas.
//
// # Overview
//
// A Manager loads TrueType and OpenType files, creates fonts from them and
// bakes glyphs on first use into an atlas.Atlas: six faces of a cube map,
// each holding either four 8-bit gray layers or one BGRA layer. Three kinds
// of glyph bitmaps are supported:
//
//   - Alpha: antialiased coverage masks
//   - SDF: single-channel signed distance fields
//   - MSDF: multi-channel signed distance fields, sharp at any scale
//
// # Quick Start
//
//	m, err := fontatlas.NewManager()
//	if err != nil {
//	    return err
//	}
//	file, err := m.CreateTTF(ttfBytes)
//	if err != nil {
//	    return err
//	}
//	font, err := m.CreateFontByPixelSize(file, 32, fontatlas.MSDF)
//	if err != nil {
//	    return err
//	}
//	g, err := m.Glyph(font, 'A')
//	if err != nil {
//	    return err
//	}
//	// Write the glyph's texture coordinates into a vertex buffer.
//	err = m.Atlas().PackUV(g.Region, vertices, 0, stride)
//
// # Scaled Fonts
//
// CreateScaledFont derives a font of another pixel size from a master
// font. Its glyphs share the master's atlas regions; only their metrics
// are scaled. Distance-field fonts scale well this way, alpha fonts blur.
//
// # Sub-packages
//
//   - geom: points and rectangles
//   - solver: quadratic, cubic and quintic root finding
//   - shape: outlines as colored edge contours with distance queries
//   - distfield: SDF and MSDF generation
//   - outline: font parsing backends and glyph outlines
//   - packer: skyline rectangle packing
//   - atlas: the cube texture atlas, UV packing and serialization
//
// # Logging
//
// fontatlas logs through log/slog and is silent by default. See SetLogger.
package fontatlas
