package fontatlas

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"unicode"

	"golang.org/x/text/unicode/rangetable"

	"github.com/gogpu/fontatlas/atlas"
	"github.com/gogpu/fontatlas/distfield"
	"github.com/gogpu/fontatlas/outline"
)

// whiteGlyphSize is the edge of the white filler bitmap. Its one-texel
// outline keeps filtering from bleeding into neighbors.
const whiteGlyphSize = 3

// fileEntry is an open font file.
type fileEntry struct {
	font outline.ParsedFont
}

// fontEntry is a master or scaled font.
type fontEntry struct {
	info    FontInfo
	padding int

	// Master fonts bake from parsed; scaled fonts copy from master.
	parsed     outline.ParsedFont
	master     FontHandle
	masterGone bool

	glyphs map[rune]GlyphInfo
}

func (f *fontEntry) isMaster() bool { return f.parsed != nil }

// Manager owns font files, fonts and the atlas their glyphs are baked
// into. Glyphs are baked on first lookup and cached per font.
//
// Manager is safe for concurrent use. The atlas returned by Atlas is
// written during bakes and must not be read concurrently with them.
type Manager struct {
	mu    sync.RWMutex
	opts  managerOptions
	atlas *atlas.Atlas
	msdf  *distfield.Generator

	fileAlloc *handleAlloc
	files     []fileEntry
	fontAlloc *handleAlloc
	fonts     []fontEntry

	white GlyphInfo

	// Statistics (atomic for lock-free reads)
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewManager creates a manager with an empty atlas and reserves the white
// glyph in it.
func NewManager(opts ...Option) (*Manager, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	a := o.atlas
	if a == nil {
		var err error
		if a, err = atlas.New(o.atlasConfig, o.atlasOptions...); err != nil {
			return nil, err
		}
	}
	gen, err := distfield.NewGenerator(o.msdf)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		opts:      o,
		atlas:     a,
		msdf:      gen,
		fileAlloc: newHandleAlloc(o.maxFiles),
		files:     make([]fileEntry, o.maxFiles),
		fontAlloc: newHandleAlloc(o.maxFonts),
		fonts:     make([]fontEntry, o.maxFonts),
	}

	filler := make([]byte, whiteGlyphSize*whiteGlyphSize)
	for i := range filler {
		filler[i] = 0xff
	}
	region, err := a.AddRegion(whiteGlyphSize, whiteGlyphSize, filler, atlas.Gray, 1)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: reserve white glyph: %w", err)
	}
	inner := whiteGlyphSize - 2
	m.white = GlyphInfo{
		Width:       float64(inner),
		Height:      float64(inner),
		BitmapScale: 1,
		Region:      region,
	}
	return m, nil
}

// Atlas returns the atlas glyphs are baked into.
func (m *Manager) Atlas() *atlas.Atlas { return m.atlas }

// WhiteGlyph returns a glyph whose region is fully opaque, for drawing
// underlines and backgrounds with the text shader.
func (m *Manager) WhiteGlyph() GlyphInfo { return m.white }

// Stats returns the glyph cache hit and miss counts.
func (m *Manager) Stats() (hits, misses uint64) {
	return m.hits.Load(), m.misses.Load()
}

// CreateTTF parses a TrueType or OpenType font file and returns its
// handle. The data must not be modified afterwards.
func (m *Manager) CreateTTF(data []byte) (FileHandle, error) {
	parsed, err := outline.Parse(data, m.opts.parser)
	if err != nil {
		return InvalidFile, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.fileAlloc.alloc()
	if !ok {
		return InvalidFile, ErrTooManyFiles
	}
	m.files[h] = fileEntry{font: parsed}
	return FileHandle(h), nil
}

// DestroyTTF releases a font file. Fonts created from it stay usable.
func (m *Manager) DestroyTTF(h FileHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.fileAlloc.release(uint16(h)) {
		return fmt.Errorf("%w: file %d", ErrInvalidHandle, h)
	}
	m.files[h] = fileEntry{}
	return nil
}

// CreateFontByPixelSize creates a master font with the default padding
// for its type.
func (m *Manager) CreateFontByPixelSize(file FileHandle, pixelSize int, typ FontType) (FontHandle, error) {
	return m.CreateFont(file, m.DefaultFontConfig(pixelSize, typ))
}

// CreateFont creates a master font from an open file.
func (m *Manager) CreateFont(file FileHandle, cfg FontConfig) (FontHandle, error) {
	if err := cfg.Validate(); err != nil {
		return InvalidFont, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.fileAlloc.isValid(uint16(file)) {
		return InvalidFont, fmt.Errorf("%w: file %d", ErrInvalidHandle, file)
	}
	parsed := m.files[file].font

	h, ok := m.fontAlloc.alloc()
	if !ok {
		return InvalidFont, ErrTooManyFonts
	}

	metrics := parsed.Metrics(float64(cfg.PixelSize))
	m.fonts[h] = fontEntry{
		info: FontInfo{
			Type:               cfg.Type,
			PixelSize:          cfg.PixelSize,
			Ascender:           math.Round(metrics.Ascent),
			Descender:          math.Round(metrics.Descent),
			LineGap:            math.Round(metrics.LineGap),
			UnderlineThickness: metrics.UnderlineThickness,
			UnderlinePosition:  metrics.UnderlinePosition,
			Scale:              1,
		},
		padding: cfg.Padding,
		parsed:  parsed,
		master:  InvalidFont,
		glyphs:  make(map[rune]GlyphInfo),
	}
	Logger().Debug("font created", "font", h, "size", cfg.PixelSize, "type", cfg.Type.String())
	return FontHandle(h), nil
}

// CreateScaledFont creates a font that reuses the glyphs of a master font
// at another pixel size. Its metrics and glyphs are the master's
// multiplied by pixelSize / master size; nothing is baked for it.
func (m *Manager) CreateScaledFont(master FontHandle, pixelSize int) (FontHandle, error) {
	if pixelSize < 1 || pixelSize > 1024 {
		return InvalidFont, &ConfigError{Field: "PixelSize", Reason: "must be 1-1024"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	base, err := m.font(master)
	if err != nil {
		return InvalidFont, err
	}
	if !base.isMaster() {
		return InvalidFont, fmt.Errorf("%w: font %d", ErrNotMasterFont, master)
	}

	h, ok := m.fontAlloc.alloc()
	if !ok {
		return InvalidFont, ErrTooManyFonts
	}

	s := float64(pixelSize) / float64(base.info.PixelSize)
	info := base.info
	info.PixelSize = pixelSize
	info.Scale = s
	info.Ascender *= s
	info.Descender *= s
	info.LineGap *= s
	info.UnderlineThickness *= s
	info.UnderlinePosition *= s

	m.fonts[h] = fontEntry{
		info:   info,
		master: master,
		glyphs: make(map[rune]GlyphInfo),
	}
	Logger().Debug("scaled font created", "font", h, "master", master, "scale", s)
	return FontHandle(h), nil
}

// DestroyFont releases a font. Scaled fonts of a destroyed master keep
// their cached glyphs but can no longer bake new ones.
func (m *Manager) DestroyFont(h FontHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.fontAlloc.release(uint16(h)) {
		return fmt.Errorf("%w: font %d", ErrInvalidHandle, h)
	}
	wasMaster := m.fonts[h].isMaster()
	m.fonts[h] = fontEntry{}

	if wasMaster {
		for i := range m.fonts {
			f := &m.fonts[i]
			if m.fontAlloc.isValid(uint16(i)) && !f.isMaster() && f.master == h {
				f.masterGone = true
			}
		}
	}
	return nil
}

// font returns the entry of a live font. The caller holds m.mu.
func (m *Manager) font(h FontHandle) (*fontEntry, error) {
	if !m.fontAlloc.isValid(uint16(h)) {
		return nil, fmt.Errorf("%w: font %d", ErrInvalidHandle, h)
	}
	return &m.fonts[h], nil
}

// FontInfo returns the metrics of a font.
func (m *Manager) FontInfo(h FontHandle) (FontInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, err := m.font(h)
	if err != nil {
		return FontInfo{}, err
	}
	return f.info, nil
}

// GlyphCount returns the number of glyphs cached for a font.
func (m *Manager) GlyphCount(h FontHandle) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, err := m.font(h)
	if err != nil {
		return 0, err
	}
	return len(f.glyphs), nil
}

// Glyph returns the glyph for a code point, baking it on first use.
//
// It fails with ErrInvalidHandle for an unknown font, ErrGlyphNotFound
// when the font has no glyph for r, ErrMasterFontGone when a scaled
// font's master was destroyed before the glyph was cached, and with
// atlas.ErrAtlasFull or atlas.ErrRegionLimit when the atlas has no room.
func (m *Manager) Glyph(h FontHandle, r rune) (GlyphInfo, error) {
	// Fast path: cached glyph (read lock)
	m.mu.RLock()
	f, err := m.font(h)
	if err == nil {
		if g, ok := f.glyphs[r]; ok {
			m.mu.RUnlock()
			m.hits.Add(1)
			return g, nil
		}
	}
	m.mu.RUnlock()
	if err != nil {
		return GlyphInfo{}, err
	}

	m.misses.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.glyph(h, r)
}

// glyph returns a cached glyph or bakes it. The caller holds m.mu.
func (m *Manager) glyph(h FontHandle, r rune) (GlyphInfo, error) {
	f, err := m.font(h)
	if err != nil {
		return GlyphInfo{}, err
	}
	if g, ok := f.glyphs[r]; ok {
		return g, nil
	}

	var g GlyphInfo
	if f.isMaster() {
		g, err = m.bake(f, r)
		if err != nil {
			return GlyphInfo{}, err
		}
	} else {
		if f.masterGone {
			return GlyphInfo{}, fmt.Errorf("%w: font %d", ErrMasterFontGone, h)
		}
		mg, err := m.glyph(f.master, r)
		if err != nil {
			return GlyphInfo{}, err
		}
		g = mg.scaled(f.info.Scale)
	}
	f.glyphs[r] = g
	return g, nil
}

// Preload bakes every code point of s. It stops at the first error.
func (m *Manager) Preload(h FontHandle, s string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range s {
		if _, err := m.glyph(h, r); err != nil {
			return fmt.Errorf("fontatlas: preload %q: %w", r, err)
		}
	}
	return nil
}

// PreloadRange bakes every code point of table the font has a glyph for.
// It returns the number of glyphs now cached from the table and stops at
// the first error other than ErrGlyphNotFound.
func (m *Manager) PreloadRange(h FontHandle, table *unicode.RangeTable) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.font(h); err != nil {
		return 0, err
	}

	var (
		n        int
		firstErr error
	)
	rangetable.Visit(table, func(r rune) {
		if firstErr != nil {
			return
		}
		_, err := m.glyph(h, r)
		switch {
		case err == nil:
			n++
		case errors.Is(err, ErrGlyphNotFound):
		default:
			firstErr = fmt.Errorf("fontatlas: preload %q: %w", r, err)
		}
	})
	return n, firstErr
}
