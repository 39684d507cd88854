package fontatlas

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/unicode/rangetable"

	"github.com/gogpu/fontatlas/atlas"
	"github.com/gogpu/fontatlas/outline"
)

func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	m, err := NewManager(opts...)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return m
}

func newTestFont(t *testing.T, m *Manager, size int, typ FontType) FontHandle {
	t.Helper()
	file, err := m.CreateTTF(goregular.TTF)
	if err != nil {
		t.Fatalf("CreateTTF() error = %v", err)
	}
	font, err := m.CreateFontByPixelSize(file, size, typ)
	if err != nil {
		t.Fatalf("CreateFontByPixelSize(%d, %s) error = %v", size, typ, err)
	}
	return font
}

func TestNewManagerOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{"defaults", nil, false},
		{"gotext parser", []Option{WithParser("gotext")}, false},
		{"small atlas", []Option{WithAtlasConfig(atlas.Config{TextureSize: 64, MaxRegions: 8})}, false},
		{"bad atlas size", []Option{WithAtlasConfig(atlas.Config{TextureSize: 100, MaxRegions: 8})}, true},
		{"zero spread", []Option{WithSDFSpread(0)}, true},
		{"zero files", []Option{WithCapacity(0, 4)}, true},
		{"too many fonts", []Option{WithCapacity(4, 0xffff)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewManager(tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewManager() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	_, err := NewManager(WithSDFSpread(100))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "SDFSpread" {
		t.Errorf("NewManager(WithSDFSpread(100)) error = %v, want ConfigError for SDFSpread", err)
	}
}

func TestWhiteGlyph(t *testing.T) {
	m := newTestManager(t)
	w := m.WhiteGlyph()
	if w.Region != 0 || w.Width != 1 || w.Height != 1 || w.BitmapScale != 1 {
		t.Fatalf("WhiteGlyph() = %+v", w)
	}

	a := m.Atlas()
	r, err := a.Region(w.Region)
	if err != nil {
		t.Fatalf("Region() error = %v", err)
	}
	want := atlas.Region{X: 2, Y: 2, Width: 1, Height: 1, Mask: atlas.MakeMask(atlas.Gray, 0, 0)}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("white region mismatch (-want +got):\n%s", diff)
	}

	// The whole 3x3 bitmap, outline included, is opaque in lane 0.
	size := a.TextureSize()
	tex := a.TextureBuffer()
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			if v := tex[(y*size+x)*atlas.BytesPerTexel]; v != 0xff {
				t.Errorf("texel (%d,%d) = %d, want 255", x, y, v)
			}
		}
	}
}

func TestGlyphTypes(t *testing.T) {
	tests := []struct {
		typ      FontType
		padding  int
		wantType atlas.BitmapType
	}{
		{Alpha, 0, atlas.Gray},
		{SDF, 6, atlas.Gray},
		{MSDF, 4, atlas.BGRA},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			m := newTestManager(t)
			font := newTestFont(t, m, 32, tt.typ)

			info, err := m.FontInfo(font)
			if err != nil {
				t.Fatalf("FontInfo() error = %v", err)
			}
			if info.Type != tt.typ || info.PixelSize != 32 || info.Scale != 1 {
				t.Errorf("FontInfo() = %+v", info)
			}
			if got := m.DefaultFontConfig(32, tt.typ).Padding; got != tt.padding {
				t.Errorf("default padding = %d, want %d", got, tt.padding)
			}

			g, err := m.Glyph(font, 'A')
			if err != nil {
				t.Fatalf("Glyph('A') error = %v", err)
			}
			if g.Region == atlas.InvalidRegion || g.BitmapScale != 1 {
				t.Fatalf("Glyph('A') = %+v", g)
			}
			if g.AdvanceX <= 0 || g.AdvanceY != info.LineHeight() {
				t.Errorf("advance = (%v, %v), line height %v", g.AdvanceX, g.AdvanceY, info.LineHeight())
			}
			// 'A' stands on the baseline: the bitmap starts above it and
			// ends padding pixels below it.
			if g.OffsetY >= 0 || g.OffsetY+g.Height < float64(tt.padding) {
				t.Errorf("vertical placement = (%v, %v)", g.OffsetY, g.Height)
			}
			if g.Width <= float64(2*tt.padding) {
				t.Errorf("Width = %v, want more than padding", g.Width)
			}

			r, err := m.Atlas().Region(g.Region)
			if err != nil {
				t.Fatalf("Region() error = %v", err)
			}
			if r.Type() != tt.wantType || float64(r.Width) != g.Width || float64(r.Height) != g.Height {
				t.Errorf("region = %+v (type %s), glyph %vx%v", r, r.Type(), g.Width, g.Height)
			}
		})
	}
}

func TestGlyphCache(t *testing.T) {
	m := newTestManager(t)
	font := newTestFont(t, m, 24, Alpha)

	g1, err := m.Glyph(font, 'g')
	if err != nil {
		t.Fatalf("Glyph() error = %v", err)
	}
	regions := m.Atlas().RegionCount()
	g2, err := m.Glyph(font, 'g')
	if err != nil {
		t.Fatalf("Glyph() error = %v", err)
	}
	if diff := cmp.Diff(g1, g2); diff != "" {
		t.Errorf("cached glyph mismatch (-first +second):\n%s", diff)
	}
	if got := m.Atlas().RegionCount(); got != regions {
		t.Errorf("RegionCount() = %d after cache hit, want %d", got, regions)
	}
	if hits, misses := m.Stats(); hits != 1 || misses != 1 {
		t.Errorf("Stats() = (%d, %d), want (1, 1)", hits, misses)
	}
	if n, _ := m.GlyphCount(font); n != 1 {
		t.Errorf("GlyphCount() = %d, want 1", n)
	}
}

func TestGlyphSpaceAndMissing(t *testing.T) {
	for _, typ := range []FontType{Alpha, SDF, MSDF} {
		m := newTestManager(t)
		font := newTestFont(t, m, 32, typ)

		regions := m.Atlas().RegionCount()
		g, err := m.Glyph(font, ' ')
		if err != nil {
			t.Fatalf("%s: Glyph(' ') error = %v", typ, err)
		}
		if g.Region != atlas.InvalidRegion || g.Width != 0 || g.AdvanceX <= 0 {
			t.Errorf("%s: Glyph(' ') = %+v", typ, g)
		}
		if got := m.Atlas().RegionCount(); got != regions {
			t.Errorf("%s: space allocated a region", typ)
		}

		if _, err := m.Glyph(font, 0x10ffff); !errors.Is(err, ErrGlyphNotFound) {
			t.Errorf("%s: Glyph(U+10FFFF) error = %v, want ErrGlyphNotFound", typ, err)
		}
	}
}

func TestParsersAgree(t *testing.T) {
	var glyphs []GlyphInfo
	for _, name := range outline.Parsers() {
		m := newTestManager(t, WithParser(name))
		g, err := m.Glyph(newTestFont(t, m, 40, Alpha), 'W')
		if err != nil {
			t.Fatalf("%s: Glyph('W') error = %v", name, err)
		}
		glyphs = append(glyphs, g)
	}
	// Bounds agree to a fraction of a pixel; floor and ceil may still
	// land one pixel apart.
	withinPixel := cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) <= 1 })
	if glyphs[0].AdvanceX != glyphs[1].AdvanceX {
		t.Errorf("AdvanceX = %v / %v", glyphs[0].AdvanceX, glyphs[1].AdvanceX)
	}
	if diff := cmp.Diff(glyphs[0], glyphs[1], withinPixel); diff != "" {
		t.Errorf("parsers disagree (-%s +%s):\n%s", outline.Parsers()[0], outline.Parsers()[1], diff)
	}

	m := newTestManager(t, WithParser("freetype"))
	if _, err := m.CreateTTF(goregular.TTF); !errors.Is(err, outline.ErrUnknownParser) {
		t.Errorf("CreateTTF() with unknown parser error = %v", err)
	}
}

func TestScaledFont(t *testing.T) {
	m := newTestManager(t)
	master := newTestFont(t, m, 32, MSDF)
	scaled, err := m.CreateScaledFont(master, 64)
	if err != nil {
		t.Fatalf("CreateScaledFont() error = %v", err)
	}

	mi, _ := m.FontInfo(master)
	si, _ := m.FontInfo(scaled)
	wantInfo := FontInfo{
		Type:               MSDF,
		PixelSize:          64,
		Ascender:           mi.Ascender * 2,
		Descender:          mi.Descender * 2,
		LineGap:            mi.LineGap * 2,
		UnderlineThickness: mi.UnderlineThickness * 2,
		UnderlinePosition:  mi.UnderlinePosition * 2,
		Scale:              2,
	}
	if diff := cmp.Diff(wantInfo, si); diff != "" {
		t.Errorf("scaled FontInfo mismatch (-want +got):\n%s", diff)
	}

	// The scaled glyph is baked through the master and shares its region.
	sg, err := m.Glyph(scaled, 'e')
	if err != nil {
		t.Fatalf("Glyph(scaled) error = %v", err)
	}
	mg, err := m.Glyph(master, 'e')
	if err != nil {
		t.Fatalf("Glyph(master) error = %v", err)
	}
	want := GlyphInfo{
		GlyphIndex:  mg.GlyphIndex,
		Width:       mg.Width * 2,
		Height:      mg.Height * 2,
		OffsetX:     mg.OffsetX * 2,
		OffsetY:     mg.OffsetY * 2,
		AdvanceX:    mg.AdvanceX * 2,
		AdvanceY:    mg.AdvanceY * 2,
		BitmapScale: 2,
		Region:      mg.Region,
	}
	if diff := cmp.Diff(want, sg); diff != "" {
		t.Errorf("scaled glyph mismatch (-want +got):\n%s", diff)
	}

	if _, err := m.CreateScaledFont(scaled, 16); !errors.Is(err, ErrNotMasterFont) {
		t.Errorf("CreateScaledFont(scaled) error = %v, want ErrNotMasterFont", err)
	}
	if _, err := m.CreateScaledFont(master, 0); err == nil {
		t.Error("CreateScaledFont(master, 0) succeeded")
	}
}

func TestDestroyMasterFont(t *testing.T) {
	m := newTestManager(t)
	master := newTestFont(t, m, 32, SDF)
	scaled, err := m.CreateScaledFont(master, 16)
	if err != nil {
		t.Fatalf("CreateScaledFont() error = %v", err)
	}
	cached, err := m.Glyph(scaled, 'x')
	if err != nil {
		t.Fatalf("Glyph() error = %v", err)
	}

	if err := m.DestroyFont(master); err != nil {
		t.Fatalf("DestroyFont() error = %v", err)
	}
	if err := m.DestroyFont(master); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("second DestroyFont() error = %v, want ErrInvalidHandle", err)
	}
	if _, err := m.Glyph(master, 'x'); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("Glyph(destroyed) error = %v, want ErrInvalidHandle", err)
	}

	g, err := m.Glyph(scaled, 'x')
	if err != nil || g != cached {
		t.Errorf("cached glyph after master destroyed = (%+v, %v)", g, err)
	}
	if _, err := m.Glyph(scaled, 'y'); !errors.Is(err, ErrMasterFontGone) {
		t.Errorf("uncached glyph error = %v, want ErrMasterFontGone", err)
	}

	// A new font reusing the master's handle does not revive the scaled font.
	file, _ := m.CreateTTF(goregular.TTF)
	reused, err := m.CreateFontByPixelSize(file, 32, SDF)
	if err != nil || reused != master {
		t.Fatalf("CreateFontByPixelSize() = (%d, %v), want handle %d", reused, err, master)
	}
	if _, err := m.Glyph(scaled, 'y'); !errors.Is(err, ErrMasterFontGone) {
		t.Errorf("glyph after handle reuse error = %v, want ErrMasterFontGone", err)
	}
}

func TestCapacity(t *testing.T) {
	m := newTestManager(t, WithCapacity(1, 1))

	file, err := m.CreateTTF(goregular.TTF)
	if err != nil {
		t.Fatalf("CreateTTF() error = %v", err)
	}
	if _, err := m.CreateTTF(goregular.TTF); !errors.Is(err, ErrTooManyFiles) {
		t.Errorf("second CreateTTF() error = %v, want ErrTooManyFiles", err)
	}
	font, err := m.CreateFontByPixelSize(file, 20, Alpha)
	if err != nil {
		t.Fatalf("CreateFontByPixelSize() error = %v", err)
	}
	if _, err := m.CreateScaledFont(font, 40); !errors.Is(err, ErrTooManyFonts) {
		t.Errorf("CreateScaledFont() on full arena error = %v, want ErrTooManyFonts", err)
	}

	// Fonts outlive their file.
	if err := m.DestroyTTF(file); err != nil {
		t.Fatalf("DestroyTTF() error = %v", err)
	}
	if _, err := m.Glyph(font, 'k'); err != nil {
		t.Errorf("Glyph() after DestroyTTF error = %v", err)
	}
	if _, err := m.CreateFontByPixelSize(file, 20, Alpha); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("CreateFont(destroyed file) error = %v, want ErrInvalidHandle", err)
	}
	if err := m.DestroyTTF(file); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("second DestroyTTF() error = %v, want ErrInvalidHandle", err)
	}
	if again, err := m.CreateTTF(goregular.TTF); err != nil || again != file {
		t.Errorf("CreateTTF() after destroy = (%d, %v), want handle %d", again, err, file)
	}
}

func TestCreateFontConfig(t *testing.T) {
	m := newTestManager(t)
	file, err := m.CreateTTF(goregular.TTF)
	if err != nil {
		t.Fatalf("CreateTTF() error = %v", err)
	}
	tests := []struct {
		name  string
		cfg   FontConfig
		field string
	}{
		{"zero size", FontConfig{PixelSize: 0}, "PixelSize"},
		{"huge size", FontConfig{PixelSize: 2000}, "PixelSize"},
		{"unknown type", FontConfig{PixelSize: 12, Type: 9}, "Type"},
		{"negative padding", FontConfig{PixelSize: 12, Padding: -1}, "Padding"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.CreateFont(file, tt.cfg)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Field != tt.field {
				t.Errorf("CreateFont() error = %v, want ConfigError for %s", err, tt.field)
			}
		})
	}
	if _, err := m.CreateFont(InvalidFile, FontConfig{PixelSize: 12}); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("CreateFont(InvalidFile) error = %v, want ErrInvalidHandle", err)
	}
}

func TestAtlasErrorsPropagate(t *testing.T) {
	m := newTestManager(t, WithAtlasConfig(atlas.Config{TextureSize: 64, MaxRegions: 2}))
	font := newTestFont(t, m, 12, Alpha)

	if _, err := m.Glyph(font, 'a'); err != nil {
		t.Fatalf("Glyph('a') error = %v", err)
	}
	if _, err := m.Glyph(font, 'b'); !errors.Is(err, atlas.ErrRegionLimit) {
		t.Errorf("Glyph('b') error = %v, want ErrRegionLimit", err)
	}
	if n, _ := m.GlyphCount(font); n != 1 {
		t.Errorf("GlyphCount() = %d, failed glyphs must not be cached", n)
	}

	m2 := newTestManager(t, WithAtlasConfig(atlas.Config{TextureSize: 64, MaxRegions: 8}))
	huge := newTestFont(t, m2, 100, MSDF)
	_, err := m2.Glyph(huge, 'M')
	var full *atlas.FullError
	if !errors.As(err, &full) || !errors.Is(err, atlas.ErrAtlasFull) || full.Type != atlas.BGRA {
		t.Errorf("Glyph(100px 'M') error = %v, want BGRA FullError", err)
	}
}

func TestSharedAtlas(t *testing.T) {
	a, err := atlas.New(atlas.DefaultConfig())
	if err != nil {
		t.Fatalf("atlas.New() error = %v", err)
	}
	m1 := newTestManager(t, WithAtlas(a))
	m2 := newTestManager(t, WithAtlas(a))
	if m1.Atlas() != a || m2.Atlas() != a {
		t.Fatal("managers do not use the given atlas")
	}
	if m1.WhiteGlyph().Region != 0 || m2.WhiteGlyph().Region != 1 {
		t.Errorf("white glyph regions = (%d, %d), want (0, 1)",
			m1.WhiteGlyph().Region, m2.WhiteGlyph().Region)
	}
}

func TestPreload(t *testing.T) {
	m := newTestManager(t)
	font := newTestFont(t, m, 16, Alpha)

	if err := m.Preload(font, "hello, world"); err != nil {
		t.Fatalf("Preload() error = %v", err)
	}
	// h e l o , space w r d
	if n, _ := m.GlyphCount(font); n != 9 {
		t.Errorf("GlyphCount() = %d, want 9", n)
	}
	if err := m.Preload(font, "ok\U0010FFFF"); !errors.Is(err, ErrGlyphNotFound) {
		t.Errorf("Preload() with missing glyph error = %v, want ErrGlyphNotFound", err)
	}

	n, err := m.PreloadRange(font, rangetable.New('A', 'B', 'C', 0x10ffff))
	if err != nil || n != 3 {
		t.Errorf("PreloadRange() = (%d, %v), want (3, nil)", n, err)
	}
	if _, err := m.PreloadRange(InvalidFont, rangetable.New('A')); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("PreloadRange(InvalidFont) error = %v, want ErrInvalidHandle", err)
	}
}

func TestGlyphConcurrent(t *testing.T) {
	m := newTestManager(t)
	font := newTestFont(t, m, 20, SDF)
	scaled, err := m.CreateScaledFont(font, 30)
	if err != nil {
		t.Fatalf("CreateScaledFont() error = %v", err)
	}

	const text = "the quick brown fox"
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := font
			if i%2 == 1 {
				h = scaled
			}
			for _, r := range text {
				if _, err := m.Glyph(h, r); err != nil {
					t.Errorf("Glyph(%q) error = %v", r, err)
				}
			}
		}()
	}
	wg.Wait()

	unique := make(map[rune]bool)
	for _, r := range text {
		unique[r] = true
	}
	for _, h := range []FontHandle{font, scaled} {
		if n, _ := m.GlyphCount(h); n != len(unique) {
			t.Errorf("GlyphCount(%d) = %d, want %d", h, n, len(unique))
		}
	}
	// White glyph plus one region per visible rune.
	if got, want := m.Atlas().RegionCount(), 1+len(unique)-1; got != want {
		t.Errorf("RegionCount() = %d, want %d", got, want)
	}
}
