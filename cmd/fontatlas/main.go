// Command fontatlas bakes a character set of a font into an atlas file.
//
// Usage:
//
//	fontatlas -font DejaVuSans.ttf -size 48 -type msdf -charset latin1 -o text.atlas -png faces
//
// The -font flag takes a path or the name of an installed font. Without it
// the embedded Go Regular font is used.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/pterm/pterm"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/fontatlas"
	"github.com/gogpu/fontatlas/atlas"
)

func main() {
	var (
		fontName = flag.String("font", "", "font file path or installed font name (default: Go Regular)")
		size     = flag.Int("size", 32, "pixel size")
		typ      = flag.String("type", "msdf", "glyph type: alpha, sdf or msdf")
		charset  = flag.String("charset", "ascii", "comma separated charsets: ascii, latin1, greek, digits")
		chars    = flag.String("chars", "", "extra characters to bake")
		texture  = flag.Int("texture", 1024, "atlas face size in texels")
		parser   = flag.String("parser", "ximage", "font parser: ximage or gotext")
		output   = flag.String("o", "font.atlas", "output atlas file")
		pngDir   = flag.String("png", "", "directory to write used faces as PNG")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		fontatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	err := run(config{
		fontName: *fontName,
		size:     *size,
		typ:      *typ,
		charset:  *charset,
		chars:    *chars,
		texture:  *texture,
		parser:   *parser,
		output:   *output,
		pngDir:   *pngDir,
	})
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

type config struct {
	fontName string
	size     int
	typ      string
	charset  string
	chars    string
	texture  int
	parser   string
	output   string
	pngDir   string
}

func run(cfg config) error {
	fontType, err := parseFontType(cfg.typ)
	if err != nil {
		return err
	}
	table, err := buildCharset(cfg.charset, cfg.chars)
	if err != nil {
		return err
	}
	data, name, err := loadFont(cfg.fontName)
	if err != nil {
		return err
	}

	m, err := fontatlas.NewManager(
		fontatlas.WithAtlasConfig(atlas.Config{TextureSize: cfg.texture, MaxRegions: atlas.DefaultMaxRegions}),
		fontatlas.WithParser(cfg.parser),
	)
	if err != nil {
		return err
	}
	file, err := m.CreateTTF(data)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	font, err := m.CreateFontByPixelSize(file, cfg.size, fontType)
	if err != nil {
		return err
	}

	pterm.Info.Printf("baking %d code points of %s at %dpx (%s)\n", countRunes(table), name, cfg.size, fontType)
	n, err := m.PreloadRange(font, table)
	if err != nil {
		return err
	}
	pterm.Success.Printf("%d glyphs baked\n", n)

	a := m.Atlas()
	if err := printUsage(a); err != nil {
		return err
	}
	if err := writeAtlas(a, cfg.output); err != nil {
		return err
	}
	pterm.Success.Printf("atlas written to %s\n", cfg.output)

	if cfg.pngDir != "" {
		if err := writeFaces(a, cfg.pngDir); err != nil {
			return err
		}
		pterm.Success.Printf("%d faces written to %s\n", a.UsedFaces(), cfg.pngDir)
	}
	return nil
}

func parseFontType(s string) (fontatlas.FontType, error) {
	switch strings.ToLower(s) {
	case "alpha":
		return fontatlas.Alpha, nil
	case "sdf":
		return fontatlas.SDF, nil
	case "msdf":
		return fontatlas.MSDF, nil
	default:
		return 0, fmt.Errorf("unknown glyph type %q", s)
	}
}

// loadFont reads a font file, falling back to a system font lookup when
// name is not a path.
func loadFont(name string) (data []byte, resolved string, err error) {
	if name == "" {
		return goregular.TTF, "Go Regular", nil
	}
	data, err = os.ReadFile(name)
	if err == nil {
		return data, name, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, "", err
	}
	path, findErr := findfont.Find(name)
	if findErr != nil {
		return nil, "", fmt.Errorf("font %q: %w", name, findErr)
	}
	data, err = os.ReadFile(path)
	return data, path, err
}

// printUsage renders one row per atlas layer.
func printUsage(a *atlas.Atlas) error {
	data := pterm.TableData{{"Layer", "Face", "Type", "Lane", "Usage"}}
	for i := range a.UsedLayers() {
		l, err := a.Layer(i)
		if err != nil {
			return err
		}
		usage, err := a.LayerUsage(i)
		if err != nil {
			return err
		}
		data = append(data, []string{
			fmt.Sprint(i),
			fmt.Sprint(l.Face()),
			l.Type().String(),
			fmt.Sprint(l.Component()),
			fmt.Sprintf("%.1f%%", usage*100),
		})
	}
	pterm.Info.Printf("%d regions in %d faces\n", a.RegionCount(), a.UsedFaces())
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func writeAtlas(a *atlas.Atlas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := a.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeFaces(a *atlas.Atlas, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for face := range a.UsedFaces() {
		img, err := a.FaceImage(face)
		if err != nil {
			return err
		}
		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("face%d.png", face)))
		if err != nil {
			return err
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
