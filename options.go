package fontatlas

import (
	"github.com/gogpu/fontatlas/atlas"
	"github.com/gogpu/fontatlas/distfield"
	"github.com/gogpu/fontatlas/outline"
)

// Default arena capacities.
const (
	DefaultMaxFiles = 64
	DefaultMaxFonts = 64
)

// Option configures a Manager during creation.
//
// Example:
//
//	m, err := fontatlas.NewManager(
//	    fontatlas.WithAtlasConfig(atlas.Config{TextureSize: 1024, MaxRegions: 4096}),
//	    fontatlas.WithParser("gotext"),
//	)
type Option func(*managerOptions)

// managerOptions holds optional configuration for Manager creation.
type managerOptions struct {
	atlasConfig  atlas.Config
	atlasOptions []atlas.Option
	atlas        *atlas.Atlas
	parser       string
	msdf         distfield.Config
	sdfSpread    int
	maxFiles     int
	maxFonts     int
}

// defaultOptions returns the default manager options.
func defaultOptions() managerOptions {
	return managerOptions{
		atlasConfig: atlas.DefaultConfig(),
		parser:      outline.DefaultParser,
		msdf:        distfield.DefaultConfig(),
		sdfSpread:   distfield.DefaultSpread,
		maxFiles:    DefaultMaxFiles,
		maxFonts:    DefaultMaxFonts,
	}
}

func (o *managerOptions) validate() error {
	if o.atlas == nil {
		if err := o.atlasConfig.Validate(); err != nil {
			return err
		}
	}
	if err := o.msdf.Validate(); err != nil {
		return err
	}
	if o.sdfSpread < 1 || o.sdfSpread > 64 {
		return &ConfigError{Field: "SDFSpread", Reason: "must be 1-64"}
	}
	if o.maxFiles < 1 || o.maxFiles >= int(InvalidFile) {
		return &ConfigError{Field: "MaxFiles", Reason: "must be 1-65534"}
	}
	if o.maxFonts < 1 || o.maxFonts >= int(InvalidFont) {
		return &ConfigError{Field: "MaxFonts", Reason: "must be 1-65534"}
	}
	return nil
}

// WithAtlasConfig sets the configuration of the atlas the manager creates.
func WithAtlasConfig(cfg atlas.Config, opts ...atlas.Option) Option {
	return func(o *managerOptions) {
		o.atlasConfig = cfg
		o.atlasOptions = opts
	}
}

// WithAtlas makes the manager bake into an existing atlas instead of
// creating one.
func WithAtlas(a *atlas.Atlas) Option {
	return func(o *managerOptions) {
		o.atlas = a
	}
}

// WithParser selects the font parser backend by name.
// The default is "ximage" (golang.org/x/image/font/sfnt); "gotext" uses
// github.com/go-text/typesetting. See outline.RegisterParser.
func WithParser(name string) Option {
	return func(o *managerOptions) {
		o.parser = name
	}
}

// WithMSDFConfig sets the distance range, corner angle, error correction
// and worker count used by MSDF fonts.
func WithMSDFConfig(cfg distfield.Config) Option {
	return func(o *managerOptions) {
		o.msdf = cfg
	}
}

// WithSDFSpread sets the search radius in pixels of SDF fonts.
func WithSDFSpread(spread int) Option {
	return func(o *managerOptions) {
		o.sdfSpread = spread
	}
}

// WithCapacity sets the number of font files and fonts the manager can
// hold at once.
func WithCapacity(files, fonts int) Option {
	return func(o *managerOptions) {
		o.maxFiles = files
		o.maxFonts = fonts
	}
}
