package atlas

// Face and layer budgets of a cube atlas.
const (
	// MaxFaces is the number of cube map faces.
	MaxFaces = 6

	// MaxLayers is the number of packing layers: four byte lanes per face.
	MaxLayers = 4 * MaxFaces

	// DefaultMaxRegions is the default region table capacity.
	DefaultMaxRegions = 4096

	// InvalidRegion is returned as the region index when AddRegion fails.
	InvalidRegion = 0xffff
)

// Config holds atlas configuration.
type Config struct {
	// TextureSize is the edge length of each cube face in texels.
	// Must be a power of two between 64 and 8192.
	TextureSize int

	// MaxRegions is the region table capacity.
	// Must be between 1 and 65534.
	MaxRegions int
}

// DefaultConfig returns a configuration for a 512x512 cube atlas.
func DefaultConfig() Config {
	return Config{
		TextureSize: 512,
		MaxRegions:  DefaultMaxRegions,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.TextureSize < 64 || c.TextureSize > 8192 {
		return &ConfigError{Field: "TextureSize", Reason: "must be 64-8192"}
	}
	if c.TextureSize&(c.TextureSize-1) != 0 {
		return &ConfigError{Field: "TextureSize", Reason: "must be a power of two"}
	}
	if c.MaxRegions < 1 || c.MaxRegions >= InvalidRegion {
		return &ConfigError{Field: "MaxRegions", Reason: "must be 1-65534"}
	}
	return nil
}
