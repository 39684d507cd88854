package distfield

import (
	"errors"
	"math"
	"sync"

	"github.com/gogpu/fontatlas/geom"
	"github.com/gogpu/fontatlas/shape"
)

// ErrNilShape is returned when a generator is given no shape.
var ErrNilShape = errors.New("distfield: nil shape")

// Generator creates multi-channel signed distance fields from shapes.
// A Generator holds only its configuration and is safe for concurrent use.
type Generator struct {
	config Config
}

// NewGenerator creates a new MSDF generator with the given configuration.
func NewGenerator(config Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Generator{config: config}, nil
}

// DefaultGenerator creates a new MSDF generator with default configuration.
func DefaultGenerator() *Generator {
	return &Generator{config: DefaultConfig()}
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Generate fits the shape into a Size x Size texture, keeping Range pixels
// of margin, and samples its MSDF.
//
// The shape's edges are colored with the configured corner threshold
// before sampling. An empty shape yields a texture that is entirely
// outside (all channels zero).
func (g *Generator) Generate(s *shape.Shape) (*MSDF, error) {
	if s == nil {
		return nil, ErrNilShape
	}
	size := g.config.Size
	m := newMSDF(size, size)

	shapeBounds := s.Bounds()
	if s.EdgeCount() == 0 || shapeBounds.IsEmpty() {
		return m, nil
	}
	s.ApplyEdgeColoring(g.config.MaxAngleDegrees)

	// Add padding for the distance range
	padding := g.config.Range
	bounds := shapeBounds.Expand(padding)
	scale := calculateScale(bounds, size, padding)

	// Center the expanded bounds within the cell. With uniform scaling the
	// non-limiting axis does not fill the available space.
	m.Bounds = bounds
	m.Scale = scale
	m.TranslateX = (float64(size) - bounds.Width()*scale) / 2
	m.TranslateY = (float64(size) - bounds.Height()*scale) / 2

	g.generateDistanceField(m, s)
	return m, nil
}

// GenerateGlyph samples the MSDF of a shape at a fixed scale, producing a
// bitmap just large enough for the scaled shape plus padding pixels on
// every side. Pixel (0, 0) covers the shape point
// (floor(minX*scale) - padding, floor(minY*scale) - padding) / scale.
//
// An empty shape yields a zero-sized field.
func (g *Generator) GenerateGlyph(s *shape.Shape, scale float64, padding int) (*MSDF, error) {
	if s == nil {
		return nil, ErrNilShape
	}
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, &ConfigError{Field: "scale", Reason: "must be positive and finite"}
	}
	if padding < 0 {
		return nil, &ConfigError{Field: "padding", Reason: "must not be negative"}
	}

	b := s.Bounds()
	if s.EdgeCount() == 0 || b.IsEmpty() {
		m := newMSDF(0, 0)
		m.Scale = scale
		return m, nil
	}
	s.ApplyEdgeColoring(g.config.MaxAngleDegrees)

	x0 := math.Floor(b.MinX*scale) - float64(padding)
	y0 := math.Floor(b.MinY*scale) - float64(padding)
	x1 := math.Ceil(b.MaxX*scale) + float64(padding)
	y1 := math.Ceil(b.MaxY*scale) + float64(padding)

	m := newMSDF(int(x1-x0), int(y1-y0))
	m.Scale = scale
	m.Bounds = geom.Rect{MinX: x0 / scale, MinY: y0 / scale, MaxX: x1 / scale, MaxY: y1 / scale}

	g.generateDistanceField(m, s)
	return m, nil
}

// generateDistanceField fills the MSDF data with distance values.
func (g *Generator) generateDistanceField(m *MSDF, s *shape.Shape) {
	numWorkers := g.config.Workers
	rowsPerWorker := (m.Height + numWorkers - 1) / numWorkers

	// Process rows in parallel; the shape is only read.
	var wg sync.WaitGroup
	for w := range numWorkers {
		startRow := w * rowsPerWorker
		endRow := min(startRow+rowsPerWorker, m.Height)
		if startRow >= endRow {
			continue
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			g.processRows(m, s, start, end)
		}(startRow, endRow)
	}
	wg.Wait()

	if g.config.ErrorThreshold > 0 {
		ErrorCorrection(m, g.config.ErrorThreshold)
	}
}

// processRows processes a range of rows in the MSDF.
func (g *Generator) processRows(m *MSDF, s *shape.Shape, startRow, endRow int) {
	pixelRange := g.config.Range
	for y := startRow; y < endRow; y++ {
		for x := range m.Width {
			// Sample at the pixel center
			p := m.PixelToShape(float64(x)+0.5, float64(y)+0.5)
			d := s.ChannelPseudoDistances(p)
			m.SetPixel(x, y,
				distanceToPixel(d[0], pixelRange, m.Scale),
				distanceToPixel(d[1], pixelRange, m.Scale),
				distanceToPixel(d[2], pixelRange, m.Scale),
			)
		}
	}
}

// distanceToPixel converts a signed distance to a pixel value [0, 255].
// 0.5 (128) represents the edge, < 0.5 is outside, > 0.5 is inside.
func distanceToPixel(distance, pixelRange, scale float64) byte {
	distPx := distance * scale
	normalized := 0.5 + distPx/(2*pixelRange)
	normalized = max(0, min(1, normalized))
	return byte(math.Round(normalized * 255))
}

// calculateScale determines the scale factor to fit the shape in the texture.
func calculateScale(bounds geom.Rect, size int, padding float64) float64 {
	available := float64(size) - 2*padding
	if available <= 0 {
		available = float64(size)
	}

	w := bounds.Width()
	h := bounds.Height()

	switch {
	case w > 0 && h > 0:
		// Use the smaller scale to ensure the shape fits
		return min(available/w, available/h)
	case w > 0:
		return available / w
	case h > 0:
		return available / h
	default:
		return 1.0
	}
}
