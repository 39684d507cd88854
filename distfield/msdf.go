package distfield

import (
	"image"
	"image/color"

	"github.com/gogpu/fontatlas/geom"
)

// BytesPerPixel is the size of one MSDF texel: B, G, R, A.
const BytesPerPixel = 4

// MSDF holds a generated multi-channel signed distance field.
type MSDF struct {
	// Data is the BGRA pixel data (4 bytes per pixel, row-major order).
	// Red, Green, Blue channels encode directional distance; the median of
	// the three gives the actual signed distance. Alpha is always 255.
	Data []byte

	// Width of the texture in pixels.
	Width int

	// Height of the texture in pixels.
	Height int

	// Bounds is the sampled area in the shape's coordinate space.
	Bounds geom.Rect

	// Scale is the scaling factor from shape coordinates to pixels.
	Scale float64

	// Translation offset from shape to texture coordinates.
	TranslateX, TranslateY float64
}

func newMSDF(width, height int) *MSDF {
	m := &MSDF{
		Data:   make([]byte, width*height*BytesPerPixel),
		Width:  width,
		Height: height,
		Scale:  1,
	}
	for i := 3; i < len(m.Data); i += BytesPerPixel {
		m.Data[i] = 0xff
	}
	return m
}

// PixelOffset returns the byte offset for pixel (x, y).
func (m *MSDF) PixelOffset(x, y int) int {
	return (y*m.Width + x) * BytesPerPixel
}

// SetPixel sets the RGB values at (x, y).
func (m *MSDF) SetPixel(x, y int, r, g, b byte) {
	offset := m.PixelOffset(x, y)
	m.Data[offset] = b
	m.Data[offset+1] = g
	m.Data[offset+2] = r
	m.Data[offset+3] = 0xff
}

// GetPixel returns the RGB values at (x, y).
func (m *MSDF) GetPixel(x, y int) (r, g, b byte) {
	offset := m.PixelOffset(x, y)
	return m.Data[offset+2], m.Data[offset+1], m.Data[offset]
}

// Median returns the median of the three channels at (x, y): the
// reconstructed single-channel distance value. 128 and above is inside.
func (m *MSDF) Median(x, y int) byte {
	return median3Byte(m.GetPixel(x, y))
}

// ShapeToPixel converts shape coordinates to pixel coordinates.
func (m *MSDF) ShapeToPixel(p geom.Point) (px, py float64) {
	px = (p.X-m.Bounds.MinX)*m.Scale + m.TranslateX
	py = (p.Y-m.Bounds.MinY)*m.Scale + m.TranslateY
	return
}

// PixelToShape converts pixel coordinates to shape coordinates.
func (m *MSDF) PixelToShape(px, py float64) geom.Point {
	return geom.Point{
		X: (px-m.TranslateX)/m.Scale + m.Bounds.MinX,
		Y: (py-m.TranslateY)/m.Scale + m.Bounds.MinY,
	}
}

// NRGBA returns a copy of the field as an image with R, G, B in their
// usual positions.
func (m *MSDF) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := range m.Height {
		for x := range m.Width {
			r, g, b := m.GetPixel(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 0xff})
		}
	}
	return img
}
