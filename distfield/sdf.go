// Package distfield generates distance-field bitmaps for glyphs.
//
// GenerateSDF turns an already rasterized alpha bitmap into a single-channel
// signed distance field by brute-force neighborhood search. Generator samples
// a vector shape.Shape into a multi-channel (MSDF) texture, one channel per
// edge color, stored as BGRA bytes with opaque alpha.
//
// In both outputs a byte value of 128 and above is inside the glyph.
package distfield

import (
	"errors"
	"image"
	"math"
)

// DefaultSpread is the default search radius of GenerateSDF, in pixels.
const DefaultSpread = 6

// alphaThreshold splits coverage into foreground and background.
const alphaThreshold = 128

// ErrNilBitmap is returned by GenerateSDF for a nil source.
var ErrNilBitmap = errors.New("distfield: nil bitmap")

// GenerateSDF computes a single-channel signed distance field of src.
//
// A pixel is foreground when its alpha is at least 128; pixels outside the
// bitmap count as background. For every pixel the nearest pixel of the
// opposite state within spread pixels is found; its distance d is mapped
// to (d-0.5)/(spread-0.5), clamped to [0, 1], negated for background
// pixels, and finally rescaled from [-1, 1] to a byte. Pixels with no
// opposite neighbor in range saturate to 0 or 255.
//
// The result has the same bounds as src.
func GenerateSDF(src *image.Alpha, spread int) (*image.Gray, error) {
	if src == nil {
		return nil, ErrNilBitmap
	}
	if spread < 1 {
		return nil, &ConfigError{Field: "spread", Reason: "must be at least 1"}
	}

	b := src.Bounds()
	dst := image.NewGray(b)
	w, h := b.Dx(), b.Dy()

	inside := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return src.Pix[y*src.Stride+x] >= alphaThreshold
	}

	fs := float64(spread)
	for y := range h {
		for x := range w {
			center := inside(x, y)
			best := fs
			for dy := -spread; dy <= spread; dy++ {
				for dx := -spread; dx <= spread; dx++ {
					if inside(x+dx, y+dy) == center {
						continue
					}
					best = min(best, math.Sqrt(float64(dx*dx+dy*dy)))
				}
			}

			s := max(0, min(1, (best-0.5)/(fs-0.5)))
			if !center {
				s = -s
			}
			dst.Pix[y*dst.Stride+x] = byte(math.Round((s + 1) / 2 * 255))
		}
	}
	return dst, nil
}
