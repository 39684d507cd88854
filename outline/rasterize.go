package outline

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// Rasterize scan-converts the part of path inside rect into an alpha mask
// with the nonzero winding rule. The mask's origin (0, 0) corresponds to
// rect.Min in path coordinates.
func Rasterize(path *Path, rect image.Rectangle) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	if rect.Empty() || path.IsEmpty() {
		return dst
	}

	r := vector.NewRasterizer(rect.Dx(), rect.Dy())
	r.DrawOp = draw.Src
	path.Replay(r, -float32(rect.Min.X), -float32(rect.Min.Y))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}
