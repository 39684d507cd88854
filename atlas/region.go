package atlas

import "fmt"

// BitmapType is the pixel layout of a region's source bitmap. Its value is
// also the number of bytes per source pixel.
type BitmapType uint8

const (
	// Gray is a single-channel bitmap. Gray regions occupy one byte lane
	// (component) of a face, so four gray bitmaps can share one texel.
	Gray BitmapType = 1

	// BGRA is a four-channel bitmap copied to the face as is.
	BGRA BitmapType = 4
)

// String returns a string representation of the bitmap type.
func (t BitmapType) String() string {
	switch t {
	case Gray:
		return "Gray"
	case BGRA:
		return "BGRA"
	default:
		return fmt.Sprintf("BitmapType(%d)", uint8(t))
	}
}

// Valid reports whether t is Gray or BGRA.
func (t BitmapType) Valid() bool {
	return t == Gray || t == BGRA
}

// Region is a placed rectangle in the atlas.
//
// Mask packs the bitmap type in bits 0-3, the face index in bits 4-7 and
// the component (byte lane) index in bits 8-11. The layout matches the
// serialized form, which stores the struct as is.
type Region struct {
	X, Y          uint16
	Width, Height uint16
	Mask          uint32
}

// regionSize is the serialized size of a Region.
const regionSize = 12

// MakeMask packs a bitmap type, face and component index into a mask.
func MakeMask(t BitmapType, face, component int) uint32 {
	return uint32(component&0xf)<<8 | uint32(face&0xf)<<4 | uint32(t)&0xf
}

// Type returns the bitmap type of the region.
func (r Region) Type() BitmapType { return BitmapType(r.Mask & 0xf) }

// Face returns the cube face index (0-5) holding the region.
func (r Region) Face() int { return int(r.Mask>>4) & 0xf }

// Component returns the byte lane of a gray region within its face.
func (r Region) Component() int { return int(r.Mask>>8) & 0xf }
