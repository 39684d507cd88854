package atlas

import (
	"encoding/binary"
	"fmt"
	"math"
)

// VertexUVSize is the size of one packed texture coordinate: four
// little-endian int16 values (x, y, z, w).
const VertexUVSize = 8

// PackUV writes the cube-map coordinates of a region's four corners into
// vertexBuffer, starting at offset and advancing stride bytes per vertex.
//
// The corners are written in the order (x0,y0), (x0,y1), (x1,y1), (x1,y0).
// x, y and z form the direction into the region's face; w selects the
// byte lane (0, 1/4, 2/4 or 3/4 of the int16 range).
func (a *Atlas) PackUV(index int, vertexBuffer []byte, offset, stride int) error {
	r, err := a.Region(index)
	if err != nil {
		return err
	}
	return a.packUV(r, vertexBuffer, offset, stride)
}

// PackFaceLayerUV writes the coordinates covering a whole packing layer,
// which is useful to display the atlas for debugging.
func (a *Atlas) PackFaceLayerUV(layer int, vertexBuffer []byte, offset, stride int) error {
	r, err := a.Layer(layer)
	if err != nil {
		return err
	}
	return a.packUV(r, vertexBuffer, offset, stride)
}

func (a *Atlas) packUV(r Region, buf []byte, offset, stride int) error {
	if stride < VertexUVSize {
		return fmt.Errorf("atlas: vertex stride %d smaller than %d", stride, VertexUVSize)
	}
	if offset < 0 || offset+3*stride+VertexUVSize > len(buf) {
		return fmt.Errorf("%w: %d bytes, offset %d, stride %d", ErrBufferTooSmall, len(buf), offset, stride)
	}

	x0 := a.texelCoord(int(r.X))
	y0 := a.texelCoord(int(r.Y))
	x1 := a.texelCoord(int(r.X) + int(r.Width))
	y1 := a.texelCoord(int(r.Y) + int(r.Height))
	ww := int16(float32(math.MaxInt16) / 4 * float32(r.Component()))

	const hi, lo = math.MaxInt16, math.MinInt16
	w := uvWriter{buf: buf, pos: offset, stride: stride}
	switch r.Face() {
	case 0: // +X
		x0, x1, y0, y1 = -x0, -x1, -y0, -y1
		w.put(hi, y0, x0, ww)
		w.put(hi, y1, x0, ww)
		w.put(hi, y1, x1, ww)
		w.put(hi, y0, x1, ww)
	case 1: // -X
		y0, y1 = -y0, -y1
		w.put(lo, y0, x0, ww)
		w.put(lo, y1, x0, ww)
		w.put(lo, y1, x1, ww)
		w.put(lo, y0, x1, ww)
	case 2: // +Y
		w.put(x0, hi, y0, ww)
		w.put(x0, hi, y1, ww)
		w.put(x1, hi, y1, ww)
		w.put(x1, hi, y0, ww)
	case 3: // -Y
		y0, y1 = -y0, -y1
		w.put(x0, lo, y0, ww)
		w.put(x0, lo, y1, ww)
		w.put(x1, lo, y1, ww)
		w.put(x1, lo, y0, ww)
	case 4: // +Z
		y0, y1 = -y0, -y1
		w.put(x0, y0, hi, ww)
		w.put(x0, y1, hi, ww)
		w.put(x1, y1, hi, ww)
		w.put(x1, y0, hi, ww)
	case 5: // -Z
		x0, x1, y0, y1 = -x0, -x1, -y0, -y1
		w.put(x0, y0, lo, ww)
		w.put(x0, y1, lo, ww)
		w.put(x1, y1, lo, ww)
		w.put(x1, y0, lo, ww)
	default:
		return fmt.Errorf("atlas: region face %d out of range", r.Face())
	}
	return nil
}

// texelCoord maps a texel edge to the signed int16 range. The far face
// edge maps to 32768 and is clamped.
func (a *Atlas) texelCoord(v int) int16 {
	// The conversion keeps the product from fusing with the subtraction.
	f := float32(float32(v)*a.texelSize) - math.MaxInt16
	switch {
	case f >= math.MaxInt16:
		return math.MaxInt16
	case f <= math.MinInt16:
		return math.MinInt16
	}
	return int16(f)
}

type uvWriter struct {
	buf    []byte
	pos    int
	stride int
}

func (w *uvWriter) put(x, y, z, ww int16) {
	b := w.buf[w.pos:]
	binary.LittleEndian.PutUint16(b[0:], uint16(x))
	binary.LittleEndian.PutUint16(b[2:], uint16(y))
	binary.LittleEndian.PutUint16(b[4:], uint16(z))
	binary.LittleEndian.PutUint16(b[6:], uint16(ww))
	w.pos += w.stride
}
