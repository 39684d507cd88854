package atlas

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Serialized layout, all little-endian:
//
//	u16 texture size
//	u16 region count
//	count x { u16 x, u16 y, u16 width, u16 height, u32 mask }
//	6 * size * size * 4 bytes of BGRA texels
const headerSize = 4

// MarshalBinary encodes the region table and texture buffer.
func (a *Atlas) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(headerSize + len(a.regions)*regionSize + len(a.texture))
	if _, err := a.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo writes the serialized atlas to w.
func (a *Atlas) WriteTo(w io.Writer) (int64, error) {
	if len(a.regions) >= InvalidRegion {
		return 0, fmt.Errorf("atlas: %d regions do not fit the serialized form", len(a.regions))
	}

	head := make([]byte, headerSize+len(a.regions)*regionSize)
	binary.LittleEndian.PutUint16(head[0:2], uint16(a.size))
	binary.LittleEndian.PutUint16(head[2:4], uint16(len(a.regions)))
	pos := headerSize
	for _, r := range a.regions {
		binary.LittleEndian.PutUint16(head[pos:], r.X)
		binary.LittleEndian.PutUint16(head[pos+2:], r.Y)
		binary.LittleEndian.PutUint16(head[pos+4:], r.Width)
		binary.LittleEndian.PutUint16(head[pos+6:], r.Height)
		binary.LittleEndian.PutUint32(head[pos+8:], r.Mask)
		pos += regionSize
	}

	n, err := w.Write(head)
	total := int64(n)
	if err != nil {
		return total, err
	}
	n, err = w.Write(a.texture)
	total += int64(n)
	return total, err
}

// Read decodes a serialized atlas.
//
// The restored atlas keeps its regions and texels but not its packing
// state: all faces count as used and the region capacity is the smaller
// of the stored count and maxRegions, so AddRegion reports
// ErrRegionLimit. UpdateRegion and PackUV work as before.
func Read(r io.Reader, maxRegions int, opts ...Option) (*Atlas, error) {
	var head [headerSize]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidData, err)
	}
	size := int(binary.LittleEndian.Uint16(head[0:2]))
	count := int(binary.LittleEndian.Uint16(head[2:4]))
	if cfg := (Config{TextureSize: size, MaxRegions: 1}); cfg.Validate() != nil {
		return nil, fmt.Errorf("%w: texture size %d", ErrInvalidData, size)
	}

	table := make([]byte, count*regionSize)
	if _, err := io.ReadFull(r, table); err != nil {
		return nil, fmt.Errorf("%w: region table: %v", ErrInvalidData, err)
	}

	a := newAtlas(size, min(count, maxRegions))
	a.usedFaces = MaxFaces
	a.regions = make([]Region, count)
	for i := range a.regions {
		b := table[i*regionSize:]
		reg := Region{
			X:      binary.LittleEndian.Uint16(b[0:]),
			Y:      binary.LittleEndian.Uint16(b[2:]),
			Width:  binary.LittleEndian.Uint16(b[4:]),
			Height: binary.LittleEndian.Uint16(b[6:]),
			Mask:   binary.LittleEndian.Uint32(b[8:]),
		}
		if !reg.Type().Valid() || reg.Face() >= MaxFaces ||
			int(reg.X)+int(reg.Width) > size || int(reg.Y)+int(reg.Height) > size {
			return nil, fmt.Errorf("%w: region %d out of bounds", ErrInvalidData, i)
		}
		a.regions[i] = reg
	}

	a.texture = make([]byte, a.TextureBufferSize())
	if _, err := io.ReadFull(r, a.texture); err != nil {
		return nil, fmt.Errorf("%w: texture: %v", ErrInvalidData, err)
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// ReadFrom replaces a with the atlas decoded from r. The region capacity
// follows a's MaxRegions when set, DefaultMaxRegions otherwise.
func (a *Atlas) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}
	restored, err := Read(cr, a.capacity())
	if err != nil {
		return cr.n, err
	}
	restored.uploader = a.uploader
	*a = *restored
	return cr.n, nil
}

// UnmarshalBinary replaces a with the decoded atlas. Trailing bytes are
// an error.
func (a *Atlas) UnmarshalBinary(data []byte) error {
	rd := bytes.NewReader(data)
	restored, err := Read(rd, a.capacity())
	if err != nil {
		return err
	}
	if rd.Len() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrInvalidData, rd.Len())
	}
	restored.uploader = a.uploader
	*a = *restored
	return nil
}

func (a *Atlas) capacity() int {
	if a.maxRegions <= 0 {
		return DefaultMaxRegions
	}
	return a.maxRegions
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
