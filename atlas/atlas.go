// Package atlas packs glyph bitmaps into a six-face cube texture.
//
// Each face is a square BGRA texture. A face holding BGRA bitmaps has one
// packing layer; a face holding gray bitmaps has four, one per byte lane,
// so four unrelated gray glyphs can overlap in texel space. Regions are
// addressed by index and carry their face, lane and type in a mask that
// PackUV turns into cube-map texture coordinates.
package atlas

import (
	"fmt"
	"image"

	"github.com/gogpu/fontatlas/internal/logx"
	"github.com/gogpu/fontatlas/packer"
)

// BytesPerTexel is the size of one face texel (B, G, R, A).
const BytesPerTexel = 4

// Uploader receives every texel rectangle the atlas writes, e.g. to mirror
// the faces into a GPU cube map. Pix holds the rectangle's rows as BGRA
// texels, tightly packed.
type Uploader interface {
	UpdateFace(face int, rect image.Rectangle, pix []byte)
}

// UploaderFunc adapts a function to the Uploader interface.
type UploaderFunc func(face int, rect image.Rectangle, pix []byte)

// UpdateFace calls f(face, rect, pix).
func (f UploaderFunc) UpdateFace(face int, rect image.Rectangle, pix []byte) {
	f(face, rect, pix)
}

// Option configures an Atlas during creation.
type Option func(*Atlas)

// WithUploader registers u to receive texture updates.
func WithUploader(u Uploader) Option {
	return func(a *Atlas) {
		a.uploader = u
	}
}

// layer is one packing surface: a whole face, or one byte lane of it.
type layer struct {
	packer *packer.RectanglePacker
	face   Region
}

// Atlas is a cube texture atlas.
//
// An Atlas is not safe for concurrent use.
type Atlas struct {
	size       int
	texelSize  float32
	maxRegions int

	layers    []layer
	usedFaces int

	regions []Region
	texture []byte

	uploader Uploader
}

// New creates an empty atlas.
func New(config Config, opts ...Option) (*Atlas, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	a := newAtlas(config.TextureSize, config.MaxRegions)
	a.layers = make([]layer, 0, MaxLayers)
	a.regions = make([]Region, 0, min(config.MaxRegions, 256))
	a.texture = make([]byte, a.TextureBufferSize())
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func newAtlas(size, maxRegions int) *Atlas {
	return &Atlas{
		size:       size,
		texelSize:  float32(65535) / float32(size),
		maxRegions: maxRegions,
	}
}

// TextureSize returns the edge length of a face in texels.
func (a *Atlas) TextureSize() int { return a.size }

// TextureBufferSize returns the size in bytes of all six faces.
func (a *Atlas) TextureBufferSize() int {
	return MaxFaces * a.faceBytes()
}

func (a *Atlas) faceBytes() int {
	return a.size * a.size * BytesPerTexel
}

// TextureBuffer returns the BGRA texel data of all six faces, face after
// face. The slice aliases the atlas storage and must not be modified.
func (a *Atlas) TextureBuffer() []byte { return a.texture }

// RegionCount returns the number of regions added so far.
func (a *Atlas) RegionCount() int { return len(a.regions) }

// MaxRegions returns the region table capacity.
func (a *Atlas) MaxRegions() int { return a.maxRegions }

// UsedFaces returns the number of faces opened for packing.
func (a *Atlas) UsedFaces() int { return a.usedFaces }

// UsedLayers returns the number of packing layers in use.
func (a *Atlas) UsedLayers() int { return len(a.layers) }

// Region returns the region with the given index.
func (a *Atlas) Region(index int) (Region, error) {
	if index < 0 || index >= len(a.regions) {
		return Region{}, fmt.Errorf("%w: %d", ErrInvalidRegion, index)
	}
	return a.regions[index], nil
}

// Regions returns a copy of the region table.
func (a *Atlas) Regions() []Region {
	return append([]Region(nil), a.regions...)
}

// Layer returns the whole-face region of a packing layer. Its mask names
// the layer's face, lane and type.
func (a *Atlas) Layer(index int) (Region, error) {
	if index < 0 || index >= len(a.layers) {
		return Region{}, fmt.Errorf("%w: %d", ErrInvalidLayer, index)
	}
	return a.layers[index].face, nil
}

// LayerUsage returns the fraction of a layer covered by packed
// rectangles (0.0 to 1.0).
func (a *Atlas) LayerUsage(index int) (float64, error) {
	if index < 0 || index >= len(a.layers) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLayer, index)
	}
	return a.layers[index].packer.Usage(), nil
}

// AddRegion places a width x height bitmap and copies it into the texture.
//
// Gray bitmaps hold one byte per pixel, BGRA bitmaps four. The stored
// region is shrunk by outline texels on every side, so the caller can
// pad a bitmap and address only its interior. It returns the new region
// index, or InvalidRegion with an error wrapping ErrRegionLimit or
// ErrAtlasFull.
func (a *Atlas) AddRegion(width, height int, bitmap []byte, typ BitmapType, outline int) (int, error) {
	if len(a.regions) >= a.maxRegions {
		return InvalidRegion, ErrRegionLimit
	}
	if !typ.Valid() {
		return InvalidRegion, fmt.Errorf("atlas: unsupported bitmap type %s", typ)
	}
	if width <= 0 || height <= 0 || outline < 0 || 2*outline >= width || 2*outline >= height {
		return InvalidRegion, fmt.Errorf("atlas: invalid region %dx%d with outline %d", width, height, outline)
	}
	if len(bitmap) < width*height*int(typ) {
		return InvalidRegion, fmt.Errorf("%w: %d bytes for %dx%d %s",
			ErrBitmapSize, len(bitmap), width, height, typ)
	}

	index, x, y := a.place(width+1, height+1, typ)
	if index < 0 {
		err := &FullError{Width: width, Height: height, Type: typ, Faces: a.usedFaces}
		logx.Logger().Warn("atlas full", "width", width, "height", height, "type", typ.String())
		return InvalidRegion, err
	}

	r := Region{
		X:      uint16(x),
		Y:      uint16(y),
		Width:  uint16(width),
		Height: uint16(height),
		Mask:   a.layers[index].face.Mask,
	}
	a.write(r, bitmap)

	r.X += uint16(outline)
	r.Y += uint16(outline)
	r.Width -= uint16(2 * outline)
	r.Height -= uint16(2 * outline)
	a.regions = append(a.regions, r)
	return len(a.regions) - 1, nil
}

// place reserves a w x h rectangle in the first layer of the given type
// that fits it, opening a new face if none does. It returns the layer
// index, or -1 when the atlas is full.
func (a *Atlas) place(w, h int, typ BitmapType) (index, x, y int) {
	for i := range a.layers {
		l := &a.layers[i]
		if l.face.Type() != typ {
			continue
		}
		if x, y, ok := l.packer.AddRectangle(w, h); ok {
			return i, x, y
		}
	}

	// A rectangle larger than an empty face would waste the face.
	if w > a.size-2 || h > a.size-2 {
		return -1, 0, 0
	}
	first, ok := a.openFace(typ)
	if !ok {
		return -1, 0, 0
	}
	x, y, ok = a.layers[first].packer.AddRectangle(w, h)
	if !ok {
		return -1, 0, 0
	}
	return first, x, y
}

// openFace appends the layers of a new face and returns the first one.
func (a *Atlas) openFace(typ BitmapType) (int, bool) {
	lanes := 1
	if typ == Gray {
		lanes = BytesPerTexel
	}
	if a.usedFaces >= MaxFaces || len(a.layers)+lanes > MaxLayers {
		return 0, false
	}

	first := len(a.layers)
	face := a.usedFaces
	for c := range lanes {
		a.layers = append(a.layers, layer{
			packer: packer.NewRectanglePacker(a.size, a.size),
			face: Region{
				Width:  uint16(a.size),
				Height: uint16(a.size),
				Mask:   MakeMask(typ, face, c),
			},
		})
	}
	a.usedFaces++
	logx.Logger().Debug("atlas face opened", "face", face, "type", typ.String(), "layers", lanes)
	return first, true
}

// UpdateRegion overwrites the texels of an existing region with a bitmap
// of the region's size and type.
func (a *Atlas) UpdateRegion(index int, bitmap []byte) error {
	r, err := a.Region(index)
	if err != nil {
		return err
	}
	if need := int(r.Width) * int(r.Height) * int(r.Type()); len(bitmap) < need {
		return fmt.Errorf("%w: %d bytes, need %d", ErrBitmapSize, len(bitmap), need)
	}
	a.write(r, bitmap)
	return nil
}

// write copies bitmap into the texels covered by r. Gray bitmaps fill the
// region's byte lane and leave the other lanes untouched.
func (a *Atlas) write(r Region, bitmap []byte) {
	w, h := int(r.Width), int(r.Height)
	if w == 0 || h == 0 {
		return
	}

	stride := a.size * BytesPerTexel
	base := r.Face()*a.faceBytes() + (int(r.Y)*a.size+int(r.X))*BytesPerTexel
	if r.Type() == BGRA {
		rowBytes := w * BytesPerTexel
		for y := range h {
			row := base + y*stride
			copy(a.texture[row:row+rowBytes], bitmap[y*rowBytes:(y+1)*rowBytes])
		}
	} else {
		lane := r.Component()
		for y := range h {
			row := base + y*stride
			for x, v := range bitmap[y*w : (y+1)*w] {
				a.texture[row+x*BytesPerTexel+lane] = v
			}
		}
	}

	if a.uploader != nil {
		a.uploader.UpdateFace(r.Face(), regionRect(r), a.texels(r))
	}
}

// texels returns a packed copy of the face texels covered by r.
func (a *Atlas) texels(r Region) []byte {
	w, h := int(r.Width), int(r.Height)
	rowBytes := w * BytesPerTexel
	stride := a.size * BytesPerTexel
	base := r.Face()*a.faceBytes() + (int(r.Y)*a.size+int(r.X))*BytesPerTexel

	pix := make([]byte, h*rowBytes)
	for y := range h {
		row := base + y*stride
		copy(pix[y*rowBytes:], a.texture[row:row+rowBytes])
	}
	return pix
}

func regionRect(r Region) image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
}

// FaceImage returns a copy of one face as an NRGBA image. Gray lanes show
// up as the color channels they occupy.
func (a *Atlas) FaceImage(face int) (*image.NRGBA, error) {
	if face < 0 || face >= MaxFaces {
		return nil, fmt.Errorf("atlas: face %d out of range", face)
	}
	img := image.NewNRGBA(image.Rect(0, 0, a.size, a.size))
	src := a.texture[face*a.faceBytes() : (face+1)*a.faceBytes()]
	for i := 0; i < len(src); i += BytesPerTexel {
		img.Pix[i+0] = src[i+2]
		img.Pix[i+1] = src[i+1]
		img.Pix[i+2] = src[i+0]
		img.Pix[i+3] = src[i+3]
	}
	return img, nil
}
