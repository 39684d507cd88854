package distfield

import (
	"errors"
	"image"
	"testing"
)

// filledSquare returns a size x size bitmap with an opaque square covering
// [lo, hi) on both axes.
func filledSquare(size, lo, hi int) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, size, size))
	for y := lo; y < hi; y++ {
		for x := lo; x < hi; x++ {
			img.Pix[y*img.Stride+x] = 0xff
		}
	}
	return img
}

func TestGenerateSDF(t *testing.T) {
	src := filledSquare(48, 16, 32)
	sdf, err := GenerateSDF(src, DefaultSpread)
	if err != nil {
		t.Fatalf("GenerateSDF() error = %v", err)
	}
	if sdf.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", sdf.Bounds(), src.Bounds())
	}

	tests := []struct {
		name string
		x, y int
		want byte
	}{
		{"deep inside", 24, 24, 255},
		{"far outside", 0, 24, 0},
		{"inner edge", 16, 24, 139},
		{"outer edge", 15, 24, 116},
	}
	for _, tt := range tests {
		if got := sdf.GrayAt(tt.x, tt.y).Y; got != tt.want {
			t.Errorf("%s (%d,%d) = %d, want %d", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestGenerateSDFMonotonic(t *testing.T) {
	sdf, err := GenerateSDF(filledSquare(32, 4, 28), 4)
	if err != nil {
		t.Fatal(err)
	}
	// Walking from outside toward the center the value never decreases.
	prev := byte(0)
	for x := 0; x <= 16; x++ {
		v := sdf.GrayAt(x, 16).Y
		if v < prev {
			t.Errorf("value at x=%d (%d) smaller than at x=%d (%d)", x, v, x-1, prev)
		}
		prev = v
	}
}

func TestGenerateSDFBorderIsBackground(t *testing.T) {
	// A fully covered bitmap still has an edge at its border.
	sdf, err := GenerateSDF(filledSquare(8, 0, 8), 3)
	if err != nil {
		t.Fatal(err)
	}
	if v := sdf.GrayAt(0, 4).Y; v == 255 {
		t.Errorf("border pixel saturated, want edge value")
	}
}

func TestGenerateSDFErrors(t *testing.T) {
	if _, err := GenerateSDF(nil, 6); !errors.Is(err, ErrNilBitmap) {
		t.Errorf("GenerateSDF(nil) = %v, want ErrNilBitmap", err)
	}
	var ce *ConfigError
	if _, err := GenerateSDF(filledSquare(4, 0, 2), 0); !errors.As(err, &ce) {
		t.Errorf("GenerateSDF(spread 0) = %v, want *ConfigError", err)
	}
}
