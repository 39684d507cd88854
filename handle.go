package fontatlas

// FileHandle identifies a font file loaded with CreateTTF.
type FileHandle uint16

// FontHandle identifies a master or scaled font.
type FontHandle uint16

// Invalid handle values, returned together with an error.
const (
	InvalidFile FileHandle = 0xffff
	InvalidFont FontHandle = 0xffff
)

// IsValid reports whether h is not InvalidFile. It does not check that
// the file is still open.
func (h FileHandle) IsValid() bool { return h != InvalidFile }

// IsValid reports whether h is not InvalidFont. It does not check that
// the font still exists.
func (h FontHandle) IsValid() bool { return h != InvalidFont }

// handleAlloc hands out indices from a fixed-capacity arena. Freed
// indices are reused lowest first; there are no generation counters.
type handleAlloc struct {
	free []uint16
	live []bool
}

func newHandleAlloc(capacity int) *handleAlloc {
	a := &handleAlloc{
		free: make([]uint16, capacity),
		live: make([]bool, capacity),
	}
	for i := range a.free {
		a.free[i] = uint16(capacity - 1 - i)
	}
	return a
}

func (a *handleAlloc) alloc() (uint16, bool) {
	n := len(a.free)
	if n == 0 {
		return 0, false
	}
	h := a.free[n-1]
	a.free = a.free[:n-1]
	a.live[h] = true
	return h, true
}

func (a *handleAlloc) release(h uint16) bool {
	if !a.isValid(h) {
		return false
	}
	a.live[h] = false

	// Keep the stack sorted so the lowest index is reused first.
	i := len(a.free)
	a.free = append(a.free, h)
	for i > 0 && a.free[i-1] < h {
		a.free[i] = a.free[i-1]
		i--
	}
	a.free[i] = h
	return true
}

func (a *handleAlloc) isValid(h uint16) bool {
	return int(h) < len(a.live) && a.live[h]
}

func (a *handleAlloc) used() int {
	return len(a.live) - len(a.free)
}
