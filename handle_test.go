package fontatlas

import "testing"

func TestHandleAlloc(t *testing.T) {
	a := newHandleAlloc(3)
	for want := uint16(0); want < 3; want++ {
		h, ok := a.alloc()
		if !ok || h != want {
			t.Fatalf("alloc() = (%d, %v), want (%d, true)", h, ok, want)
		}
	}
	if _, ok := a.alloc(); ok {
		t.Fatal("alloc() succeeded on a full arena")
	}
	if a.used() != 3 {
		t.Errorf("used() = %d, want 3", a.used())
	}

	// Released handles come back lowest first.
	if !a.release(2) || !a.release(0) {
		t.Fatal("release() of live handles failed")
	}
	if a.release(0) {
		t.Error("double release succeeded")
	}
	if a.isValid(0) || !a.isValid(1) {
		t.Errorf("isValid after release = (%v, %v), want (false, true)", a.isValid(0), a.isValid(1))
	}
	for _, want := range []uint16{0, 2} {
		if h, ok := a.alloc(); !ok || h != want {
			t.Errorf("alloc() = (%d, %v), want (%d, true)", h, ok, want)
		}
	}
}

func TestHandleAllocOutOfRange(t *testing.T) {
	a := newHandleAlloc(2)
	if a.isValid(5) || a.release(5) {
		t.Error("out of range handle accepted")
	}
	if a.isValid(0xffff) {
		t.Error("invalid sentinel accepted")
	}
}

func TestHandleIsValid(t *testing.T) {
	if InvalidFile.IsValid() || InvalidFont.IsValid() {
		t.Error("invalid sentinels report valid")
	}
	if !FileHandle(0).IsValid() || !FontHandle(7).IsValid() {
		t.Error("allocated handles report invalid")
	}
}
