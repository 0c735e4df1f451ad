package win32

import "testing"

func TestPointFromLParam(t *testing.T) {
	tests := []struct {
		lParam uintptr
		x, y   int
	}{
		{0x00050003, 3, 5},
		{0x0000ffff, -1, 0},
		{0xfff6000a, 10, -10},
	}
	for _, tt := range tests {
		if x, y := pointFromLParam(tt.lParam); x != tt.x || y != tt.y {
			t.Errorf("pointFromLParam(%#x) = (%d,%d), want (%d,%d)", tt.lParam, x, y, tt.x, tt.y)
		}
	}
}

func TestWheelNotchesSigned(t *testing.T) {
	tests := []struct {
		wParam uintptr
		want   int
	}{
		{120 << 16, 1},
		{240 << 16, 2},
		{uintptr(uint16(0xff88)) << 16, -1}, // -120
		{uintptr(uint16(0xff10)) << 16, -2}, // -240
		{0x0008, 0},                         // button flags only
	}
	for _, tt := range tests {
		if got := wheelNotches(tt.wParam); got != tt.want {
			t.Errorf("wheelNotches(%#x) = %d, want %d", tt.wParam, got, tt.want)
		}
	}
}

func TestFrameBorders(t *testing.T) {
	// 640x480 client with an 8px frame and a 23px caption.
	adjusted := rect{left: -8, top: -31, right: 648, bottom: 488}
	side, top := frameBorders(adjusted, 640, 480)
	if side != 8 || top != 31 {
		t.Fatalf("borders = (%d,%d), want (8,31)", side, top)
	}
}

func TestCharDecoder(t *testing.T) {
	var d charDecoder

	if r, ok := d.feed('a'); !ok || r != 'a' {
		t.Fatalf("ascii = %q %v", r, ok)
	}
	if r, ok := d.feed(0xe9); !ok || r != 'é' {
		t.Fatalf("latin-1 = %q %v", r, ok)
	}
	if _, ok := d.feed(0); ok {
		t.Fatal("NUL produced a character")
	}

	// U+1F600 as a surrogate pair.
	if _, ok := d.feed(0xd83d); ok {
		t.Fatal("high surrogate produced a character")
	}
	if r, ok := d.feed(0xde00); !ok || r != 0x1f600 {
		t.Fatalf("pair = %U %v", r, ok)
	}

	if _, ok := d.feed(0xde00); ok {
		t.Fatal("lone low surrogate produced a character")
	}
}
