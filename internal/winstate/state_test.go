package winstate

import (
	"testing"

	"github.com/1broseidon/fbwin/input"
)

func TestNewStartsHiddenWithPointerOutside(t *testing.T) {
	s := New(4, 3, "t")
	if !s.Hidden() {
		t.Fatal("new state should be hidden")
	}
	m := s.Mouse()
	if m.X != Outside || m.Y != Outside {
		t.Fatalf("pointer = (%d,%d), want sentinel", m.X, m.Y)
	}
	if w, h := s.Size(); w != 4 || h != 3 {
		t.Fatalf("size = %dx%d", w, h)
	}
}

func TestSetPointerSentinel(t *testing.T) {
	tests := []struct {
		name         string
		x, y         int
		wantX, wantY int
	}{
		{"inside", 2, 1, 2, 1},
		{"origin", 0, 0, 0, 0},
		{"last pixel", 3, 2, 3, 2},
		{"right edge", 4, 1, Outside, Outside},
		{"bottom edge", 1, 3, Outside, Outside},
		{"negative x", -5, 1, Outside, Outside},
		{"negative y", 1, -1, Outside, Outside},
		{"far away", 1000, 1000, Outside, Outside},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(4, 3, "")
			s.SetPointer(tt.x, tt.y)
			m := s.Mouse()
			if m.X != tt.wantX || m.Y != tt.wantY {
				t.Fatalf("pointer = (%d,%d), want (%d,%d)", m.X, m.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestButtonsAndWheel(t *testing.T) {
	s := New(4, 4, "")
	s.SetButton(input.ButtonLeft, true)
	s.SetButton(input.ButtonMiddle, true)
	s.SetButton(input.ButtonLeft, false)
	s.AddWheel(1)
	s.AddWheel(1)
	s.AddWheel(-1)
	m := s.Mouse()
	if m.Buttons != input.ButtonMiddle {
		t.Fatalf("buttons = %v", m.Buttons)
	}
	if m.Wheel != 1 {
		t.Fatalf("wheel = %d", m.Wheel)
	}
}

func TestSetPositionReportsChange(t *testing.T) {
	s := New(1, 1, "")
	if !s.SetPosition(10, 20) {
		t.Fatal("first move should report change")
	}
	if s.SetPosition(10, 20) {
		t.Fatal("same position should not report change")
	}
	if x, y := s.Position(); x != 10 || y != 20 {
		t.Fatalf("position = (%d,%d)", x, y)
	}
}

func TestMarkClosedOnce(t *testing.T) {
	s := New(1, 1, "")
	s.SetHidden(false)
	first, wasHidden := s.MarkClosed()
	if !first || wasHidden {
		t.Fatalf("first close = (%v,%v)", first, wasHidden)
	}
	first, _ = s.MarkClosed()
	if first {
		t.Fatal("second close should not be first")
	}
	if !s.Closed() || !s.Hidden() {
		t.Fatal("closed state should be closed and hidden")
	}
}

func TestCallbacksFireWithSnapshot(t *testing.T) {
	s := New(8, 8, "")
	var keys []input.Key
	var pressed []bool
	s.SetKeyFunc(func(k input.Key, p bool) {
		keys = append(keys, k)
		pressed = append(pressed, p)
	})
	s.FireKey([]input.Key{input.KeyShiftLeft, input.KeyShiftRight}, true)
	if len(keys) != 2 || keys[1] != input.KeyShiftRight || !pressed[0] {
		t.Fatalf("keys = %v pressed = %v", keys, pressed)
	}

	var gotX, gotY, gotWheel int
	var gotButtons input.Buttons
	s.SetMouseFunc(func(x, y int, b input.Buttons, wheel int) {
		gotX, gotY, gotButtons, gotWheel = x, y, b, wheel
		// Re-entering the state from a callback must not deadlock.
		_ = s.Mouse()
	})
	s.SetPointer(3, 4)
	s.SetButton(input.ButtonRight, true)
	s.AddWheel(-2)
	s.FireMouse()
	if gotX != 3 || gotY != 4 || gotButtons != input.ButtonRight || gotWheel != -2 {
		t.Fatalf("mouse = (%d,%d,%v,%d)", gotX, gotY, gotButtons, gotWheel)
	}
}

func TestCharSkipsEmpty(t *testing.T) {
	s := New(1, 1, "")
	calls := 0
	s.SetCharFunc(func([]byte) { calls++ })
	s.FireChar(nil)
	s.FireChar([]byte("a"))
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestReplacingHandlerDiscardsPrevious(t *testing.T) {
	s := New(1, 1, "")
	first, second := 0, 0
	s.SetCloseFunc(func() { first++ })
	s.SetCloseFunc(func() { second++ })
	s.FireClose()
	s.SetCloseFunc(nil)
	s.FireClose()
	if first != 0 || second != 1 {
		t.Fatalf("first=%d second=%d", first, second)
	}
}
